package camera

import (
	"go.viam.com/geocam/logging"
	"go.viam.com/geocam/utils"
)

// CorrectRationalCamera returns a copy of a rational or local rational camera with its image offset
// shifted by (du, dv). The input camera is not modified.
func CorrectRationalCamera(cam Camera, du, dv float64, logger logging.Logger) (Camera, error) {
	switch c := cam.(type) {
	case *LocalRationalCamera:
		corrected := c.Correct(du, dv)
		logCorrection(logger, c.TypeName(), du, dv, corrected.ImageOffset)
		return corrected, nil
	case *RationalCamera:
		corrected := c.Correct(du, dv)
		logCorrection(logger, c.TypeName(), du, dv, corrected.ImageOffset)
		return corrected, nil
	default:
		return nil, utils.NewUnexpectedTypeError(&RationalCamera{}, cam)
	}
}

func logCorrection(logger logging.Logger, typeName string, du, dv float64, offset func() (float64, float64)) {
	if logger == nil {
		return
	}
	u, v := offset()
	logger.Debugw("corrected camera", "type", typeName, "du", du, "dv", dv, "sample_offset", u, "line_offset", v)
}

package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/geocam/camera"
	"go.viam.com/geocam/logging"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck // no need to check for this error
	fmt.Fprintf(w, format+"\n", a...)
}

// warningf prints a message prefixed with a bold "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck // no need to check for this error
	fmt.Fprintf(w, "\033[1mWarning:\033[0m "+format+"\n", a...)
}

// newLogger returns a logger that writes to the app's error writer and to --log-file when set,
// at debug level when the debug flag is set. The returned func closes the log file.
func newLogger(c *cli.Context) (logging.Logger, func()) {
	logger := logging.NewLogger("geocam", logging.NewWriterAppender(c.App.ErrWriter))
	if !c.Bool(debugFlag) {
		logger.SetLevel(logging.INFO)
	}
	if path := c.Path(logFileFlag); path != "" {
		fileAppender := logging.NewFileAppender(path)
		logger.AddAppender(fileAppender)
		return logger, func() { utils.UncheckedError(multierr.Combine(logger.Sync(), fileAppender.Close())) }
	}
	return logger, func() {}
}

// parseFloatArgs parses exactly len(names) positional arguments as floats.
func parseFloatArgs(c *cli.Context, names ...string) ([]float64, error) {
	if c.Args().Len() != len(names) {
		return nil, errors.Errorf("expected %d arguments <%s> but got %d",
			len(names), strings.Join(names, "> <"), c.Args().Len())
	}
	values := make([]float64, len(names))
	for i, arg := range c.Args().Slice() {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", names[i])
		}
		values[i] = v
	}
	return values, nil
}

// parseVector parses x, y and z positional arguments.
func parseVector(c *cli.Context, x, y, z string) (r3.Vector, error) {
	values, err := parseFloatArgs(c, x, y, z)
	if err != nil {
		return r3.Vector{}, err
	}
	return r3.Vector{X: values[0], Y: values[1], Z: values[2]}, nil
}

// formatFloats joins values with spaces using the shortest exact representation.
func formatFloats(values ...float64) string {
	return strings.Join(lo.Map(values, func(v float64, _ int) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}), " ")
}

// loadCamera reads a GeoTIFF camera for .tif and .tiff files and a rational or local rational
// camera for anything else.
func loadCamera(path string) (camera.Camera, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return camera.ReadGeoCamera(path)
	default:
		return camera.LoadRationalCamera(path)
	}
}

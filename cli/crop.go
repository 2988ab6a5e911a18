package cli

import (
	"context"
	"image"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/geocam/camera"
	"go.viam.com/geocam/config"
	"go.viam.com/geocam/geodesy"
	"go.viam.com/geocam/logging"
	"go.viam.com/geocam/roi"
	"go.viam.com/geocam/utils"
)

// CropAction computes the image region of a scene box and writes the local rational camera of
// that region. The job comes from --config or from the individual flags.
func CropAction(c *cli.Context) error {
	logger, closeLogs := newLogger(c)
	defer closeLogs()

	var cfg *config.Config
	if path := c.Path(configFlag); path != "" {
		var err error
		if cfg, err = config.Read(c.Context, path, logger); err != nil {
			return err
		}
	} else {
		var err error
		if cfg, err = cropConfigFromFlags(c); err != nil {
			return err
		}
	}
	if cfg.LogLevel != "" && !c.Bool(debugFlag) {
		level, err := logging.LevelFromString(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
	}

	region, err := runCrop(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%d %d %d %d", region.Min.X, region.Min.Y, region.Max.X, region.Max.Y)
	return nil
}

func cropConfigFromFlags(c *cli.Context) (*config.Config, error) {
	corner := func(name string) (config.GeoPoint, error) {
		values := c.Float64Slice(name)
		if len(values) != 3 {
			return config.GeoPoint{}, errors.Errorf("--%s needs LON,LAT,ELEV but got %d values", name, len(values))
		}
		return config.GeoPoint{Lon: values[0], Lat: values[1], Elev: values[2]}, nil
	}
	lowerLeft, err := corner(lowerLeftFlag)
	if err != nil {
		return nil, err
	}
	upperRight, err := corner(upperRightFlag)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Image:       config.ImageConfig{Width: c.Int(widthFlag), Height: c.Int(heightFlag)},
		Camera:      c.Path(cameraFlag),
		Scene:       config.SceneConfig{LowerLeft: lowerLeft, UpperRight: upperRight},
		Uncertainty: c.Float64(uncertaintyFlag),
		LVCS:        c.Path(lvcsFlag),
		Output:      config.OutputConfig{Camera: c.Path(outputFlag), Order: c.String(orderFlag)},
	}
	if err := cfg.Validate("crop"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runCrop executes a validated crop job and returns the image region it kept.
func runCrop(ctx context.Context, cfg *config.Config, logger logging.Logger) (image.Rectangle, error) {
	order, err := cfg.Output.CoefficientOrder()
	if err != nil {
		return image.Rectangle{}, err
	}
	cam, err := camera.LoadRationalCamera(cfg.Camera)
	if err != nil {
		return image.Rectangle{}, err
	}
	var lvcs *geodesy.LVCS
	if cfg.LVCS != "" {
		if lvcs, err = geodesy.ReadLVCSFile(cfg.LVCS); err != nil {
			return image.Rectangle{}, err
		}
	}
	if err := ctx.Err(); err != nil {
		return image.Rectangle{}, err
	}
	logger = logger.With("camera", cfg.Camera)

	local, region, err := roi.CropImageUsing3DBoxWithLVCS(
		cfg.Image.Width, cfg.Image.Height,
		cam,
		cfg.Scene.LowerLeft.Vector(), cfg.Scene.UpperRight.Vector(),
		cfg.Uncertainty,
		lvcs,
		logger,
	)
	if err != nil {
		return image.Rectangle{}, err
	}

	if err := local.Save(cfg.Output.Camera, order); err != nil {
		utils.RemoveFileNoError(cfg.Output.Camera)
		return image.Rectangle{}, errors.Wrapf(err, "cannot write cropped camera to %q", cfg.Output.Camera)
	}
	logger.Infow("wrote cropped camera", "output", cfg.Output.Camera, "order", order.String(),
		"width", region.Dx(), "height", region.Dy())
	return region, nil
}

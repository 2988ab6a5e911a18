package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/geocam/camera"
	"go.viam.com/geocam/logging"
)

const validJob = `{
	"image": {"width_px": 2000, "height_px": 1500},
	"camera": "scene.rpb",
	"scene": {
		"lower_left": {"lon": -105.001, "lat": 39.999, "elev": 1600},
		"upper_right": {"lon": -104.999, "lat": 40.001, "elev": 1700}
	},
	"uncertainty_meters": 10,
	"output": {"camera": "/tmp/out/crop.rpb", "order": "vxl"}
}`

func TestFromReader(t *testing.T) {
	logger, observed := logging.NewObservedTestLogger(t)
	cfg, err := FromReader(context.Background(), "/data/jobs/job.json", strings.NewReader(validJob), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, "/data/jobs/job.json")
	test.That(t, cfg.Image, test.ShouldResemble, ImageConfig{Width: 2000, Height: 1500})
	test.That(t, cfg.Camera, test.ShouldEqual, "/data/jobs/scene.rpb")
	test.That(t, cfg.LVCS, test.ShouldEqual, "")
	test.That(t, cfg.Output.Camera, test.ShouldEqual, "/tmp/out/crop.rpb")
	test.That(t, cfg.Uncertainty, test.ShouldEqual, 10.)
	test.That(t, cfg.Scene.LowerLeft.Vector().X, test.ShouldEqual, -105.001)
	test.That(t, cfg.Scene.UpperRight.Vector().Z, test.ShouldEqual, 1700.)

	order, err := cfg.Output.CoefficientOrder()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, order, test.ShouldEqual, camera.OrderVXL)
	test.That(t, observed.FilterMessage("read crop job").Len(), test.ShouldEqual, 1)
}

func TestFromReaderErrors(t *testing.T) {
	ctx := context.Background()

	_, err := FromReader(ctx, "somepath", strings.NewReader(""), nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "EOF")

	_, err = FromReader(ctx, "somepath", strings.NewReader(`{"image": 1}`), nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to decode crop job from json")

	_, err = FromReader(ctx, "somepath", strings.NewReader(`{}`), nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"width_px" is required`)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = FromReader(cancelled, "somepath", strings.NewReader(validJob), nil)
	test.That(t, err, test.ShouldBeError, context.Canceled)
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GEOCAM_OUT", "crops")
	job := strings.Replace(validJob, "/tmp/out/crop.rpb", "${GEOCAM_OUT}/crop.rpb", 1)
	path := filepath.Join(dir, "job.json")
	test.That(t, os.WriteFile(path, []byte(job), 0o600), test.ShouldBeNil)

	cfg, err := Read(context.Background(), path, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Output.Camera, test.ShouldEqual, filepath.Join(dir, "crops", "crop.rpb"))
	test.That(t, cfg.Camera, test.ShouldEqual, filepath.Join(dir, "scene.rpb"))

	_, err = Read(context.Background(), filepath.Join(dir, "missing.json"), nil)
	test.That(t, err, test.ShouldNotBeNil)
}

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/geocam/logging"
	"go.viam.com/geocam/utils"
)

// Versioning variables which are replaced by LD flags.
var (
	Version     = ""
	GitRevision = ""
)

// Read reads a crop job from the given file. Environment variables in the file are expanded
// before it is decoded.
func Read(ctx context.Context, filePath string, logger logging.Logger) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(ctx, filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a crop job from the given reader. Relative paths inside it are resolved
// against the directory of originalPath.
func FromReader(ctx context.Context, originalPath string, r io.Reader, logger logging.Logger) (*Config, error) {
	cfg := &Config{ConfigFilePath: originalPath}
	if err := json.NewDecoder(r).Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode crop job from json")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(originalPath)
	cfg.Camera = utils.ResolvePath(dir, cfg.Camera)
	cfg.LVCS = utils.ResolvePath(dir, cfg.LVCS)
	cfg.Output.Camera = utils.ResolvePath(dir, cfg.Output.Camera)

	if err := cfg.Validate("crop"); err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debugw("read crop job", "path", originalPath, "camera", cfg.Camera, "output", cfg.Output.Camera)
	}
	return cfg, nil
}

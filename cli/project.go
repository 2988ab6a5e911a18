package cli

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.viam.com/utils"

	"go.viam.com/geocam/camera"
)

// ProjectAction prints the image coordinates (u, v) of a world point, or one line per point of
// the --points file.
func ProjectAction(c *cli.Context) error {
	var points []r3.Vector
	if path := c.Path(pointsFlag); path != "" {
		if c.Args().Len() != 0 {
			return errors.New("give either <x> <y> <z> or --points, not both")
		}
		var err error
		if points, err = readPoints(path); err != nil {
			return err
		}
	} else {
		p, err := parseVector(c, "x", "y", "z")
		if err != nil {
			return err
		}
		points = []r3.Vector{p}
	}

	cam, err := loadCamera(c.Path(cameraFlag))
	if err != nil {
		return err
	}
	logger, closeLogs := newLogger(c)
	defer closeLogs()
	logger.Debugw("loaded camera", "path", c.Path(cameraFlag), "type", cam.TypeName(), "points", len(points))

	projected, err := camera.ProjectPointsParallel(c.Context, cam, points)
	if err != nil {
		return err
	}
	for _, uv := range projected {
		printf(c.App.Writer, "%s", formatFloats(uv.X, uv.Y))
	}
	return nil
}

// readPoints reads one point per non-empty line as three numbers separated by spaces or commas.
// Lines starting with # are skipped.
func readPoints(path string) ([]r3.Vector, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)

	var points []r3.Vector
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
		if len(fields) != 3 {
			return nil, errors.Errorf("%s:%d: expected x y z but got %q", path, lineNum, line)
		}
		var xyz [3]float64
		for i, field := range fields {
			if xyz[i], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, errors.Wrapf(err, "%s:%d", path, lineNum)
			}
		}
		points = append(points, r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

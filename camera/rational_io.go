package camera

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/geocam/geodesy"
)

// Keys of the rational camera text format.
const (
	keySpecID       = "SpecId"
	keyLineOffset   = "lineOffset"
	keySampOffset   = "sampOffset"
	keyLatOffset    = "latOffset"
	keyLongOffset   = "longOffset"
	keyHeightOffset = "heightOffset"
	keyLineScale    = "lineScale"
	keySampScale    = "sampScale"
	keyLatScale     = "latScale"
	keyLongScale    = "longScale"
	keyHeightScale  = "heightScale"
	keyLineNumCoef  = "lineNumCoef"
	keyLineDenCoef  = "lineDenCoef"
	keySampNumCoef  = "sampNumCoef"
	keySampDenCoef  = "sampDenCoef"

	lvcsMarker = "lvcs"
)

// Write writes the camera in the rational camera text format with coefficients in the given order.
func (c *RationalCamera) Write(w io.Writer, order CoefficientOrder) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "satId = \"????\";\nbandId = \"RGB\";\n%s = \"%s\";\nBEGIN_GROUP = IMAGE\n", keySpecID, order)
	fmt.Fprintf(bw, "  errBias = 0.0;\n  errRand = 0.0;\n")
	for _, kv := range []struct {
		key   string
		value float64
	}{
		{keyLineOffset, c.scaleOffsets[AxisV].Offset},
		{keySampOffset, c.scaleOffsets[AxisU].Offset},
		{keyLatOffset, c.scaleOffsets[AxisY].Offset},
		{keyLongOffset, c.scaleOffsets[AxisX].Offset},
		{keyHeightOffset, c.scaleOffsets[AxisZ].Offset},
		{keyLineScale, c.scaleOffsets[AxisV].Scale},
		{keySampScale, c.scaleOffsets[AxisU].Scale},
		{keyLatScale, c.scaleOffsets[AxisY].Scale},
		{keyLongScale, c.scaleOffsets[AxisX].Scale},
		{keyHeightScale, c.scaleOffsets[AxisZ].Scale},
	} {
		fmt.Fprintf(bw, "  %s = %s;\n", kv.key, formatFloat(kv.value))
	}
	coeffs := c.Coefficients(order)
	for _, poly := range []struct {
		key string
		row int
	}{
		{keyLineNumCoef, lineNumerator},
		{keyLineDenCoef, lineDenominator},
		{keySampNumCoef, sampleNumerator},
		{keySampDenCoef, sampleDenominator},
	} {
		values := make([]string, len(coeffs[poly.row]))
		for i, v := range coeffs[poly.row] {
			values[i] = "    " + formatFloat(v)
		}
		fmt.Fprintf(bw, "  %s = (\n%s);\n", poly.key, strings.Join(values, ",\n"))
	}
	fmt.Fprintf(bw, "END_GROUP = IMAGE\nEND;\n")
	return bw.Flush()
}

// Save writes the camera to a file in the rational camera text format.
func (c *RationalCamera) Save(path string, order CoefficientOrder) error {
	return saveFile(path, func(w io.Writer) error { return c.Write(w, order) })
}

// Write writes the rational camera followed by its LVCS.
func (c *LocalRationalCamera) Write(w io.Writer, order CoefficientOrder) error {
	if err := c.RationalCamera.Write(w, order); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, lvcsMarker); err != nil {
		return err
	}
	return c.lvcs.Write(w)
}

// Save writes the local rational camera to a file.
func (c *LocalRationalCamera) Save(path string, order CoefficientOrder) error {
	return saveFile(path, func(w io.Writer) error { return c.Write(w, order) })
}

func saveFile(path string, write func(io.Writer) error) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create camera file %q", path)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))
	return write(f)
}

// ParseRationalCamera parses a camera in the rational camera text format. Anything after the END
// statement is ignored.
func ParseRationalCamera(r io.Reader) (*RationalCamera, error) {
	cam, _, err := parseRational(bufio.NewScanner(r))
	return cam, err
}

// ParseLocalRationalCamera parses a rational camera followed by an "lvcs" line and the LVCS text
// form.
func ParseLocalRationalCamera(r io.Reader) (*LocalRationalCamera, error) {
	scanner := bufio.NewScanner(r)
	cam, ended, err := parseRational(scanner)
	if err != nil {
		return nil, err
	}
	if !ended {
		return nil, errors.New("local rational camera has no END statement")
	}

	var rest strings.Builder
	foundMarker := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !foundMarker {
			if line == "" {
				continue
			}
			if line != lvcsMarker {
				return nil, errors.Errorf("expected %q after END, got %q", lvcsMarker, line)
			}
			foundMarker = true
			continue
		}
		rest.WriteString(line)
		rest.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !foundMarker {
		return nil, errors.Errorf("local rational camera has no %s section", lvcsMarker)
	}
	var lvcs geodesy.LVCS
	if err := lvcs.Reads(rest.String()); err != nil {
		return nil, err
	}
	return &LocalRationalCamera{RationalCamera: *cam, lvcs: &lvcs}, nil
}

// ReadRationalCamera reads a rational camera file.
func ReadRationalCamera(path string) (*RationalCamera, error) {
	var cam *RationalCamera
	err := readFile(path, func(r io.Reader) (err error) {
		cam, err = ParseRationalCamera(r)
		return err
	})
	return cam, err
}

// ReadLocalRationalCamera reads a local rational camera file.
func ReadLocalRationalCamera(path string) (*LocalRationalCamera, error) {
	var cam *LocalRationalCamera
	err := readFile(path, func(r io.Reader) (err error) {
		cam, err = ParseLocalRationalCamera(r)
		return err
	})
	return cam, err
}

// LoadRationalCamera reads a file as a local rational camera and, failing that, as a rational
// camera.
func LoadRationalCamera(path string) (Camera, error) {
	local, localErr := ReadLocalRationalCamera(path)
	if localErr == nil {
		return local, nil
	}
	cam, err := ReadRationalCamera(path)
	if err == nil {
		return cam, nil
	}
	return nil, NewCameraLoadError(path, []string{LocalRationalTypeName, RationalTypeName}, multierr.Combine(localErr, err))
}

func readFile(path string, parse func(io.Reader) error) error {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "cannot open camera file %q", path)
	}
	defer goutils.UncheckedErrorFunc(f.Close)
	return parse(f)
}

// parseRational reads statements until END. It reports whether END was found.
func parseRational(scanner *bufio.Scanner) (*RationalCamera, bool, error) {
	values := map[string]string{}
	ended := false
	var pending string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if pending != "" {
			pending += " " + line
			if !strings.Contains(line, ")") {
				continue
			}
			line, pending = pending, ""
		}
		if line == "" {
			continue
		}
		if statement := strings.TrimSuffix(line, ";"); statement == "END" {
			ended = true
			break
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, false, errors.Errorf("malformed rational camera line %q", line)
		}
		value = strings.TrimSpace(value)
		if strings.HasPrefix(value, "(") && !strings.Contains(value, ")") {
			pending = line
			continue
		}
		values[strings.TrimSpace(key)] = strings.Trim(strings.TrimSuffix(value, ";"), `"`)
	}
	if err := scanner.Err(); err != nil {
		return nil, false, err
	}
	if pending != "" {
		return nil, false, errors.New("unterminated coefficient list")
	}

	order := OrderRPC00B
	if spec, ok := values[keySpecID]; ok {
		var err error
		if order, err = ParseCoefficientOrder(spec); err != nil {
			return nil, false, err
		}
	}

	scalar := func(key string) (float64, error) {
		s, ok := values[key]
		if !ok {
			return 0, errors.Errorf("rational camera is missing %s", key)
		}
		v, err := strconv.ParseFloat(s, 64)
		return v, errors.Wrapf(err, "bad %s", key)
	}
	var scalars [10]float64
	for i, key := range []string{
		keyLongScale, keyLongOffset, keyLatScale, keyLatOffset, keyHeightScale, keyHeightOffset,
		keySampScale, keySampOffset, keyLineScale, keyLineOffset,
	} {
		v, err := scalar(key)
		if err != nil {
			return nil, false, err
		}
		scalars[i] = v
	}

	var polys [numPolynomials][]float64
	for row, key := range [numPolynomials]string{keySampNumCoef, keySampDenCoef, keyLineNumCoef, keyLineDenCoef} {
		coeffs, err := parseCoefficients(key, values[key])
		if err != nil {
			return nil, false, err
		}
		polys[row] = coeffs
	}

	cam, err := NewRationalCamera(
		polys[sampleNumerator], polys[sampleDenominator], polys[lineNumerator], polys[lineDenominator],
		scalars[0], scalars[1], scalars[2], scalars[3], scalars[4], scalars[5],
		scalars[6], scalars[7], scalars[8], scalars[9],
		order,
	)
	return cam, ended, err
}

func parseCoefficients(key, value string) ([]float64, error) {
	if value == "" {
		return nil, errors.Errorf("rational camera is missing %s", key)
	}
	inner := strings.TrimSpace(value)
	if !strings.HasPrefix(inner, "(") || !strings.HasSuffix(inner, ")") {
		return nil, errors.Errorf("%s must be a parenthesized list", key)
	}
	fields := strings.Split(inner[1:len(inner)-1], ",")
	coeffs := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad %s coefficient", key)
		}
		coeffs = append(coeffs, v)
	}
	if len(coeffs) != NumMonomials {
		return nil, errors.Errorf("%s has %d coefficients, need %d", key, len(coeffs), NumMonomials)
	}
	return coeffs, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

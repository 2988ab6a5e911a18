package geodesy

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/geocam/utils"
)

// Write writes the LVCS in its text form:
//
//	<cs name>
//	<angular unit>
//	<length unit>
//	<origin lat> <origin lon> <origin elev>
//	<lat scale> <lon scale>
//	<lox> <loy> <theta>
func (l *LVCS) Write(w io.Writer) error {
	if !l.IsAnchored() {
		return ErrUnanchored
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n%s %s %s\n%s %s\n%s %s %s\n",
		l.csName, l.angUnit, l.lenUnit,
		formatFloat(l.originLat), formatFloat(l.originLon), formatFloat(l.originElev),
		formatFloat(l.latScale), formatFloat(l.lonScale),
		formatFloat(l.lox), formatFloat(l.loy), formatFloat(l.theta))
	return err
}

// Writes returns the text form of the LVCS.
func (l *LVCS) Writes() (string, error) {
	var sb strings.Builder
	if err := l.Write(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteFile writes the text form of the LVCS to a file.
func (l *LVCS) WriteFile(path string) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create lvcs file %q", path)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))
	return l.Write(f)
}

// Read replaces the LVCS with the one in the text form read from r. The result is anchored.
// Scales equal to the ones derived at the origin stay derived, so a later SetOrigin recomputes
// them; any other scales are kept as explicit.
func (l *LVCS) Read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	tokens := make([]string, 0, 11)
	for len(tokens) < 11 && scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "error reading lvcs")
	}
	if len(tokens) < 11 {
		return errors.Errorf("lvcs text form has %d tokens, need 11", len(tokens))
	}

	cs, err := ParseCSName(tokens[0])
	if err != nil {
		return err
	}
	angUnit, err := ParseAngUnit(tokens[1])
	if err != nil {
		return err
	}
	lenUnit, err := ParseLenUnit(tokens[2])
	if err != nil {
		return err
	}
	values := make([]float64, 0, 8)
	for _, tok := range tokens[3:] {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return errors.Wrapf(err, "bad lvcs value %q", tok)
		}
		values = append(values, v)
	}

	lvcs := NewLVCSWithScale(values[0], values[1], values[2], cs, 0, 0,
		angUnit, lenUnit, values[5], values[6], values[7])
	if latScale, lonScale := lvcs.Scale(); !sameScale(values[3], latScale) || !sameScale(values[4], lonScale) {
		lvcs = NewLVCSWithScale(values[0], values[1], values[2], cs, values[3], values[4],
			angUnit, lenUnit, values[5], values[6], values[7])
	}
	*l = *lvcs
	return nil
}

// Reads replaces the LVCS with the one in the given text form.
func (l *LVCS) Reads(s string) error {
	return l.Read(strings.NewReader(s))
}

// ReadFile replaces the LVCS with the one stored in a file.
func (l *LVCS) ReadFile(path string) error {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "cannot open lvcs file %q", path)
	}
	defer goutils.UncheckedErrorFunc(f.Close)
	return errors.Wrapf(l.Read(f), "cannot read lvcs file %q", path)
}

// ReadLVCSFile returns the LVCS stored in a file.
func ReadLVCSFile(path string) (*LVCS, error) {
	l := &LVCS{}
	if err := l.ReadFile(path); err != nil {
		return nil, err
	}
	return l, nil
}

func sameScale(read, derived float64) bool {
	return utils.Float64AlmostEqual(read, derived, 1e-12*math.Abs(derived))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

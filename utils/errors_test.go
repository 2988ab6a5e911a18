package utils

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

type someStruct struct{}

func TestNewUnexpectedTypeError(t *testing.T) {
	for _, tc := range []struct {
		name     string
		expected interface{}
		actual   interface{}
		errStr   string
	}{
		{"one", "exp1", 1, "expected string but got int"},
		{"two", (*someStruct)(nil), 2.0, "expected *utils.someStruct but got float64"},
		{"three", someStruct{}, "x", "expected utils.someStruct but got string"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := NewUnexpectedTypeError(tc.expected, tc.actual)
			test.That(t, err.Error(), test.ShouldEqual, tc.errStr)
		})
	}
}

func TestConfigValidationErrors(t *testing.T) {
	err := NewConfigValidationFieldRequiredError("crop", "camera_path")
	test.That(t, err.Error(), test.ShouldEqual, `error validating "crop": "camera_path" is required`)

	inner := errors.New("uncertainty must be non-negative")
	err = NewConfigValidationError("crop.uncertainty", inner)
	test.That(t, errors.Cause(err), test.ShouldEqual, inner)
}

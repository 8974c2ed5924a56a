package utils

import (
	"testing"

	"go.viam.com/test"
)

type (
	someStruct struct{}
	someIfc    interface{}
)

func TestDependencyTypeError(t *testing.T) {
	for _, tc := range []struct {
		name     string
		expected interface{}
		actual   interface{}
		errStr   string
	}{
		{"one", "exp1", "actual1", `dependency "one" should be an implementation of string but it was a string`},
		{"two", 1, "actual2", `dependency "two" should be an implementation of int but it was a string`},
		{"three", nil, "actual3", `dependency "three" should be an implementation of <unknown (nil interface)> but it was a string`},

		// an untyped nil interface loses its type
		{"four", (someIfc)(nil), 4, `dependency "four" should be an implementation of <unknown (nil interface)> but it was a int`},

		// a nil pointer to the interface keeps it
		{"five", (*someIfc)(nil), 5, `dependency "five" should be an implementation of utils.someIfc but it was a int`},

		{"six", (*someStruct)(nil), 6, `dependency "six" should be an implementation of *utils.someStruct but it was a int`},
		{"seven", someStruct{}, 7, `dependency "seven" should be an implementation of utils.someStruct but it was a int`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := DependencyTypeError(tc.name, tc.expected, tc.actual)
			test.That(t, err.Error(), test.ShouldEqual, tc.errStr)
		})
	}
}

func TestNewUnexpectedTypeError(t *testing.T) {
	test.That(t, NewUnexpectedTypeError((*someIfc)(nil), 5), test.ShouldBeError, "expected utils.someIfc but got int")
	test.That(t, NewUnexpectedTypeError(&someStruct{}, "x"), test.ShouldBeError, "expected *utils.someStruct but got string")
	test.That(t, DependencyNotFoundError("medium"), test.ShouldBeError, `dependency "medium" not found`)
}

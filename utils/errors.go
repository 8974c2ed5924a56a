// Package utils contains small helpers shared across beaconrc.
package utils

import (
	"reflect"

	"github.com/pkg/errors"
)

// TypeStr names the type of v for error messages. A typed nil pointer to an interface names the
// interface itself.
func TypeStr(v interface{}) string {
	if v == nil {
		return "<unknown (nil interface)>"
	}
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Interface {
		return t.Elem().String()
	}
	return t.String()
}

// NewUnexpectedTypeError is used when there is a type mismatch.
func NewUnexpectedTypeError(expected, actual interface{}) error {
	return errors.Errorf("expected %s but got %T", TypeStr(expected), actual)
}

// DependencyTypeError is used when a named piece of hardware is not what a robot expects.
func DependencyTypeError(name string, expected, actual interface{}) error {
	return errors.Errorf("dependency %q should be an implementation of %s but it was a %T", name, TypeStr(expected), actual)
}

// DependencyNotFoundError is used when a robot is missing a named piece of hardware.
func DependencyNotFoundError(name string) error {
	return errors.Errorf("dependency %q not found", name)
}

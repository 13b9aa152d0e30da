//
// errors.go
//
// Copyright (c) 2021 Markku Rossi
//
// All rights reserved.
//

package validate

import (
	"errors"
	"fmt"
	"reflect"
)

// Error codes.
const (
	CodeInvalidArgType = "ERR_INVALID_ARG_TYPE"
	CodeOutOfRange     = "ERR_OUT_OF_RANGE"
)

// Sentinels for errors.Is matching.
var (
	ErrInvalidArgType = errors.New("invalid argument type")
	ErrOutOfRange     = errors.New("value out of range")
)

// ArgTypeError reports an argument of the wrong kind.
type ArgTypeError struct {
	Name     string
	Expected string
	Value    interface{}
}

func (e *ArgTypeError) Error() string {
	return fmt.Sprintf("the %q argument must be of type %s. Received %s",
		e.Name, e.Expected, Describe(e.Value))
}

// Code returns CodeInvalidArgType.
func (e *ArgTypeError) Code() string {
	return CodeInvalidArgType
}

// Is matches ErrInvalidArgType.
func (e *ArgTypeError) Is(target error) bool {
	return target == ErrInvalidArgType
}

// RangeError reports a numeric argument outside its valid domain.
type RangeError struct {
	Name  string
	Range string
	Value interface{}
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("the value of %q is out of range. It must be %s. Received %s",
		e.Name, e.Range, Describe(e.Value))
}

// Code returns CodeOutOfRange.
func (e *RangeError) Code() string {
	return CodeOutOfRange
}

// Is matches ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Code returns the error code of err or an empty string if err is not
// a validation error.
func Code(err error) string {
	var coder interface {
		Code() string
	}
	if errors.As(err, &coder) {
		return coder.Code()
	}
	return ""
}

// Describe formats value for error messages.
func Describe(value interface{}) string {
	if value == nil {
		return "nil"
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Interface:
		if v.IsNil() {
			return fmt.Sprintf("nil %T", value)
		}
		return fmt.Sprintf("an instance of %T", value)

	case reflect.String:
		return fmt.Sprintf("type string (%q)", value)

	default:
		return fmt.Sprintf("type %T (%v)", value, value)
	}
}

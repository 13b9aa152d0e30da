//
// validate.go
//
// Copyright (c) 2021 Markku Rossi
//
// All rights reserved.
//

// Package validate implements argument validators that fail with
// ArgTypeError or RangeError and otherwise return normally.
package validate

import (
	"fmt"
	"math"
)

// Safe integer bounds. Values outside this range cannot be carried
// losslessly by every client of the controller.
const (
	MaxSafeInteger = 1<<53 - 1
	MinSafeInteger = -MaxSafeInteger
)

// Int checks that value is within [min, max].
func Int(value int, name string, min, max int64) error {
	v := int64(value)
	if v < min || v > max {
		return &RangeError{
			Name:  name,
			Range: bounds(min, max),
			Value: value,
		}
	}
	return nil
}

// SafeInt checks that value is a safe integer.
func SafeInt(value int, name string) error {
	return Int(value, name, MinSafeInteger, MaxSafeInteger)
}

// Integer converts the loosely typed value into an int within [min,
// max]. Non-numeric values fail with ArgTypeError. Numbers that are
// not integers (fractions, NaN, infinities) or are outside the bounds
// fail with RangeError.
func Integer(value interface{}, name string, min, max int64) (int, error) {
	var i int64

	switch v := value.(type) {
	case int:
		i = int64(v)
	case int8:
		i = int64(v)
	case int16:
		i = int64(v)
	case int32:
		i = int64(v)
	case int64:
		i = v
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, outOfRange(name, min, max, value)
		}
		i = int64(v)
	case uint8:
		i = int64(v)
	case uint16:
		i = int64(v)
	case uint32:
		i = int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return 0, outOfRange(name, min, max, value)
		}
		i = int64(v)
	case float32:
		return Integer(float64(v), name, min, max)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return 0, &RangeError{
				Name:  name,
				Range: "an integer",
				Value: value,
			}
		}
		if v < float64(min) || v > float64(max) {
			return 0, outOfRange(name, min, max, value)
		}
		i = int64(v)
	default:
		return 0, &ArgTypeError{
			Name:     name,
			Expected: "number",
			Value:    value,
		}
	}
	if i < min || i > max {
		return 0, outOfRange(name, min, max, value)
	}
	return int(i), nil
}

// SafeInteger is Integer with the safe integer bounds.
func SafeInteger(value interface{}, name string) (int, error) {
	return Integer(value, name, MinSafeInteger, MaxSafeInteger)
}

// Boolean checks that value is a bool.
func Boolean(value interface{}, name string) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, &ArgTypeError{
			Name:     name,
			Expected: "boolean",
			Value:    value,
		}
	}
	return b, nil
}

func outOfRange(name string, min, max int64, value interface{}) error {
	return &RangeError{
		Name:  name,
		Range: bounds(min, max),
		Value: value,
	}
}

func bounds(min, max int64) string {
	return fmt.Sprintf(">= %d && <= %d", min, max)
}

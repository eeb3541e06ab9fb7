// File: treeline/config/value.go
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// String retrieves the value of key in the section at path as a string,
// converting common scalar types. It fails when the key is absent.
func (s *Store) String(path, key string) (string, error) {
	val, err := s.requireValue(path, key)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil
	}

	switch v := val.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case fmt.Stringer:
		return v.String(), nil
	case []byte:
		return string(v), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for %q.%s", val, path, key)
	}
}

// Int64 retrieves the value of key in the section at path as an int64,
// converting numeric types and parsable strings.
func (s *Store) Int64(path, key string) (int64, error) {
	val, err := s.requireValue(path, key)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int8, int16, int32:
		return reflect.ValueOf(val).Int(), nil
	case uint, uint8, uint16, uint32, uint64:
		return int64(reflect.ValueOf(val).Uint()), nil
	case float64:
		return int64(v), nil
	case float32:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to int64: %w", v, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("cannot convert type %T to int64 for %q.%s", val, path, key)
	}
}

// Bool retrieves the value of key in the section at path as a bool,
// converting parsable strings and treating numbers as non-zero tests.
func (s *Store) Bool(path, key string) (bool, error) {
	val, err := s.requireValue(path, key)
	if err != nil {
		return false, err
	}

	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("cannot convert string %q to bool: %w", v, err)
		}
		return b, nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return false, err
		}
		return f != 0, nil
	default:
		return false, fmt.Errorf("cannot convert type %T to bool for %q.%s", val, path, key)
	}
}

// Float64 retrieves the value of key in the section at path as a
// float64, converting numeric types and parsable strings.
func (s *Store) Float64(path, key string) (float64, error) {
	val, err := s.requireValue(path, key)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to float64: %w", v, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot convert type %T to float64 for %q.%s", val, path, key)
	}
}

func (s *Store) requireValue(path, key string) (any, error) {
	sect, err := s.RequireSection(path)
	if err != nil {
		return nil, err
	}
	val, ok := sect[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q has no key %q", ErrSectionNotFound, path, key)
	}
	return val, nil
}

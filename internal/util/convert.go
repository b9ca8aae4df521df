package util

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// ConvertTo converts value to T using Convert
func ConvertTo[T any](value any) (T, error) {
	var zero T
	v, err := Convert(value, reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	if t, ok := v.Interface().(T); ok {
		return t, nil
	}
	return zero, nil
}

// Convert converts a parsed argument value to typ. Strings are parsed according to the target kind, numbers are
// converted between numeric kinds and scalars become single element slices. nil yields the zero value.
func Convert(value any, typ reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(typ), nil
	}
	src := reflect.ValueOf(value)
	if src.Type().AssignableTo(typ) {
		out := reflect.New(typ).Elem()
		out.Set(src)
		return out, nil
	}

	if typ.Kind() == reflect.Ptr {
		elem, err := Convert(value, typ.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(typ.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	}

	if typ.Kind() == reflect.Slice {
		return convertSlice(src, typ)
	}

	if s, ok := value.(string); ok {
		return parseString(s, typ)
	}

	if isNumeric(src.Kind()) && isNumeric(typ.Kind()) {
		return src.Convert(typ), nil
	}

	return reflect.Value{}, fmt.Errorf("cannot convert %T to %v", value, typ)
}

func convertSlice(src reflect.Value, typ reflect.Type) (reflect.Value, error) {
	if src.Kind() != reflect.Slice && src.Kind() != reflect.Array {
		elem, err := Convert(src.Interface(), typ.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.Append(reflect.MakeSlice(typ, 0, 1), elem), nil
	}

	out := reflect.MakeSlice(typ, src.Len(), src.Len())
	for i := 0; i < src.Len(); i++ {
		elem, err := Convert(src.Index(i).Interface(), typ.Elem())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(elem)
	}
	return out, nil
}

func parseString(s string, typ reflect.Type) (reflect.Value, error) {
	out := reflect.New(typ).Elem()
	trimmed := strings.TrimSpace(s)

	switch typ {
	case timeType:
		t, err := dateparse.ParseAny(trimmed)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Set(reflect.ValueOf(t))
		return out, nil
	case durationType:
		d, err := time.ParseDuration(trimmed)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(int64(d))
		return out, nil
	}

	switch typ.Kind() {
	case reflect.String:
		out.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(trimmed, 10, typ.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(trimmed, 10, typ.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(trimmed, typ.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetFloat(f)
	case reflect.Interface:
		out.Set(reflect.ValueOf(s))
	default:
		return reflect.Value{}, fmt.Errorf("cannot convert string to %v", typ)
	}

	return out, nil
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

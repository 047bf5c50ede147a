package tag

import (
	"encoding"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var (
	durationType = reflect.TypeFor[time.Duration]()
	bytesType    = reflect.TypeFor[[]byte]()
)

// parse converts str and stores it into value. Slices take a comma separated list.
func parse(value reflect.Value, str string) error {
	if value.CanAddr() {
		if u, ok := value.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(str))
		}
	}

	if value.Kind() != reflect.Slice {
		return parseScalar(value, strings.TrimSpace(str))
	}
	if value.Type() == bytesType {
		value.SetBytes([]byte(str))
		return nil
	}

	str = strings.TrimSpace(str)
	if str == "" {
		value.Set(reflect.MakeSlice(value.Type(), 0, 0))
		return nil
	}

	parts := strings.Split(str, ",")
	slice := reflect.MakeSlice(value.Type(), len(parts), len(parts))
	for i, part := range parts {
		if err := parseScalar(slice.Index(i), strings.TrimSpace(part)); err != nil {
			return err
		}
	}
	value.Set(slice)
	return nil
}

func parseScalar(value reflect.Value, str string) error {
	switch value.Kind() {
	case reflect.String:
		value.SetString(str)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		if value.Type() == durationType {
			d, err := cast.ToDurationE(str)
			if err != nil {
				return err
			}
			n = int64(d)
		} else {
			var err error
			if n, err = cast.ToInt64E(str); err != nil {
				return err
			}
		}
		if value.OverflowInt(n) {
			return ErrOverflow
		}
		value.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(str)
		if err != nil {
			return err
		}
		if value.OverflowUint(n) {
			return ErrOverflow
		}
		value.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(str)
		if err != nil {
			return err
		}
		if value.OverflowFloat(f) {
			return ErrOverflow
		}
		value.SetFloat(f)

	case reflect.Bool:
		b, err := cast.ToBoolE(str)
		if err != nil {
			return err
		}
		value.SetBool(b)

	default:
		return ErrUnsupportedType
	}
	return nil
}

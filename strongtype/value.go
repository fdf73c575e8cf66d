package strongtype

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"time"

	"github.com/spf13/cast"

	"github.com/okra-platform/adaptergen/internal/errors"
)

// ProviderValue converts a raw value into a driver.Value using the
// database/sql default conversion rules. Values implementing driver.Valuer
// are asked directly.
func ProviderValue(v any) (driver.Value, error) {
	return driver.DefaultParameterConverter.ConvertValue(v)
}

// ScanProvider converts a value read from a database column into T. NULL
// yields the zero value. If *T implements sql.Scanner it is used; otherwise
// the value is coerced with spf13/cast.
func ScanProvider[T any](src any) (T, error) {
	var zero T
	if src == nil {
		return zero, nil
	}
	if v, ok := src.(T); ok {
		return v, nil
	}
	if s, ok := any(&zero).(sql.Scanner); ok {
		if err := s.Scan(src); err != nil {
			return zero, errors.Wrapf(err, "scan %T", zero)
		}
		return zero, nil
	}
	return coerce[T](src)
}

// FormatText renders a raw value as text. time.Time uses RFC 3339 with
// nanoseconds; encoding.TextMarshaler is honoured; everything else goes
// through cast.ToStringE.
func FormatText(v any) (string, error) {
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339Nano), nil
	case encoding.TextMarshaler:
		b, err := t.MarshalText()
		if err != nil {
			return "", errors.Wrapf(err, "format %T", v)
		}
		return string(b), nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", errors.Wrapf(err, "format %T", v)
	}
	return s, nil
}

// ParseText parses text into T, the inverse of FormatText. Numeric text
// follows Go literal syntax as cast does, so "0x1f" is 31.
func ParseText[T any](text string) (T, error) {
	var zero T
	if u, ok := any(&zero).(encoding.TextUnmarshaler); ok {
		if err := u.UnmarshalText([]byte(text)); err != nil {
			return zero, errors.Wrapf(err, "parse %q as %T", text, zero)
		}
		return zero, nil
	}
	return coerce[T](text)
}

func coerce[T any](src any) (T, error) {
	var zero T
	if b, ok := src.([]byte); ok {
		if _, wantBytes := any(zero).([]byte); !wantBytes {
			src = string(b)
		}
	}

	var (
		out any
		err error
	)
	switch any(zero).(type) {
	case int:
		out, err = cast.ToIntE(src)
	case int64:
		out, err = cast.ToInt64E(src)
	case int32:
		out, err = cast.ToInt32E(src)
	case int16:
		out, err = cast.ToInt16E(src)
	case int8:
		out, err = cast.ToInt8E(src)
	case uint:
		out, err = cast.ToUintE(src)
	case uint64:
		out, err = cast.ToUint64E(src)
	case uint32:
		out, err = cast.ToUint32E(src)
	case float64:
		out, err = cast.ToFloat64E(src)
	case float32:
		out, err = cast.ToFloat32E(src)
	case bool:
		out, err = cast.ToBoolE(src)
	case string:
		out, err = cast.ToStringE(src)
	case time.Time:
		out, err = cast.ToTimeE(src)
	case time.Duration:
		out, err = cast.ToDurationE(src)
	case []byte:
		switch b := src.(type) {
		case []byte:
			out = append([]byte(nil), b...)
		default:
			var s string
			s, err = cast.ToStringE(src)
			out = []byte(s)
		}
	default:
		return zero, errors.Newf("cannot convert %T to %T", src, zero)
	}
	if err != nil {
		return zero, errors.Wrapf(err, "cannot convert %T to %T", src, zero)
	}
	return out.(T), nil
}

package strongtype

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/okra-platform/adaptergen/internal/errors"
)

// IntConverter is the base JSON converter for wrappers over int.
type IntConverter struct{}

func (IntConverter) Encode(value int) ([]byte, error) {
	return json.Marshal(value)
}

func (IntConverter) Decode(data []byte) (int, error) {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, errors.Wrap(err, "decode int")
	}
	return v, nil
}

// DoubleConverter is the base JSON converter for wrappers over float64.
type DoubleConverter struct{}

func (DoubleConverter) Encode(value float64) ([]byte, error) {
	return json.Marshal(value)
}

func (DoubleConverter) Decode(data []byte) (float64, error) {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, errors.Wrap(err, "decode float64")
	}
	return v, nil
}

// DateTimeConverter is the base JSON converter for wrappers over time.Time.
// Values are encoded as RFC 3339 strings with nanoseconds.
type DateTimeConverter struct{}

func (DateTimeConverter) Encode(value time.Time) ([]byte, error) {
	return json.Marshal(value.Format(time.RFC3339Nano))
}

func (DateTimeConverter) Decode(data []byte) (time.Time, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return time.Time{}, errors.Wrap(err, "decode datetime")
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "decode datetime")
	}
	return t, nil
}

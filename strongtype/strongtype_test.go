package strongtype_test

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/adaptergen/strongtype"
)

// orderID mirrors what adaptergen emits for
// @strongtype.GenerateAdapters(true, true, true) over Record[int].
type orderID struct {
	strongtype.Record[int]
}

func newOrderID(value int) orderID {
	var w orderID
	w.Set(value)
	return w
}

type orderIDValueConverter struct{}

var _ strongtype.ValueConverter[orderID, int] = orderIDValueConverter{}

func (orderIDValueConverter) ToProvider(model orderID) int   { return model.Get() }
func (orderIDValueConverter) FromProvider(value int) orderID { return newOrderID(value) }

func (w orderID) Value() (driver.Value, error) {
	return strongtype.ProviderValue(orderIDValueConverter{}.ToProvider(w))
}

func (w *orderID) Scan(src any) error {
	value, err := strongtype.ScanProvider[int](src)
	if err != nil {
		return err
	}
	*w = orderIDValueConverter{}.FromProvider(value)
	return nil
}

type orderIDJSONConverter struct {
	strongtype.IntConverter
}

var _ strongtype.JSONConverter[orderID, int] = orderIDJSONConverter{}

func (orderIDJSONConverter) CreateInstance(value int) orderID { return newOrderID(value) }
func (orderIDJSONConverter) GetValue(instance orderID) int    { return instance.Get() }

func (w orderID) MarshalJSON() ([]byte, error) {
	c := orderIDJSONConverter{}
	return c.Encode(c.GetValue(w))
}

func (w *orderID) UnmarshalJSON(data []byte) error {
	c := orderIDJSONConverter{}
	value, err := c.Decode(data)
	if err != nil {
		return err
	}
	*w = c.CreateInstance(value)
	return nil
}

type orderIDTypeConverter struct{}

var _ strongtype.TypeConverter[orderID, int] = orderIDTypeConverter{}

func (orderIDTypeConverter) ConvertFromType(value int) orderID { return newOrderID(value) }
func (orderIDTypeConverter) ConvertToType(value orderID) int   { return value.Get() }

func (w orderID) MarshalText() ([]byte, error) {
	text, err := strongtype.FormatText(orderIDTypeConverter{}.ConvertToType(w))
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

func (w *orderID) UnmarshalText(text []byte) error {
	value, err := strongtype.ParseText[int](string(text))
	if err != nil {
		return err
	}
	*w = orderIDTypeConverter{}.ConvertFromType(value)
	return nil
}

// Test: wrappers embedding Record compare by value and print their value
func TestRecord(t *testing.T) {
	a := newOrderID(7)
	b := newOrderID(7)
	assert.Equal(t, 7, a.Get())
	assert.True(t, a == b)
	assert.False(t, a == newOrderID(8))
	assert.Equal(t, "7", a.String())
}

// Test: Class holds non-comparable values
func TestClass(t *testing.T) {
	var c strongtype.Class[[]string]
	c.Set([]string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, c.Get())
	assert.Equal(t, "[a b]", c.String())
}

// Test: the wrapper round-trips through driver.Valuer and sql.Scanner
func TestPersistenceRoundTrip(t *testing.T) {
	v, err := newOrderID(42).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	tests := []struct {
		name string
		src  any
		want int
	}{
		{name: "int64", src: int64(42), want: 42},
		{name: "bytes", src: []byte("42"), want: 42},
		{name: "string", src: "42", want: 42},
		{name: "float", src: float64(42), want: 42},
		{name: "null", src: nil, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got orderID
			require.NoError(t, got.Scan(tt.src))
			assert.Equal(t, newOrderID(tt.want), got)
		})
	}
}

// Test: scanning a value that cannot become the raw type fails
func TestScanError(t *testing.T) {
	var got orderID
	err := got.Scan("forty-two")
	require.Error(t, err)
}

// Test: the wrapper encodes as its bare value in JSON
func TestJSONRoundTrip(t *testing.T) {
	type order struct {
		ID orderID `json:"id"`
	}

	data, err := json.Marshal(order{ID: newOrderID(42)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":42}`, string(data))

	var got order
	require.NoError(t, json.Unmarshal([]byte(`{"id":9}`), &got))
	assert.Equal(t, newOrderID(9), got.ID)

	err = json.Unmarshal([]byte(`{"id":"x"}`), &got)
	assert.Error(t, err)
}

// Test: the wrapper round-trips through text
func TestTextRoundTrip(t *testing.T) {
	text, err := newOrderID(42).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "42", string(text))

	var got orderID
	require.NoError(t, got.UnmarshalText([]byte("13")))
	assert.Equal(t, newOrderID(13), got)

	assert.Error(t, got.UnmarshalText([]byte("thirteen")))
}

// Test: base JSON converters encode their raw types
func TestJSONConverters(t *testing.T) {
	t.Run("double", func(t *testing.T) {
		var c strongtype.DoubleConverter
		data, err := c.Encode(1.5)
		require.NoError(t, err)
		assert.Equal(t, "1.5", string(data))

		v, err := c.Decode([]byte("2.25"))
		require.NoError(t, err)
		assert.Equal(t, 2.25, v)
	})

	t.Run("datetime", func(t *testing.T) {
		var c strongtype.DateTimeConverter
		at := time.Date(2024, 3, 1, 12, 30, 0, 500, time.UTC)
		data, err := c.Encode(at)
		require.NoError(t, err)
		assert.Equal(t, `"2024-03-01T12:30:00.0000005Z"`, string(data))

		v, err := c.Decode(data)
		require.NoError(t, err)
		assert.True(t, at.Equal(v))

		_, err = c.Decode([]byte(`"yesterday"`))
		assert.Error(t, err)
	})

	t.Run("int rejects fractions", func(t *testing.T) {
		var c strongtype.IntConverter
		_, err := c.Decode([]byte("1.5"))
		assert.Error(t, err)
	})
}

// Test: FormatText and ParseText agree for the supported raw types
func TestText(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	s, err := strongtype.FormatText(at)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T12:30:00Z", s)
	parsed, err := strongtype.ParseText[time.Time](s)
	require.NoError(t, err)
	assert.True(t, at.Equal(parsed))

	s, err = strongtype.FormatText(2.5)
	require.NoError(t, err)
	assert.Equal(t, "2.5", s)
	f, err := strongtype.ParseText[float64](s)
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	b, err := strongtype.ParseText[bool]("true")
	require.NoError(t, err)
	assert.True(t, b)

	raw, err := strongtype.ParseText[[]byte]("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), raw)

	_, err = strongtype.ParseText[struct{ X int }]("1")
	assert.Error(t, err)
}

// Test: ProviderValue normalises raw values to driver types
func TestProviderValue(t *testing.T) {
	tests := []struct {
		in   any
		want driver.Value
	}{
		{in: 3, want: int64(3)},
		{in: 1.5, want: 1.5},
		{in: "x", want: "x"},
		{in: true, want: true},
	}
	for _, tt := range tests {
		got, err := strongtype.ProviderValue(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := strongtype.ProviderValue(struct{}{})
	assert.Error(t, err)
}

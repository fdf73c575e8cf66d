package strongtype

import "fmt"

// Record is the base of value-like strong types. Wrappers embedding a Record
// are comparable with ==.
type Record[T comparable] struct {
	value T
}

// Get returns the wrapped value.
func (r Record[T]) Get() T {
	return r.value
}

// Set replaces the wrapped value.
func (r *Record[T]) Set(v T) {
	r.value = v
}

func (r Record[T]) String() string {
	return fmt.Sprint(r.value)
}

// Class is the base of strong types over values that are not comparable,
// such as slices or structs holding them.
type Class[T any] struct {
	value T
}

// Get returns the wrapped value.
func (c Class[T]) Get() T {
	return c.value
}

// Set replaces the wrapped value.
func (c *Class[T]) Set(v T) {
	c.value = v
}

func (c Class[T]) String() string {
	return fmt.Sprint(c.value)
}

// GenerateAdapters is the marker type named by the annotation. Its fields
// document the positional arguments: persistence, json, conversion.
type GenerateAdapters struct {
	Persistence bool
	JSON        bool
	Conversion  bool
}

// ValueConverter translates a wrapper to and from the value a persistence
// layer stores.
type ValueConverter[W, T any] interface {
	ToProvider(model W) T
	FromProvider(value T) W
}

// JSONConverter is implemented by generated JSON adapters: the embedded base
// converter supplies Encode and Decode, the adapter supplies the wrapping.
type JSONConverter[W, T any] interface {
	CreateInstance(value T) W
	GetValue(instance W) T
	Encode(value T) ([]byte, error)
	Decode(data []byte) (T, error)
}

// TypeConverter converts between a wrapper and its raw value for text and UI
// layers.
type TypeConverter[W, T any] interface {
	ConvertFromType(value T) W
	ConvertToType(value W) T
}

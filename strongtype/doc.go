// Package strongtype is the runtime for adaptergen-generated code.
//
// A strong type is a struct that embeds Record or Class and carries the
// GenerateAdapters annotation:
//
//	// OrderID identifies an order.
//	//
//	// @strongtype.GenerateAdapters(true, true, false)
//	type OrderID struct {
//		strongtype.Record[int]
//	}
//
// Record or Class may sit behind any embedded field, directly or through
// another embedded struct, but must be embedded by value: a wrapper embedding
// *strongtype.Record is rejected, since the generated factory starts from the
// zero value.
//
// Running adaptergen then writes order_id_adapters.gen.go next to it with a
// NewOrderID factory and the requested adapters. The adapters build on the
// interfaces, JSON converter bases and value helpers of this package.
package strongtype

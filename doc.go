// Package godeko provides:
//
// - Format-agnostic deserialization of parsed syntax trees into typed Go values (Value/Visitor/Decoder)
// - A stable diagnostic model via Diagnostics (code, byte-offset range, message, allowed keys)
// - Exhaustive error collection: one pass reports every defect instead of stopping at the first
// - Format adapters under json/ and yaml/ that reuse the same contracts unchanged
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the object DSL under dsl/, format adapters under json/ and yaml/, and the CLI under cmd/godeko.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	deserialized := json.Deserialize(source, godeko.Int[uint8](), json.Options{})
//	v, ok := deserialized.Value()
//	for _, diag := range deserialized.Diagnostics() { ... }
package godeko

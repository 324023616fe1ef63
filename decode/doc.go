// Package decode defines the narrow capability a structured input must offer
// to be walked by the location history decoder, and the helpers that build
// typed values on top of it.
//
// A Source is a pull parser: it reports the kind of the next value, lets the
// caller step into objects and arrays one member at a time, reads scalars and
// skips whole values. Two JSON implementations are provided:
//
//   - NewJSONStream reads from an io.Reader and never holds more than the
//     token being decoded plus the reader's buffer.
//   - NewJSONBytes walks an in-memory document with jsonparser.
//
// Objects are decoded through a Shape, which declares the fields of a
// structure, which of them are required, and whether undeclared fields are
// rejected (Strict) or skipped (Permissive).
//
// Every failure is reported as an *Error carrying an ErrorKind and the path of
// the value that failed, e.g.
//
//	locations[12].activeWifiScan.accessPoints[0]: unknown field "ssid", expected one of "mac", "strength", "frequencyMhz", "isConnected"
package decode

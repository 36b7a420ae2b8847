// Package types defines the estate record types, the Store and Table
// interfaces that storage substrates implement, and the error taxonomy
// shared by every layer.
//
// Records are plain values. Tables hand out copies; mutating a returned
// record never changes stored state until it is inserted again.
package types

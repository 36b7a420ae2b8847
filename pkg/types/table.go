package types

import "errors"

// Entry pairs a record with the key it is stored under.
type Entry[R any] struct {
	ID     uint64
	Record R
}

// Table is an ordered mapping from uint64 id to a record of type R.
// Implementations encode records with a bounded codec; a record whose
// encoding exceeds the ceiling is rejected rather than truncated.
type Table[R any] interface {
	// Get returns the record stored under id. The boolean is false when
	// no record exists; that is not an error.
	Get(id uint64) (R, bool, error)

	// Insert stores r under id, overwriting any existing record.
	Insert(id uint64, r R) error

	// Remove deletes the record under id and returns it. The boolean is
	// false when nothing was stored under id.
	Remove(id uint64) (R, bool, error)

	// Iterate returns every entry in ascending id order.
	Iterate() ([]Entry[R], error)

	// Len returns the number of stored records.
	Len() (int, error)
}

// Counter is a persistent scalar cell.
type Counter interface {
	Get() (uint64, error)
	Set(v uint64) error
}

// Store is the storage substrate consumed by the record service: three
// entity tables and the ID counter cell, bound to a backend by Attach.
type Store interface {
	// Attach connects the store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent. After Detach, table
	// and counter accessors return ErrStoreDetached.
	Detach() error

	Properties() (Table[Property], error)
	LeaseAgreements() (Table[LeaseAgreement], error)
	MaintenanceRequests() (Table[MaintenanceRequest], error)
	Counter() (Counter, error)
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Record encoding errors. Each indicates a record that cannot be stored or a
// stored record that cannot be read back.
var (
	ErrRecordTooLarge = errors.New("encoded record exceeds maximum size")
	ErrInvalidText    = errors.New("record text is not valid UTF-8")
	ErrCorruptRecord  = errors.New("stored record cannot be decoded")
)

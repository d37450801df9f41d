package domain

import "errors"

var (
	// ErrNotFound signals normal absence of a record. It is a representable
	// result of reads, not a failure.
	ErrNotFound = errors.New("record not found")

	// ErrStorageWrite wraps write rejections from the storage engine
	// (quota, corruption, connection loss). Propagated to the caller,
	// never retried automatically.
	ErrStorageWrite = errors.New("storage write rejected")

	// ErrFetch wraps remote port failures. Contained at the loader
	// boundary; consumers keep the last known good data.
	ErrFetch = errors.New("remote fetch failed")

	// ErrInvalidRecord signals a fetched record that fails shape
	// validation and must not be persisted.
	ErrInvalidRecord = errors.New("invalid record")
)

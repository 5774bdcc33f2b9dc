package table

import "errors"

var (
	// ErrDuplicateKey indicates an add would reuse an existing PlaneID or
	// PlaneStringID. The model is left unchanged.
	ErrDuplicateKey = errors.New("table: duplicate key")

	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("table: record not found")

	// ErrLastSkin indicates a skin removal was refused because it would
	// leave the owning plane with an empty skin list.
	ErrLastSkin = errors.New("table: cannot remove the last skin of a plane")
)

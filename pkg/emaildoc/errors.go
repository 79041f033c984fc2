package emaildoc

import "errors"

var (
	// ErrUnknownParent is returned when a child is appended under a parent id
	// that does not exist in the document. A dangling parent reference is a
	// programmer error and must never be silently ignored - it would produce
	// a corrupt, partially-rendered document.
	ErrUnknownParent = errors.New("unknown parent block id")

	// ErrNotContainer is returned when the target parent exists but is not a
	// container block type (only Layout blocks accept appended children;
	// ColumnsContainer children are declared on the column itself).
	ErrNotContainer = errors.New("parent block is not a container")

	// ErrDuplicateBlock is returned when a block id is inserted twice with
	// different payloads. Ids are never reused for two different semantic
	// purposes within one document.
	ErrDuplicateBlock = errors.New("duplicate block id")

	// ErrUnknownBlock is returned by the renderer when a childrenIds entry
	// references an id missing from the document map.
	ErrUnknownBlock = errors.New("unknown block id")

	// ErrInvalidDocument is returned by Validate when the document violates a
	// structural invariant (missing root, dangling reference, column count
	// mismatch).
	ErrInvalidDocument = errors.New("invalid document structure")
)

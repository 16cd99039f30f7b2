package scene

import "errors"

var (
	ErrSceneNotFound = errors.New("scene not found")

	// ErrInvalidReorder means the submitted id list does not match the
	// chapter's scenes exactly
	ErrInvalidReorder = errors.New("reorder list must contain every scene of the chapter exactly once")
)

package chapter

import "errors"

var (
	ErrChapterNotFound = errors.New("chapter not found")

	// ErrInvalidReorder means the submitted id list does not match the
	// project's chapters exactly
	ErrInvalidReorder = errors.New("reorder list must contain every chapter of the project exactly once")
)

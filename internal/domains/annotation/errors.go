package annotation

import "errors"

var (
	ErrAnnotationNotFound = errors.New("annotation not found")
)

package export

import "errors"

var (
	ErrExportNotFound = errors.New("export not found")

	// ErrUnsupportedType means no renderer is registered for the
	// requested export type
	ErrUnsupportedType = errors.New("unsupported export type")

	// ErrExportNotReady means a download was requested before the
	// rendering completed
	ErrExportNotReady = errors.New("export is not completed yet")
)

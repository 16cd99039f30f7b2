package draft

import "errors"

var (
	ErrDraftNotFound = errors.New("draft not found")
)

package autosave

import "errors"

var (
	ErrVersionNotFound = errors.New("autosave version not found")

	// ErrSceneNotInProject means the scene referenced by the save belongs
	// to a different project than the one in the request
	ErrSceneNotInProject = errors.New("scene does not belong to the project")
)

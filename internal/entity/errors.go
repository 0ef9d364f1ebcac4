package entity

import "errors"

// Domain error categories. Repositories and use cases return these (possibly
// wrapped) so HTTP handlers can map them to status codes without inspecting
// driver errors.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")
	ErrPermission = errors.New("permission denied")
	ErrConflict   = errors.New("conflict")
)

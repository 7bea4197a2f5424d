package services

import "errors"

// Error taxonomy. Controllers map these onto HTTP statuses; anything a
// component can degrade around (classifier, compressor) is absorbed inside
// that component and never reaches callers.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrUpload     = errors.New("upload failed")
)

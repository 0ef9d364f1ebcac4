package usecase

import "io"

// MediaStorage is the slice of the object store the use cases depend on.
// pkg/s3.Client satisfies it.
type MediaStorage interface {
	UploadFile(key string, file io.Reader, contentType string) (string, error)
	DeleteFile(key string) error
}

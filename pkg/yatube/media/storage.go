package media

import (
	"errors"
	"io"
	"net/http"
)

// ErrNotFound is returned when a stored file does not exist
var ErrNotFound = errors.New("media file not found")

// Storage keeps uploaded files. Paths are slash separated and relative to the storage root.
type Storage interface {
	Save(path string, reader io.Reader, mimeType string) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
}

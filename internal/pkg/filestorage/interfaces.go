package filestorage

import (
	"mime/multipart"
)

// FileStorage is the blob-storage collaborator: put bytes, get back a public
// URL; delete by that URL.
type FileStorage interface {
	// Save stores an uploaded file under the given subdirectory and returns
	// the publicly accessible URL.
	Save(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// Delete removes a stored file by its public URL. Deleting a file that no
	// longer exists is not an error.
	Delete(fileURL string) error
}

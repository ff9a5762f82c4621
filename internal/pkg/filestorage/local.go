package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/rahulk/studyshare/internal/pkg/logger"
)

// LocalStorage stores uploaded files on the local filesystem and serves them
// through the router's static /uploads handler.
type LocalStorage struct {
	basePath string // root directory for stored files
	baseURL  string // URL prefix mapped to basePath by the static handler
}

// NewLocalStorage creates a LocalStorage rooted at basePath. Returned URLs are
// prefixed with baseURL.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save stores an uploaded file under subPath with a uuid filename to avoid
// collisions, returning the public URL.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("no file provided")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dirPath := ls.basePath
	if subPath != "" {
		dirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	storedName := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	dstPath := filepath.Join(dirPath, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dstPath) // don't leave partial files behind
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	fileURL := ls.baseURL + "/" + storedName
	if subPath != "" {
		fileURL = ls.baseURL + "/" + subPath + "/" + storedName
	}

	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("savedAs", storedName).
		Str("url", fileURL).
		Msg("File saved")
	return fileURL, nil
}

// Delete removes a stored file given its public URL. Missing files are treated
// as already deleted.
func (ls *LocalStorage) Delete(fileURL string) error {
	if fileURL == "" {
		return nil
	}

	relPath := strings.TrimPrefix(fileURL, ls.baseURL)
	relPath = strings.TrimLeft(relPath, "/")
	if relPath == "" || relPath == "." {
		return fmt.Errorf("invalid file URL: %s", fileURL)
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(relPath))

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}

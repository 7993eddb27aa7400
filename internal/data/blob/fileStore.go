package blob

import (
	"io"
	"os"
	"path/filepath"

	"github.com/akolanti/DocScanAPI/internal/adapter/utils"
	"github.com/akolanti/DocScanAPI/internal/config"
	"github.com/akolanti/DocScanAPI/pkg/logger_i"
)

// FileStore keeps uploaded documents on local disk under a generated name,
// so the original bytes can be served back later.
type FileStore struct {
	dir    string
	logger *logger_i.Logger
}

func GetFileStore(dirName string) (*FileStore, error) {
	root, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(root, dirName)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, err
	}
	return &FileStore{
		dir:    dir,
		logger: logger_i.NewLogger("FileStore"),
	}, nil
}

// Save writes the uploaded bytes under uuid + original extension.
// Uploads with no extension default to .pdf.
func (s *FileStore) Save(originalName string, content io.Reader) (string, error) {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = config.DefaultFileExt
	}

	path := filepath.Join(s.dir, utils.GetNewUUID()+ext)
	destination, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := destination.Close(); err != nil {
			s.logger.Warn("closing stored file failed", "path", path, "error", err)
		}
	}()

	if _, err := io.Copy(destination, content); err != nil {
		os.Remove(path)
		return "", err
	}
	s.logger.Debug("stored upload", "path", path, "original_name", originalName)
	return path, nil
}

func (s *FileStore) Open(path string) (io.ReadCloser, bool) {
	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("opening stored file failed", "path", path, "error", err)
		}
		return nil, false
	}
	return file, true
}

func (s *FileStore) Remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Error("removing stored file failed", "path", path, "error", err)
	}
}

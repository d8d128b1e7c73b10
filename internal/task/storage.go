package task

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MaxUploadSize caps a single task submission.
const MaxUploadSize = 10 << 20 // 10MB

// FileStore persists an uploaded submission and returns its served URL.
type FileStore interface {
	Save(name string, src io.Reader) (string, error)
}

// LocalStorage writes submissions under a configured directory, served at
// /uploads. The original deployment used a cloud bucket; the contract is the
// same either way (store, return URL).
type LocalStorage struct {
	dir    string
	logger *zap.Logger
}

func NewLocalStorage(logger *zap.Logger) (*LocalStorage, error) {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir, logger: logger}, nil
}

// Dir reports where submissions land on disk, for the static file route.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save stores src under a name-timestamp id so repeated submissions of the
// same filename never collide.
func (s *LocalStorage) Save(name string, src io.Reader) (string, error) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	stored := fmt.Sprintf("%s-%d.pdf", base, time.Now().UnixMilli())

	dst, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	s.logger.Info("submission stored", zap.String("file", stored))
	return "/uploads/" + stored, nil
}

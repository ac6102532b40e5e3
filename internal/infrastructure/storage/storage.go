package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/RayuduBharani/meetocure-hs/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
	ErrForeignURL        = errors.New("url was not issued by this storage")
)

// FileStorage persists uploaded files and returns the URL they are served from.
// Delete takes a URL previously returned by Save.
type FileStorage interface {
	Save(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// New selects a FileStorage implementation from config.
func New(ctx context.Context, cfg config.StorageConfig, log *logrus.Logger) (FileStorage, error) {
	switch cfg.Driver {
	case "", "local":
		log.Infof("Storing uploads on local disk under %s", cfg.UploadDir)
		return NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL), nil
	case "s3":
		client, err := NewS3Client(ctx, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			return nil, err
		}
		log.Infof("Storing uploads in s3://%s/%s", cfg.S3Bucket, cfg.S3Prefix)
		return NewS3Storage(client, cfg.S3Bucket, cfg.S3Prefix, cfg.PublicBaseURL), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// objectName keeps the original extension and makes the name unique.
func objectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	return uuid.New().String() + ext
}

func joinURL(base string, parts ...string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path.Join(parts...), "/")
}

// relativeTo strips base from url, reporting false when url is not under base.
func relativeTo(base, url string) (string, bool) {
	prefix := strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(url, prefix)
	return rel, rel != ""
}

package assets

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/config"
	"github.com/jamizoram/storefront/pkg/errors"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Uploader stores admin-uploaded images on local disk and returns the public
// URL. Policy violations (type, size) come back as ErrAssetPolicy so callers
// can show the reason instead of a generic failure.
type Uploader struct {
	dir        string
	maxSize    int64
	publicBase string
	logger     *zap.Logger
}

// NewUploader creates an uploader writing into cfg.Dir
func NewUploader(cfg config.AssetsConfig, logger *zap.Logger) *Uploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Uploader{
		dir:        cfg.Dir,
		maxSize:    cfg.MaxSizeBytes,
		publicBase: strings.TrimSuffix(cfg.PublicBase, "/"),
		logger:     logger,
	}
}

// Save validates and persists one uploaded file, returning its public URL
func (u *Uploader) Save(header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", &errors.ErrAssetPolicy{Message: fmt.Sprintf("file type %q not allowed; use jpg, png or webp", ext)}
	}
	if header.Size > u.maxSize {
		return "", &errors.ErrAssetPolicy{Message: fmt.Sprintf("file exceeds %d byte limit", u.maxSize)}
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", fmt.Errorf("prepare asset dir: %w", err)
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	dstPath := filepath.Join(u.dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create asset file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("write asset file: %w", err)
	}

	u.logger.Info("Asset stored", zap.String("file", name), zap.Int64("size", header.Size))
	return u.publicBase + "/" + name, nil
}

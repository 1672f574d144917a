package repos

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"localcart/internal/domain"
)

// BlobRepo keeps uploaded images on disk under Root; they are served back
// from BaseURL (see the /media route).
type BlobRepo struct {
	Root    string
	BaseURL string
}

func NewBlobRepo(root, baseURL string) *BlobRepo {
	return &BlobRepo{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (r *BlobRepo) UploadBlob(ctx context.Context, path string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%w: bad path %q", domain.ErrUpload, path)
	}
	full := filepath.Join(r.Root, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}
	return r.BaseURL + "/" + filepath.ToSlash(clean), nil
}

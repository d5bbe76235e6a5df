// Package storage keeps uploaded photos on the local disk and serves them under a
// public base URL.
package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"
)

// MaxPhotoSize is the largest accepted upload.
const MaxPhotoSize = 5 << 20

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type LocalPhotoStorage struct {
	dir     string
	baseURL string
}

var _ ports.PhotoStorage = (*LocalPhotoStorage)(nil)

// NewLocalPhotoStorage creates dir if needed. Files are reachable at baseURL/<name>.
func NewLocalPhotoStorage(dir, baseURL string) (*LocalPhotoStorage, error) {
	if dir == "" {
		return nil, errs.NewValueIsRequiredError("dir")
	}
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalPhotoStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalPhotoStorage) Dir() string { return s.dir }

// Save sniffs the content type from the first bytes and only accepts images.
func (s *LocalPhotoStorage) Save(ctx context.Context, file ports.File) (string, error) {
	if file.Content == nil {
		return "", errs.NewValueIsRequiredError("photo")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r := bufio.NewReaderSize(file.Content, 512)
	head, err := r.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read photo: %w", err)
	}
	ext, ok := extensions[http.DetectContentType(head)]
	if !ok {
		return "", errs.NewValueIsInvalidError("photo content type")
	}

	name := kernel.NewUUID().String() + ext
	target := filepath.Join(s.dir, name)
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create photo: %w", err)
	}

	written, copyErr := io.Copy(f, io.LimitReader(r, MaxPhotoSize+1))
	closeErr := f.Close()
	if err = errors.Join(copyErr, closeErr); err == nil && written > MaxPhotoSize {
		err = errs.NewValueIsOutOfRangeError("photo size", written, 1, MaxPhotoSize)
	}
	if err != nil {
		_ = os.Remove(target)
		return "", err
	}

	return s.baseURL + "/" + name, nil
}

// Delete removes a photo previously returned by Save. URLs outside the base URL
// and photos that are already gone are ignored.
func (s *LocalPhotoStorage) Delete(_ context.Context, url string) error {
	name, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || name == "" || path.Base(name) != name {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

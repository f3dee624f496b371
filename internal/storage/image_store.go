// Package storage keeps uploaded offer images on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrImageTooLarge   = errors.New("image exceeds the upload size limit")
	ErrUnsupportedType = errors.New("image must be a JPEG, PNG, GIF or WebP file")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageStore saves an uploaded image and returns the public URL it is served under.
type ImageStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(url string) error
}

type diskImageStore struct {
	dir       string
	urlPrefix string
	maxBytes  int64
}

// NewDiskImageStore stores images under dir, served at urlPrefix.
func NewDiskImageStore(dir, urlPrefix string, maxBytes int64) (ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", dir, err)
	}
	return &diskImageStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/"), maxBytes: maxBytes}, nil
}

func (s *diskImageStore) Save(file *multipart.FileHeader) (string, error) {
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return "", ErrImageTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	ext, ok := allowedImageTypes[http.DetectContentType(head[:n])]
	if !ok {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + ext
	if err := writeImage(filepath.Join(s.dir, name), head[:n], src); err != nil {
		return "", err
	}
	return s.urlPrefix + "/" + name, nil
}

// writeImage writes head followed by the rest of src to target.
// On any failure the partial file is removed.
func writeImage(target string, head []byte, src io.Reader) (err error) {
	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing image file: %w", closeErr)
		}
		if err != nil {
			os.Remove(target)
		}
	}()

	if _, err = dst.Write(head); err != nil {
		return fmt.Errorf("writing image file: %w", err)
	}
	if _, err = io.Copy(dst, src); err != nil {
		return fmt.Errorf("writing image file: %w", err)
	}
	return nil
}

// Remove deletes a previously saved image. URLs this store did not produce are ignored.
func (s *diskImageStore) Remove(url string) error {
	if !strings.HasPrefix(url, s.urlPrefix+"/") {
		return nil
	}
	name := path.Base(url)
	if _, err := uuid.Parse(strings.TrimSuffix(name, path.Ext(name))); err != nil {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing image %s: %w", name, err)
	}
	return nil
}

package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
)

// ImageDir is the sub-directory of the static root that holds uploaded images.
const ImageDir = "images"

const maxCollisionAttempts = 5

// ImageStore saves product images under <static>/images.
type ImageStore interface {
	Save(ctx context.Context, fileName string, content io.Reader) (string, error)
	Remove(ctx context.Context, relPath string) error
}

type diskStore struct {
	root     string
	maxBytes int64
}

// NewDiskStore builds an ImageStore rooted at staticDir, creating the image
// directory when missing.
func NewDiskStore(staticDir string, maxBytes int64) (ImageStore, error) {
	if strings.TrimSpace(staticDir) == "" {
		return nil, fmt.Errorf("static dir required")
	}
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max upload bytes must be positive")
	}
	root := filepath.Join(staticDir, ImageDir)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &diskStore{root: root, maxBytes: maxBytes}, nil
}

// Save validates the name and content and writes the file. It returns the path
// relative to the static root, e.g. "images/shoe.jpg". An existing file is never
// overwritten; a short random suffix is added instead.
func (s *diskStore) Save(ctx context.Context, fileName string, content io.Reader) (string, error) {
	name := SecureFilename(fileName)
	if name == "" || !AllowedFile(name) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid image").
			WithDetails(map[string]string{"image": "must be a " + allowedDescription() + " file"})
	}

	data, err := io.ReadAll(io.LimitReader(content, s.maxBytes+1))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unable to read upload")
	}
	if int64(len(data)) > s.maxBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid image").
			WithDetails(map[string]string{"image": "file too large"})
	}
	detected := mimetype.Detect(data)
	if !isAllowedMime(detected.String()) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid image").
			WithDetails(map[string]string{"image": "content is not a " + allowedDescription() + " image"})
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	candidate := name
	for attempt := 0; attempt < maxCollisionAttempts; attempt++ {
		err := s.write(candidate, data)
		if err == nil {
			return path.Join(ImageDir, candidate), nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unable to store image")
		}
		candidate = withSuffix(name, uuid.NewString()[:8])
	}
	return "", pkgerrors.New(pkgerrors.CodeInternal, "unable to store image").
		WithDetails(map[string]any{"reason": "name collisions"})
}

func (s *diskStore) write(name string, data []byte) error {
	file, err := os.OpenFile(filepath.Join(s.root, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, bytes.NewReader(data)); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return err
	}
	return file.Close()
}

// Remove deletes a previously saved image. Missing files are ignored.
func (s *diskStore) Remove(_ context.Context, relPath string) error {
	name := strings.TrimPrefix(path.Clean("/"+relPath), "/"+ImageDir+"/")
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("invalid image path %q", relPath)
	}
	err := os.Remove(filepath.Join(s.root, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func withSuffix(name, suffix string) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + "-" + suffix + ext
}

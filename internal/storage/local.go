package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// UploadsPrefix is the URL path images are served under and the prefix of stored references.
const UploadsPrefix = "uploads"

// LocalStore writes images under root and references them as uploads/<file>.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Save(_ context.Context, file *multipart.FileHeader) (string, error) {
	extension, err := CheckImage(file)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		log.Printf("[UPLOAD] [ERROR] failed to create directory %s: %v", s.root, err)
		return "", err
	}

	filename := newFilename(extension)
	fullPath := filepath.Join(s.root, filename)

	in, err := file.Open()
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] [ERROR] failed to create file %s: %v", fullPath, err)
		return "", err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(fullPath)
		return "", err
	}
	if err := out.Close(); err != nil {
		log.Printf("[UPLOAD] [ERROR] failed to flush file %s: %v", fullPath, err)
		_ = os.Remove(fullPath)
		return "", err
	}
	log.Printf("[UPLOAD] [INFO] stored %s as %s", file.Filename, filename)
	return path.Join(UploadsPrefix, filename), nil
}

// Delete removes a file previously returned by Save. References outside the uploads
// directory are refused; a missing file is not an error.
func (s *LocalStore) Delete(_ context.Context, ref string) error {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return nil
	}

	cleanRel := strings.TrimPrefix(path.Clean("/"+strings.TrimPrefix(trimmed, "/")), "/")
	if !strings.HasPrefix(cleanRel, UploadsPrefix+"/") {
		return fmt.Errorf("refusing to delete non-upload path: %s", ref)
	}

	cleanBase := filepath.Clean(s.root)
	target := filepath.Clean(filepath.Join(cleanBase, filepath.FromSlash(strings.TrimPrefix(cleanRel, UploadsPrefix+"/"))))
	if !strings.HasPrefix(target, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside upload root: %s", ref)
	}

	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

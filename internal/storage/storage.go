// Package storage keeps uploaded property images on local disk or in S3.
package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxImageSize = 5 << 20

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ImageStore saves an uploaded image and returns the reference stored on the property.
type ImageStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, ref string) error
}

// ImageError reports an upload rejected before anything was stored.
type ImageError struct {
	Message string
}

func (e *ImageError) Error() string {
	return e.Message
}

// CheckImage validates the extension and size of file and returns its lower-case extension.
func CheckImage(file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return "", &ImageError{Message: "image file extension is required"}
	}
	if _, ok := allowedExtensions[extension]; !ok {
		return "", &ImageError{Message: fmt.Sprintf("unsupported image type: %s", extension)}
	}
	if file.Size > MaxImageSize {
		return "", &ImageError{Message: "image file too large (max 5MB)"}
	}
	return extension, nil
}

func newFilename(extension string) string {
	return primitive.NewObjectID().Hex() + extension
}

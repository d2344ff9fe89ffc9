package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const imageKeyPrefix = "images/"

var allowedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// NewImageKey derives a fresh object key for an uploaded image file. Only
// the extension of the original filename survives; the rest of the key is
// random so uploads never collide or overwrite each other.
func NewImageKey(filename string) (string, error) {
	extension := strings.ToLower(filepath.Ext(filename))
	if extension == "" {
		return "", fmt.Errorf("image file extension is required")
	}
	if _, ok := allowedImageExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported image type: %s", extension)
	}
	return imageKeyPrefix + uuid.NewString() + extension, nil
}

// ContentTypeForKey maps an image key back to its MIME type for serving.
func ContentTypeForKey(key string) string {
	if contentType, ok := allowedImageExtensions[strings.ToLower(filepath.Ext(key))]; ok {
		return contentType
	}
	return "application/octet-stream"
}

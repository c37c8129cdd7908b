package gateway

import (
	"fmt"
	"net/http"
	"os"
	"strings"
)

// MaxImageBytes caps room photos sent for scanning.
const MaxImageBytes = 20 << 20

// ReadImage loads a room photo and sniffs its MIME type.
func ReadImage(path string) ([]byte, string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, "", fmt.Errorf("image path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("image %s: %w", path, err)
	}
	if info.Size() > MaxImageBytes {
		return nil, "", fmt.Errorf("image %s is %d bytes, max %d", path, info.Size(), MaxImageBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("image %s: %w", path, err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, "", fmt.Errorf("image %s: unsupported content type %s", path, mime)
	}
	return data, mime, nil
}

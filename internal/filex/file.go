// Package filex loads local files picked by the operator for upload.
package filex

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyFile is returned for a file with no content.
var ErrEmptyFile = errors.New("empty file")

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// File is a local file read into memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Load reads the file at path and works out its media type, first from the
// extension and then from the content itself.
func Load(path string) (*File, error) {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("home dir: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("read %s: %w", path, ErrEmptyFile)
	}

	return &File{
		Name:        filepath.Base(path),
		ContentType: DetectContentType(path, data),
		Data:        data,
	}, nil
}

// DetectContentType returns the media type of a file without parameters.
func DetectContentType(name string, data []byte) string {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	return ct
}

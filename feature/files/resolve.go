package files

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var (
	// ErrNotFound is returned when a path does not exist under the root.
	ErrNotFound = errors.New("not found")
	// ErrOutsideRoot is returned for paths that would escape the root.
	// It wraps ErrNotFound so traversal attempts are answered like missing files.
	ErrOutsideRoot = fmt.Errorf("%w: path escapes root", ErrNotFound)
	// ErrFilesystem is returned when the root cannot be created or opened.
	ErrFilesystem = errors.New("root unavailable")
)

// IndexFiles are served in place of a directory listing, in order of preference.
var IndexFiles = []string{"index.html", "index.htm"}

// Resolve maps a decoded request path to a slash-separated name relative to the root.
// The root itself resolves to "". Parent segments, backslashes and NUL bytes are rejected.
func Resolve(requestPath string) (string, error) {
	if strings.ContainsAny(requestPath, "\x00\\") {
		return "", ErrOutsideRoot
	}
	for _, segment := range strings.Split(requestPath, "/") {
		if segment == ".." {
			return "", ErrOutsideRoot
		}
	}

	clean := path.Clean("/" + requestPath)
	return strings.TrimPrefix(clean, "/"), nil
}

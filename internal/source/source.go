// Package source reads the current and the replacement content of a file.
package source

import (
	"io"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	// ErrDecode means the content is not valid UTF-8 text.
	ErrDecode = errors.New("content is not valid UTF-8")
	// ErrStreamRead means the replacement stream could not be read in full.
	ErrStreamRead = errors.New("cannot read input stream")
	// ErrStorageRead means the file exists but could not be read.
	ErrStorageRead = errors.New("cannot read file")
)

// Content is text read from a file or a stream.
type Content struct {
	Text string
	// Exists is false when the file was missing and Text is empty for that
	// reason.
	Exists bool
}

// ReadFile reads the file at path. A missing file is not an error: it yields
// empty content with Exists set to false.
func ReadFile(path string) (Content, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Content{}, nil
	}
	if err != nil {
		return Content{}, errors.Wrapf(ErrStorageRead, "%s: %v", path, err)
	}
	if !utf8.Valid(data) {
		return Content{}, errors.Wrapf(ErrDecode, "%s", path)
	}
	return Content{Text: string(data), Exists: true}, nil
}

// ReadAll reads r to the end.
func ReadAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrapf(ErrStreamRead, "%v", err)
	}
	if !utf8.Valid(data) {
		return "", errors.Wrap(ErrDecode, "input stream")
	}
	return string(data), nil
}

// Package storage reads and writes whole documents as UTF-8 text.
package storage

import (
	"bytes"
	"os"
	"time"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"notepad/internal/logger"
)

const component = "TextStore"

// sniffLen is the header size filetype needs to recognise every format it knows.
const sniffLen = 262

var (
	ErrNotText         = errors.New("file is not a text document")
	ErrInvalidEncoding = errors.New("content is not valid UTF-8")
)

// TextStore implements whole-file reads and full-overwrite writes.
type TextStore struct {
	logger logger.Logger
	perm   os.FileMode
}

func NewTextStore(log logger.Logger) *TextStore {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &TextStore{logger: log, perm: 0o644}
}

func (s *TextStore) Read(path string) (string, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read file")
	}

	if kind, ok := sniffBinary(data); ok && !looksLikeText(data) {
		s.logger.Warning(component, "refusing binary file", map[string]interface{}{
			"path": path,
			"type": kind,
		})
		return "", errors.Wrapf(ErrNotText, "detected %s content", kind)
	}

	text, err := Decode(data)
	if err != nil {
		return "", err
	}

	s.logger.Debug(component, "file read", map[string]interface{}{
		"path":     path,
		"bytes":    len(data),
		"duration": time.Since(start).String(),
	})
	return text, nil
}

// Write replaces the file content with text. The file is created if needed
// and truncated otherwise.
func (s *TextStore) Write(path, text string) error {
	start := time.Now()
	data, err := Encode(text)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, s.perm); err != nil {
		return errors.Wrap(err, "write file")
	}

	s.logger.Debug(component, "file written", map[string]interface{}{
		"path":     path,
		"bytes":    len(data),
		"duration": time.Since(start).String(),
	})
	return nil
}

// Decode validates UTF-8 and returns the content unchanged, including a
// leading byte order mark, so that saving writes back the same bytes.
func Decode(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.WithStack(ErrInvalidEncoding)
	}
	out, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), data)
	if err != nil {
		return "", errors.Wrap(err, "decode text")
	}
	return string(out), nil
}

// Encode returns the bytes written to disk for text, without a byte order mark.
func Encode(text string) ([]byte, error) {
	if !utf8.ValidString(text) {
		return nil, errors.WithStack(ErrInvalidEncoding)
	}
	return []byte(text), nil
}

// looksLikeText guards against short magic numbers ("BM", "MZ") that also
// start ordinary prose.
func looksLikeText(data []byte) bool {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	return utf8.Valid(data) && bytes.IndexByte(head, 0) < 0
}

func sniffBinary(data []byte) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return "", false
	}
	if kind.MIME.Type == "text" {
		return "", false
	}
	return kind.MIME.Value, true
}

package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/scorepager/pkg/errors"
	"github.com/matzehuels/scorepager/pkg/score"
)

// Format is a score document encoding.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// CurrentVersion is the score document version written by this package.
const CurrentVersion = 1

// FormatFromPath picks the document format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown score format for %s (want .json or .toml)", path)
}

// header is decoded first to pick the document shape.
type header struct {
	Version int `json:"version" toml:"version"`
}

type documentV1 struct {
	Version int           `json:"version" toml:"version"`
	Title   string        `json:"title,omitempty" toml:"title,omitempty"`
	Staves  []score.Staff `json:"staves" toml:"staves"`
	Pieces  []piece       `json:"pieces,omitempty" toml:"pieces,omitempty"`
}

type piece struct {
	Start int    `json:"start" toml:"start"`
	Name  string `json:"name,omitempty" toml:"name,omitempty"`
}

func decode(data []byte, f Format, v any) error {
	switch f {
	case FormatJSON:
		return json.Unmarshal(data, v)
	case FormatTOML:
		_, err := toml.Decode(string(data), v)
		return err
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown score format %q", f)
}

// ReadScore decodes a score document from r and validates it.
//
// ReadScore returns an INVALID_FORMAT error for malformed input or a missing
// version, UNSUPPORTED for an unknown version, and the validation errors of
// [score.Score.Validate] for a document whose content violates the layout
// preconditions. ReadScore does not close r.
func ReadScore(r io.Reader, f Format) (*score.Score, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var h header
	if err := decode(data, f, &h); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
	}

	var s *score.Score
	switch h.Version {
	case 0:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "score document has no version")
	case 1:
		var doc documentV1
		if err := decode(data, f, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
		}
		s = doc.score()
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported score document version %d", h.Version)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (d documentV1) score() *score.Score {
	s := &score.Score{Title: d.Title, Staves: d.Staves}
	if len(d.Pieces) == 0 {
		s.Pieces = score.SinglePiece()
		return s
	}
	s.Pieces = make(score.Pieces, len(d.Pieces))
	for _, p := range d.Pieces {
		s.Pieces[p.Start] = p.Name
	}
	return s
}

// ImportScore reads the score document at path. The format follows the
// extension. An untitled score is named after the file.
func ImportScore(path string) (*score.Score, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "score file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	s, err := ReadScore(bytes.NewReader(data), f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Title == "" {
		s.Title = TitleFromPath(path)
	}
	return s, nil
}

// TitleFromPath returns the file name of path without its extension.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

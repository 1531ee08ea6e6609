package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/scorepager/pkg/errors"
	"github.com/matzehuels/scorepager/pkg/layout"
	"github.com/matzehuels/scorepager/pkg/score"
)

// WriteScore encodes s as a current-version score document.
// The output can be read back with [ReadScore].
func WriteScore(s *score.Score, w io.Writer, f Format) error {
	doc := documentV1{Version: CurrentVersion, Title: s.Title, Staves: s.Staves}
	for _, start := range s.Pieces.Starts() {
		doc.Pieces = append(doc.Pieces, piece{Start: start, Name: s.Pieces[start]})
	}

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown score format %q", f)
}

// LayoutDocument is the exported form of a computed layout.
type LayoutDocument struct {
	ID           string         `json:"id"`
	Title        string         `json:"title,omitempty"`
	Scale        float64        `json:"scale"`
	CanvasWidth  float64        `json:"canvas_width"`
	CanvasHeight float64        `json:"canvas_height"`
	Pages        []PageDocument `json:"pages"`
}

// PageDocument lists the placed staves of one page.
type PageDocument struct {
	Index  int             `json:"index"`
	Staves []StaffDocument `json:"staves"`
}

// StaffDocument is one placed staff in canvas pixels.
type StaffDocument struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewLayoutDocument flattens l into its exported form. s must be the score
// the layout was computed from; its staves supply each rendered height.
func NewLayoutDocument(s *score.Score, l layout.PageLayout, scale, canvasWidth, canvasHeight float64) LayoutDocument {
	doc := LayoutDocument{
		ID:           l.ID.String(),
		Title:        s.Title,
		Scale:        scale,
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
		Pages:        make([]PageDocument, len(l.Pages)),
	}
	for p, page := range l.Pages {
		pd := PageDocument{Index: p, Staves: make([]StaffDocument, len(page))}
		for i, st := range page {
			pd.Staves[i] = StaffDocument{
				Index:  st.Index,
				X:      st.X,
				Y:      st.Y,
				Width:  st.Width,
				Height: st.Height(s.Staves[st.Index]),
			}
		}
		doc.Pages[p] = pd
	}
	return doc
}

// WriteLayout encodes doc as indented JSON.
func WriteLayout(doc LayoutDocument, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLayout writes doc to a JSON file at path.
func ExportLayout(doc LayoutDocument, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLayout(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

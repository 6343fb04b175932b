// Package pptx reads PowerPoint packages and extracts slide text.
//
// A .pptx file is an OPC container holding XML parts. The package
// loads the presentation part and its relationships, resolves which
// parts are slides, parses them, and walks each slide's shape tree to
// produce ordered text blocks.
package pptx

import (
	"fmt"
	"io"

	"github.com/dgallion1/slidegest/internal/opc"
)

// SlideContent pairs a loaded slide with its extracted text blocks,
// one block per shape with a text body.
type SlideContent struct {
	Slide
	Text []string
}

// ExtractText loads the package at path and extracts the text of every
// slide, in slide order.
func ExtractText(path string, opts LoadOptions) ([]SlideContent, error) {
	pres, err := Load(path, opts)
	if err != nil {
		return nil, err
	}
	return extractAll(pres), nil
}

// ExtractTextReader is ExtractText over an in-memory or already-open
// package source.
func ExtractTextReader(r io.ReaderAt, size int64, opts LoadOptions) ([]SlideContent, error) {
	c, err := opc.NewContainer(r, size)
	if err != nil {
		return nil, fmt.Errorf("load presentation: %w", err)
	}
	pres, err := LoadContainer(c, opts)
	if err != nil {
		return nil, err
	}
	return extractAll(pres), nil
}

func extractAll(pres *Presentation) []SlideContent {
	out := make([]SlideContent, 0, len(pres.Slides))
	for _, s := range pres.Slides {
		out = append(out, SlideContent{Slide: s, Text: SlideText(s.Tree)})
	}
	return out
}

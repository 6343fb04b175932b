package pptx

import (
	"fmt"

	"github.com/dgallion1/slidegest/internal/opc"
	"github.com/dgallion1/slidegest/internal/xmltree"
)

// Well-known part paths inside the package. Slide targets in the
// relationships document are relative to the ppt/ root.
const (
	presentationPath     = "ppt/presentation.xml"
	presentationRelsPath = "ppt/_rels/presentation.xml.rels"
	pptRoot              = "ppt/"
)

// DefaultWorkers bounds concurrent slide parsing when LoadOptions does
// not say otherwise.
const DefaultWorkers = 4

// Part is one named XML document read from the container.
type Part struct {
	Path string
	XML  []byte
	Tree *xmltree.Element
}

// Slide is one loaded slide part. ID comes from the owning slide
// relation, not from the slide document itself.
type Slide struct {
	ID   string
	Path string
	XML  []byte
	Tree *xmltree.Element
}

// Presentation is a fully loaded package: the main presentation part,
// its relationships part, and the slides in relation order.
type Presentation struct {
	Main          Part
	Relationships Part
	Slides        []Slide
}

// LoadOptions control a single Load call.
type LoadOptions struct {
	// Parse is handed to the XML parser for every part.
	Parse xmltree.Options

	// Workers bounds concurrent slide parsing. Zero or negative means
	// DefaultWorkers.
	Workers int
}

// Load opens the package at path and loads it fully.
func Load(path string, opts LoadOptions) (*Presentation, error) {
	c, err := opc.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load presentation: %w", err)
	}
	defer c.Close()
	return LoadContainer(c, opts)
}

// LoadContainer loads a presentation from an already-open container.
// The container is read-only for the duration of the call and is not
// closed.
//
// Slides are parsed concurrently but returned in relation order. A
// slide relation whose target is absent from the container is dropped;
// every other failure aborts the load.
func LoadContainer(c *opc.Container, opts LoadOptions) (*Presentation, error) {
	main, err := loadPart(c, presentationPath, opts.Parse)
	if err != nil {
		return nil, fmt.Errorf("load presentation: %w", err)
	}
	rels, err := loadPart(c, presentationRelsPath, opts.Parse)
	if err != nil {
		return nil, fmt.Errorf("load presentation: %w", err)
	}

	relations, err := SlideRelations(rels.Tree)
	if err != nil {
		return nil, fmt.Errorf("load presentation: %w", err)
	}

	// Resolve targets first so the fan-out below only sees slides that
	// exist; missing targets are dropped, not errors.
	type slideRef struct {
		id   string
		path string
	}
	var refs []slideRef
	for _, rel := range relations {
		path := pptRoot + rel.Target
		if !c.Has(path) {
			continue
		}
		refs = append(refs, slideRef{id: rel.ID, path: path})
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	type slideResult struct {
		idx   int
		slide Slide
		err   error
	}
	results := make(chan slideResult, len(refs))
	sem := make(chan struct{}, workers)

	for i, ref := range refs {
		sem <- struct{}{}
		go func(i int, ref slideRef) {
			defer func() { <-sem }()
			part, err := loadPart(c, ref.path, opts.Parse)
			if err != nil {
				results <- slideResult{idx: i, err: err}
				return
			}
			results <- slideResult{idx: i, slide: Slide{
				ID:   ref.id,
				Path: part.Path,
				XML:  part.XML,
				Tree: part.Tree,
			}}
		}(i, ref)
	}

	// Reassemble by index; completion order must not leak into the
	// slide list.
	slides := make([]Slide, len(refs))
	for range refs {
		res := <-results
		if res.err != nil {
			return nil, fmt.Errorf("load presentation: %w", res.err)
		}
		slides[res.idx] = res.slide
	}

	return &Presentation{
		Main:          main,
		Relationships: rels,
		Slides:        slides,
	}, nil
}

func loadPart(c *opc.Container, path string, opts xmltree.Options) (Part, error) {
	if !c.Has(path) {
		return Part{}, fmt.Errorf("%w: missing %s", ErrInvalidContainer, path)
	}
	data, err := c.ReadEntry(path)
	if err != nil {
		return Part{}, err
	}
	tree, err := xmltree.Parse(data, opts)
	if err != nil {
		return Part{}, fmt.Errorf("part %s: %w", path, err)
	}
	return Part{Path: path, XML: data, Tree: tree}, nil
}

package pptx

import (
	"fmt"
	"strings"

	"github.com/dgallion1/slidegest/internal/xmltree"
)

// Relationship types are URIs; only the suffix distinguishes slides
// from slide layouts and masters, whose types end in /slideLayout and
// /slideMaster.
const slideRelTypeSuffix = "/slide"

// SlideRelation is a presentation-level reference to one slide part.
// Target is relative to the package's ppt/ root.
type SlideRelation struct {
	ID     string
	Target string
}

// SlideRelations filters the parsed relationships document down to
// slide relations, preserving document order. No sorting by ID takes
// place; the relationships document order is the slide order.
func SlideRelations(rels *xmltree.Element) ([]SlideRelation, error) {
	if rels == nil || rels.Name != "Relationships" {
		return nil, fmt.Errorf("%w: missing Relationships root", ErrMalformedRelationships)
	}
	var out []SlideRelation
	for _, rel := range rels.Elements("Relationship") {
		if !strings.HasSuffix(rel.Attr("Type"), slideRelTypeSuffix) {
			continue
		}
		out = append(out, SlideRelation{
			ID:     rel.Attr("Id"),
			Target: rel.Attr("Target"),
		})
	}
	return out, nil
}

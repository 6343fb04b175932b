package pptx

import (
	"strings"

	"github.com/dgallion1/slidegest/internal/xmltree"
)

// SlideText extracts the text of one parsed slide: one block per shape
// that carries a text body, in shape-tree order. Shapes without a text
// body (pictures, connectors) contribute nothing.
//
// Within a block, paragraphs are joined with a newline. A paragraph is
// the concatenation of its run text, in order, plus a newline when the
// paragraph holds an explicit line-break marker, plus a trailing
// newline when the paragraph collected no run text or carries an
// end-of-paragraph properties marker. A blank paragraph and a
// paragraph terminator therefore produce the same newline token; the
// distinction is not recoverable from the output.
func SlideText(slide *xmltree.Element) []string {
	// sld -> cSld -> spTree. A slide with no shape tree is legal and
	// contributes nothing.
	tree := slide.Child("cSld").Child("spTree")
	if tree == nil {
		return nil
	}

	var blocks []string
	for _, sp := range tree.Elements("sp") {
		body := sp.Child("txBody")
		if body == nil {
			continue
		}

		var paras []string
		for _, p := range body.Elements("p") {
			var b strings.Builder
			hasRunText := false

			for _, r := range p.Elements("r") {
				t := r.Child("t")
				if t == nil {
					continue
				}
				// Run text is taken verbatim, whitespace included.
				b.WriteString(t.Text())
				hasRunText = true
			}

			if p.Child("br") != nil {
				b.WriteString("\n")
			}
			if !hasRunText || p.Child("endParaRPr") != nil {
				b.WriteString("\n")
			}

			if s := b.String(); s != "" {
				paras = append(paras, s)
			}
		}

		if len(paras) > 0 {
			blocks = append(blocks, strings.Join(paras, "\n"))
		}
	}
	return blocks
}

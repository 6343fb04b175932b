// Package xmltree parses XML into a generic ordered node tree.
//
// OOXML parts use namespace prefixes heavily (p:sld, a:p, a:t) but the
// structure downstream code cares about is local-name based, so element
// and attribute lookups use local names only. Document order of children
// and attributes is preserved; it encodes presentation order.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Node is either an *Element or a Text leaf.
type Node interface {
	node()
}

// Attr is one attribute on an element, local name only.
type Attr struct {
	Name  string
	Value string
}

// Element is an XML element with ordered attributes and children.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []Node
}

func (*Element) node() {}

// Text is a character-data leaf.
type Text string

func (Text) node() {}

// Options configure a single Parse call. The zero value is valid:
// non-UTF-8 documents are decoded according to their declared encoding.
type Options struct {
	// CharsetReader overrides the decoder used for non-UTF-8 encodings.
	// Nil means charset.NewReaderLabel.
	CharsetReader func(label string, input io.Reader) (io.Reader, error)
}

// Parse converts raw XML text into an Element tree rooted at the
// document element.
func Parse(data []byte, opts Options) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = opts.CharsetReader
	if dec.CharsetReader == nil {
		dec.CharsetReader = charset.NewReaderLabel
	}

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				el.Attrs = append(el.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parse xml: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, Text(t))
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parse xml: no root element")
	}
	return root, nil
}

// Child returns the first child element with the given local name, or
// nil when absent.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Name == name {
			return el
		}
	}
	return nil
}

// Elements returns all child elements with the given local name, in
// document order.
func (e *Element) Elements(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Name == name {
			out = append(out, el)
		}
	}
	return out
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	if e == nil {
		return ""
	}
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// Text returns the concatenated character data of the element's direct
// children. Nested element text is not included.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range e.Children {
		if t, ok := c.(Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

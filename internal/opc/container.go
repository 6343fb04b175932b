// Package opc provides read-only access to OPC containers, the ZIP
// packaging convention used by Office formats such as PPTX.
package opc

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
)

// ErrNotExist is returned by ReadEntry when the container holds no
// entry at the requested path.
var ErrNotExist = errors.New("opc: entry does not exist")

// Container is a read-only view of one opened package. Entry reads are
// independent streams, so concurrent ReadEntry calls are safe.
type Container struct {
	zr     *zip.Reader
	closer io.Closer
	index  map[string]*zip.File
	order  []string
}

// Open opens the package at path.
func Open(path string) (*Container, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open container %s: %w", path, err)
	}
	c := newContainer(&rc.Reader)
	c.closer = rc
	return c, nil
}

// NewContainer reads a package from an in-memory or already-open source.
func NewContainer(r io.ReaderAt, size int64) (*Container, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}
	return newContainer(zr), nil
}

func newContainer(zr *zip.Reader) *Container {
	c := &Container{
		zr:    zr,
		index: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		if _, dup := c.index[f.Name]; dup {
			continue
		}
		c.index[f.Name] = f
		c.order = append(c.order, f.Name)
	}
	return c
}

// Close releases the underlying file, if any. Containers created with
// NewContainer hold no resources and Close is a no-op.
func (c *Container) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// Entries lists entry paths in archive order.
func (c *Container) Entries() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Has reports whether an entry exists at path.
func (c *Container) Has(path string) bool {
	_, ok := c.index[path]
	return ok
}

// ReadEntry returns the full content of the entry at path.
func (c *Container) ReadEntry(path string) ([]byte, error) {
	f, ok := c.index[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", path, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", path, err)
	}
	return data, nil
}

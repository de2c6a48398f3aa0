package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
)

// documentEntry is the container member holding the document body.
const documentEntry = "word/document.xml"

// Source identifies a document on disk that has not been loaded yet.
// The lifecycle is Source -> Load -> Container -> Parse -> Document,
// with Release available at every stage so the batch driver can
// guarantee teardown on each exit path.
type Source struct {
	path string
}

// NewSource creates a source for the given file path.
func NewSource(path string) Source {
	return Source{path: path}
}

// Path returns the file path backing this source.
func (s Source) Path() string {
	return s.path
}

// Load reads the raw container bytes from disk.
func (s Source) Load() (*Container, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	return &Container{path: s.path, data: data}, nil
}

// Container holds the loaded but not yet parsed container bytes.
type Container struct {
	path string
	data []byte
}

// Path returns the file path backing this container.
func (c *Container) Path() string {
	return c.path
}

// Parse unpacks the ZIP container, locates the document body entry,
// and parses it into an ordered content tree.
func (c *Container) Parse() (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(c.data), int64(len(c.data)))
	if err != nil {
		return nil, fmt.Errorf("open container %s: %w", c.path, err)
	}

	var entry *zip.File
	for _, f := range zr.File {
		if f.Name == documentEntry {
			entry = f
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("container %s has no %s", c.path, documentEntry)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s in %s: %w", documentEntry, c.path, err)
	}
	defer rc.Close()

	body, err := ParseBody(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.path, err)
	}
	return &Document{path: c.path, body: body}, nil
}

// Release drops the container bytes.
func (c *Container) Release() {
	c.data = nil
}

// Document is a parsed content tree together with its source path.
type Document struct {
	path string
	body []Node
}

// Path returns the source identifier carried into the output record.
func (d *Document) Path() string {
	return d.path
}

// Body returns the ordered content nodes of the document.
func (d *Document) Body() []Node {
	return d.body
}

// Release drops the parsed content tree.
func (d *Document) Release() {
	d.body = nil
}

// Extract opens, parses, and releases a document in one scoped call,
// handing the parsed document to fn. The container bytes and content
// tree are released on every exit path.
func Extract(path string, fn func(*Document) error) error {
	c, err := NewSource(path).Load()
	if err != nil {
		return err
	}
	defer c.Release()

	doc, err := c.Parse()
	if err != nil {
		return err
	}
	defer doc.Release()

	return fn(doc)
}

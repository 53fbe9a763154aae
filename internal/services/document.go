package services

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/greenpitch/greenpitch/internal/dom"
	"github.com/greenpitch/greenpitch/web"
)

// LoadDocument parses the page template at path, or the embedded one when
// path is empty.
func LoadDocument(path string) (*dom.Document, error) {
	var (
		f   fs.File
		err error
	)
	if path == "" {
		f, err = web.Files.Open(web.IndexFile)
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}

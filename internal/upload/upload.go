// Package upload inspects documents chosen for summarising.
package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
)

// NoDocumentStatus is shown before anything is uploaded.
const NoDocumentStatus = "No document uploaded yet."

var (
	// ErrNotFile is returned for directories and other non-regular paths.
	ErrNotFile = errors.New("upload: not a regular file")
	// ErrNotPDF is returned when the content does not sniff as a PDF.
	ErrNotPDF = errors.New("upload: not a PDF document")
)

// Document is an uploaded file.
type Document struct {
	Path string
	Name string
	Size int64
	MIME string // empty when the type could not be sniffed
}

// Inspect stats path and sniffs its content type.
func Inspect(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFile, path)
	}

	doc := &Document{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
	}
	kind, err := filetype.MatchFile(path)
	if err == nil && kind != filetype.Unknown {
		doc.MIME = kind.MIME.Value
	}
	return doc, nil
}

// SizeKB rounds the size to whole kilobytes, never below 1.
func (d *Document) SizeKB() int64 {
	kb := (d.Size + 512) / 1024
	if kb < 1 {
		return 1
	}
	return kb
}

// Kind names the sniffed type for messages.
func (d *Document) Kind() string {
	if d.MIME == "" {
		return "unknown type"
	}
	return d.MIME
}

// RequirePDF returns ErrNotPDF unless the document sniffed as a PDF.
func (d *Document) RequirePDF() error {
	if !d.IsPDF() {
		return fmt.Errorf("%w: %s is %s", ErrNotPDF, d.Name, d.Kind())
	}
	return nil
}

// IsPDF reports whether the content sniffed as a PDF.
func (d *Document) IsPDF() bool {
	return d.MIME == "application/pdf"
}

// Status is the one-line readiness text shown in the sheet tools.
func Status(d *Document) string {
	if d == nil {
		return NoDocumentStatus
	}
	return fmt.Sprintf("%s • %d KB ready to summarise.", d.Name, d.SizeKB())
}

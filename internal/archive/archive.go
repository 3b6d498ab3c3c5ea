// Package archive inspects game package archives before they are uploaded.
//
// A package is a zip archive whose root holds content.xml, an XML document
// with a <package> root element describing the package.
package archive

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
)

// ContentFile is the archive entry holding the package description.
const ContentFile = "content.xml"

var (
	ErrNotArchive     = errors.New("archive: not a zip archive")
	ErrMissingContent = errors.New("archive: content.xml not found")
)

// Manifest describes a package archive.
type Manifest struct {
	Name      string
	Version   string
	ID        string
	Date      string
	Publisher string
	Language  string

	Entries          int
	UncompressedSize uint64
}

// Inspect reads the archive held in data and returns its manifest.
func Inspect(data []byte) (*Manifest, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArchive, err)
	}

	var content *zip.File
	var size uint64
	for _, f := range zr.File {
		size += f.UncompressedSize64
		if f.Name == ContentFile {
			content = f
		}
	}
	if content == nil {
		return nil, ErrMissingContent
	}

	rc, err := content.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", ContentFile, err)
	}
	defer rc.Close()

	m, err := decodeManifest(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", ContentFile, err)
	}
	m.Entries = len(zr.File)
	m.UncompressedSize = size
	return m, nil
}

// decodeManifest reads only the root element's attributes; the rounds and
// questions below it are not needed to identify a package.
func decodeManifest(r io.Reader) (*Manifest, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("no root element")
			}
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "package" {
			return nil, fmt.Errorf("unexpected root element <%s>", start.Name.Local)
		}
		m := &Manifest{}
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "name":
				m.Name = attr.Value
			case "version":
				m.Version = attr.Value
			case "id":
				m.ID = attr.Value
			case "date":
				m.Date = attr.Value
			case "publisher":
				m.Publisher = attr.Value
			case "language":
				m.Language = attr.Value
			}
		}
		return m, nil
	}
}

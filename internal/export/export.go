// Package export turns generated content into downloadable document
// artifacts. Renderers are pure functions of (title, sections) plus static
// styling constants; they hold no application state.
package export

import "strings"

// MIME types of the produced artifacts.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Section is one (heading, body) unit of an exported document. A body that
// was a single text block is normalized to a one-element list.
type Section struct {
	Heading string
	Body    []string
}

// NewSection builds a section from one or more body items.
func NewSection(heading string, body ...string) Section {
	return Section{Heading: heading, Body: body}
}

// Artifact is a rendered, downloadable file.
type Artifact struct {
	Filename string
	MIME     string
	Data     []byte
}

// Filename derives a download filename from a document title: whitespace
// runs collapse to underscores and the extension is appended.
func Filename(title, ext string) string {
	return strings.Join(strings.Fields(title), "_") + ext
}

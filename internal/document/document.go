package document

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"parmine/internal/services"
)

// Segment is one sentence of a document: a unique id plus tokenized text.
type Segment struct {
	ID   string
	Text string
}

// Document is an ordered collection of segments with an identifier and a
// language tag.
type Document struct {
	ID   string
	Lang string

	segments []Segment
	index    map[string]int
}

// New creates an empty document.
func New(id, lang string) *Document {
	return &Document{
		ID:    id,
		Lang:  lang,
		index: make(map[string]int),
	}
}

// AddSegment appends a segment. A duplicate segment id is a data error.
func (d *Document) AddSegment(segID, text string) error {
	if _, exists := d.index[segID]; exists {
		return services.Wrap(services.ErrData, "document", "add segment",
			fmt.Sprintf("document %s: segment %s repeated", d.ID, segID), nil)
	}
	d.index[segID] = len(d.segments)
	d.segments = append(d.segments, Segment{ID: segID, Text: text})
	return nil
}

// Segments returns segments in insertion order. The slice is shared; callers
// must not mutate it.
func (d *Document) Segments() []Segment {
	return d.segments
}

// Segment returns the text of the segment with the given id.
func (d *Document) Segment(segID string) (string, bool) {
	i, ok := d.index[segID]
	if !ok {
		return "", false
	}
	return d.segments[i].Text, true
}

// Len returns the segment count.
func (d *Document) Len() int { return len(d.segments) }

// LangTag parses the document's language code into a BCP 47 tag.
func (d *Document) LangTag() (language.Tag, error) {
	return language.Parse(d.Lang)
}

// LangPrefix extracts the lowercased language code prefix from a corpus
// document id such as "SIN_NW_000123" -> "sin".
func LangPrefix(docID string) string {
	code, _, _ := strings.Cut(docID, "_")
	return strings.ToLower(code)
}

package ecosystem

import (
	"io"
	"strings"
)

// Line markers recognised by the parser.
const (
	chapterMarker  = "## "
	sectionMarker  = "### "
	propertyMarker = "* "
)

// Parse reads the whole of r and parses it with [ParseString].
// The only errors returned are read errors from r.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data)), nil
}

// ParseString converts the ecosystem markdown into a Document.
//
// The format is line oriented:
//
//	## Chapter title
//	Chapter prose ...
//	### Section title
//	Section prose ...
//	* key: value
//	* list-key: a, b, c
//
// Parsing is total: lines that do not fit the structure are folded into the
// nearest open description or dropped, never reported.
func ParseString(src string) *Document {
	p := parser{doc: &Document{}}
	for _, line := range strings.Split(src, "\n") {
		p.line(strings.TrimSuffix(line, "\r"))
	}
	return p.doc
}

// parser holds the state of a single ParseString run.
type parser struct {
	doc     *Document
	chapter *Chapter
	section *Section
}

func (p *parser) line(line string) {
	switch {
	case strings.HasPrefix(line, chapterMarker):
		p.chapter = &Chapter{Title: line[len(chapterMarker):], Sections: []*Section{}}
		p.section = nil
		p.doc.Chapters = append(p.doc.Chapters, p.chapter)

	case strings.HasPrefix(line, sectionMarker) && p.chapter != nil:
		p.section = &Section{Title: line[len(sectionMarker):], Properties: Properties{}}
		p.chapter.Sections = append(p.chapter.Sections, p.section)

	case strings.HasPrefix(line, propertyMarker):
		if p.section == nil {
			return
		}
		key, raw, ok := strings.Cut(line[len(propertyMarker):], ":")
		if !ok {
			return
		}
		p.section.Properties[key] = parseValue(raw)

	case line != "":
		switch {
		case p.section != nil:
			p.section.Description += line + " "
		case p.chapter != nil:
			p.chapter.Description += line + " "
		}
	}
}

// parseValue turns the text after a property colon into a Value. The list
// separator is looked up before trimming so "a, b" splits while "a,b" does not.
func parseValue(raw string) Value {
	if !strings.Contains(raw, ", ") {
		return Scalar(strings.TrimSpace(raw))
	}
	parts := strings.Split(raw, ", ")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return Value{items: parts, list: true}
}

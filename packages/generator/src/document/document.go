package document

import (
	"encoding/json"
	"fmt"
	"io"
)

// Entry is one translation key with its default value.
type Entry struct {
	Key   string
	Value string
}

// Section is a named group of translation entries. Entry order matches the
// source document, which keeps the emitted members reproducible.
type Section struct {
	Key     string
	Entries []Entry
}

// Document is the strongly-typed localization catalog: an ordered list of
// sections, each holding ordered string entries.
type Document struct {
	Sections []Section
}

// MalformedDocumentError reports catalog content that does not match the
// expected section/key/scalar-value shape.
type MalformedDocumentError struct {
	Path   string
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed localization document: %s", e.Reason)
	}
	return fmt.Sprintf("malformed localization document at %q: %s", e.Path, e.Reason)
}

// Decode reads a localization catalog from r. The catalog must be a JSON
// object whose values are objects of scalar strings; anything else fails with
// a MalformedDocumentError before any value reaches the emitters. Key order
// is preserved. An empty object decodes to a document with zero sections.
func Decode(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '{', ""); err != nil {
		return nil, err
	}

	doc := &Document{}
	seenSections := map[string]bool{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &MalformedDocumentError{Reason: err.Error()}
		}
		sectionKey := tok.(string)
		if seenSections[sectionKey] {
			return nil, &MalformedDocumentError{Path: sectionKey, Reason: "duplicate section key"}
		}
		seenSections[sectionKey] = true

		section, err := decodeSection(dec, sectionKey)
		if err != nil {
			return nil, err
		}
		doc.Sections = append(doc.Sections, *section)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, &MalformedDocumentError{Reason: err.Error()}
	}
	if dec.More() {
		return nil, &MalformedDocumentError{Reason: "trailing content after catalog object"}
	}
	return doc, nil
}

func decodeSection(dec *json.Decoder, sectionKey string) (*Section, error) {
	if err := expectDelim(dec, '{', sectionKey); err != nil {
		return nil, err
	}
	section := &Section{Key: sectionKey}
	seen := map[string]bool{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &MalformedDocumentError{Path: sectionKey, Reason: err.Error()}
		}
		key := tok.(string)
		path := sectionKey + "." + key
		if seen[key] {
			return nil, &MalformedDocumentError{Path: path, Reason: "duplicate translation key"}
		}
		seen[key] = true

		val, err := dec.Token()
		if err != nil {
			return nil, &MalformedDocumentError{Path: path, Reason: err.Error()}
		}
		str, ok := val.(string)
		if !ok {
			return nil, &MalformedDocumentError{Path: path, Reason: fmt.Sprintf("expected a string value, got %s", tokenKind(val))}
		}
		section.Entries = append(section.Entries, Entry{Key: key, Value: str})
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, &MalformedDocumentError{Path: sectionKey, Reason: err.Error()}
	}
	return section, nil
}

func expectDelim(dec *json.Decoder, want json.Delim, path string) error {
	tok, err := dec.Token()
	if err != nil {
		return &MalformedDocumentError{Path: path, Reason: err.Error()}
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return &MalformedDocumentError{Path: path, Reason: fmt.Sprintf("expected an object, got %s", tokenKind(tok))}
	}
	return nil
}

func tokenKind(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		if t == '[' || t == ']' {
			return "an array"
		}
		return "an object"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", tok)
	}
}

// Package nifjson handles Sniff-style .nif.json model documents: NIF files
// dumped to JSON, one top-level block per NIF node. Parsing preserves block
// order, and blocks that are not recognized as geometry round-trip
// byte-for-byte.
package nifjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Document errors.
var (
	ErrNotObject = errors.New("document root is not a JSON object")
	ErrBadKey    = errors.New("document key is not a string")
	ErrTrailing  = errors.New("trailing data after document")
)

// DefaultMarker tags NiTriShapeData nodes as geometry blocks.
const DefaultMarker = "NiTriShapeData"

// BlockKind classifies a top-level block.
type BlockKind int

const (
	// KindOpaque blocks are passed through untouched.
	KindOpaque BlockKind = iota
	// KindGeometry blocks hold vertex/normal/triangle/UV data.
	KindGeometry
)

// Classifier decides the kind of a block from its key. It runs once per
// block at parse time; the transform never re-inspects keys.
type Classifier func(key string) BlockKind

// MarkerClassifier returns a Classifier that tags any key containing marker
// as geometry.
func MarkerClassifier(marker string) Classifier {
	return func(key string) BlockKind {
		if strings.Contains(key, marker) {
			return KindGeometry
		}
		return KindOpaque
	}
}

// Block is one top-level entry of a .nif.json document. Raw holds the value
// exactly as it appeared in the source.
type Block struct {
	Key  string
	Raw  json.RawMessage
	Kind BlockKind
}

// Document is an ordered .nif.json document.
type Document struct {
	Blocks []Block
}

// Parse reads a .nif.json document, keeping block order and raw block
// bytes. A nil classify defaults to MarkerClassifier(DefaultMarker).
func Parse(data []byte, classify Classifier) (*Document, error) {
	if classify == nil {
		classify = MarkerClassifier(DefaultMarker)
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	doc := &Document{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading block key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, ErrBadKey
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("reading block %q: %w", key, err)
		}

		doc.Blocks = append(doc.Blocks, Block{
			Key:  key,
			Raw:  raw,
			Kind: classify(key),
		})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading document end: %w", err)
	}
	if dec.More() {
		return nil, ErrTrailing
	}
	return doc, nil
}

// ParseFile loads and parses a document from path.
func ParseFile(path string, classify Classifier) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data, classify)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Clone returns a deep copy of the document. The copy shares no bytes with
// the original, so either side can be transformed without touching the
// other.
func (d *Document) Clone() *Document {
	out := &Document{Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		raw := make(json.RawMessage, len(b.Raw))
		copy(raw, b.Raw)
		out.Blocks[i] = Block{Key: b.Key, Raw: raw, Kind: b.Kind}
	}
	return out
}

// Encode serializes the document with its original block order, 4-space
// indentation and unescaped non-ASCII, matching the Sniff writer. Raw block
// bytes are re-indented but never re-encoded, so opaque blocks keep their
// exact value text.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range d.Blocks {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n    ")
		key, err := encodeString(b.Key)
		if err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", b.Key, err)
		}
		buf.Write(key)
		buf.WriteString(": ")
		if err := json.Indent(&buf, b.Raw, "    ", "    "); err != nil {
			return nil, fmt.Errorf("encoding block %q: %w", b.Key, err)
		}
	}
	if len(d.Blocks) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteFile serializes the document to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Encode()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

// encodeString marshals s as a JSON string without HTML escaping.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

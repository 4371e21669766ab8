package nifjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Axis selects the position component negated by MirrorAxis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns the axis name.
func (a Axis) String() string {
	if a == AxisY {
		return "Y"
	}
	return "X"
}

// component returns the index of the negated coordinate.
func (a Axis) component() int {
	if a == AxisY {
		return 1
	}
	return 0
}

// UVAxis selects the texture coordinate reflected by MirrorUV.
type UVAxis int

const (
	AxisU UVAxis = iota
	AxisV
)

// String returns the UV axis name.
func (a UVAxis) String() string {
	if a == AxisV {
		return "V"
	}
	return "U"
}

// Diagnostic reports a skipped or partially processed piece of geometry.
// The transform never fails a whole document over bad data; it degrades to
// a partial transform and reports what it skipped.
type Diagnostic struct {
	Block  string
	Field  string
	Reason string
}

// String renders the diagnostic as a log line.
func (d Diagnostic) String() string {
	if d.Field == "" {
		return fmt.Sprintf("%s: %s", d.Block, d.Reason)
	}
	return fmt.Sprintf("%s[%s]: %s", d.Block, d.Field, d.Reason)
}

// Shape data field names, as Sniff writes them.
const (
	fieldVertices  = "Vertices"
	fieldNormals   = "Normals"
	fieldCenter    = "Center"
	fieldTriangles = "Triangles"
	fieldUVSets    = "UV Sets"
)

// MirrorAxis reflects the document's geometry across a position axis:
// the selected component of every vertex, normal and center triple is
// negated, and triangle winding is reversed so front faces stay front
// faces. The input document is not modified; the result shares no data
// with it.
func MirrorAxis(doc *Document, axis Axis) (*Document, []Diagnostic) {
	out := doc.Clone()
	var diags []Diagnostic

	for i := range out.Blocks {
		b := &out.Blocks[i]
		if b.Kind != KindGeometry {
			continue
		}
		raw, ds := transformShape(b.Key, b.Raw, func(sd *shapeData) {
			mirrorPositions(sd, axis)
			reverseWinding(sd)
		})
		b.Raw = raw
		diags = append(diags, ds...)
	}
	return out, diags
}

// MirrorUV reflects the first UV set of every geometry block across the U
// or V axis (u -> 1-u or v -> 1-v). Additional UV sets are deliberately
// left alone. Winding is not touched: a pure texture mirror does not flip
// triangle orientation.
func MirrorUV(doc *Document, axis UVAxis) (*Document, []Diagnostic) {
	out := doc.Clone()
	var diags []Diagnostic

	for i := range out.Blocks {
		b := &out.Blocks[i]
		if b.Kind != KindGeometry {
			continue
		}
		raw, ds := transformShape(b.Key, b.Raw, func(sd *shapeData) {
			mirrorFirstUVSet(sd, axis)
		})
		b.Raw = raw
		diags = append(diags, ds...)
	}
	return out, diags
}

// shapeData is one geometry block split into ordered fields, with a
// diagnostic sink scoped to the block.
type shapeData struct {
	block  string
	fields []shapeField
	diags  []Diagnostic
}

type shapeField struct {
	key string
	raw json.RawMessage
}

func (sd *shapeData) warn(field, reason string) {
	sd.diags = append(sd.diags, Diagnostic{Block: sd.block, Field: field, Reason: reason})
}

func (sd *shapeData) field(key string) *shapeField {
	for i := range sd.fields {
		if sd.fields[i].key == key {
			return &sd.fields[i]
		}
	}
	return nil
}

// transformShape parses a geometry block, applies fn and re-encodes it.
// A block that is not a JSON object is returned unchanged with a
// diagnostic; all other blocks in the document still get transformed.
func transformShape(block string, raw json.RawMessage, fn func(*shapeData)) (json.RawMessage, []Diagnostic) {
	sd, err := parseShape(block, raw)
	if err != nil {
		return raw, []Diagnostic{{Block: block, Reason: "unexpected block shape, skipping"}}
	}

	fn(sd)

	encoded, err := sd.encode()
	if err != nil {
		// Field bytes came straight from the decoder, so this should not
		// happen; keep the original rather than corrupt the block.
		return raw, append(sd.diags, Diagnostic{Block: block, Reason: "re-encoding failed, block left unchanged"})
	}
	return encoded, sd.diags
}

// parseShape splits a block value into ordered key/raw fields.
func parseShape(block string, raw json.RawMessage) (*shapeData, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	sd := &shapeData{block: block}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, ErrBadKey
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}
		sd.fields = append(sd.fields, shapeField{key: key, raw: val})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return sd, nil
}

func (sd *shapeData) encode() (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range sd.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeString(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(f.raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// mirrorPositions negates one component of Vertices, Normals and Center.
func mirrorPositions(sd *shapeData, axis Axis) {
	comp := axis.component()

	for _, name := range []string{fieldVertices, fieldNormals} {
		f := sd.field(name)
		if f == nil {
			continue
		}
		var triples []string
		if err := json.Unmarshal(f.raw, &triples); err != nil {
			sd.warn(name, "expected a list of coordinate strings, skipping")
			continue
		}
		for i, t := range triples {
			triples[i] = sd.mirrorTriple(name, t, comp)
		}
		f.raw = mustMarshal(triples)
	}

	if f := sd.field(fieldCenter); f != nil {
		var center string
		if err := json.Unmarshal(f.raw, &center); err != nil {
			sd.warn(fieldCenter, "expected a coordinate string, skipping")
		} else {
			f.raw = mustMarshal(sd.mirrorTriple(fieldCenter, center, comp))
		}
	}
}

// mirrorTriple negates component comp of a "x y z" string. Malformed
// strings are returned unchanged with a diagnostic.
func (sd *shapeData) mirrorTriple(field, s string, comp int) string {
	tokens := strings.Fields(s)
	if len(tokens) != 3 {
		sd.warn(field, fmt.Sprintf("coordinate %q does not have 3 components", s))
		return s
	}
	vals := make([]float64, 3)
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			sd.warn(field, fmt.Sprintf("coordinate %q is not numeric", s))
			return s
		}
		vals[i] = v
	}
	vals[comp] = -vals[comp]
	return FormatCoord(vals[0]) + " " + FormatCoord(vals[1]) + " " + FormatCoord(vals[2])
}

// reverseWinding swaps the first and third index of every triangle.
// Supported encodings: a list of "i j k" strings, or a flat integer list
// whose length is a multiple of 3. Anything else leaves Triangles as-is
// with a diagnostic; index values themselves are never changed.
func reverseWinding(sd *shapeData) {
	f := sd.field(fieldTriangles)
	if f == nil {
		return
	}

	var entries []string
	if err := json.Unmarshal(f.raw, &entries); err == nil {
		reversed := make([]string, len(entries))
		for i, e := range entries {
			tokens := strings.Fields(e)
			if len(tokens) != 3 {
				sd.warn(fieldTriangles, fmt.Sprintf("triangle %q does not have 3 indices, skipping triangle processing", e))
				return
			}
			reversed[i] = tokens[2] + " " + tokens[1] + " " + tokens[0]
		}
		f.raw = mustMarshal(reversed)
		return
	}

	var flat []int64
	if err := json.Unmarshal(f.raw, &flat); err == nil {
		if len(flat)%3 != 0 {
			sd.warn(fieldTriangles, "flat triangle list length is not a multiple of 3, skipping triangle processing")
			return
		}
		for i := 0; i < len(flat); i += 3 {
			flat[i], flat[i+2] = flat[i+2], flat[i]
		}
		f.raw = mustMarshal(flat)
		return
	}

	sd.warn(fieldTriangles, "unsupported triangle format, skipping triangle processing")
}

// mirrorFirstUVSet reflects the first UV set only. Trailing UV sets are
// kept unchanged on purpose: the pipeline's materials only use set 0.
func mirrorFirstUVSet(sd *shapeData, axis UVAxis) {
	f := sd.field(fieldUVSets)
	if f == nil {
		return
	}

	var sets []json.RawMessage
	if err := json.Unmarshal(f.raw, &sets); err != nil || len(sets) == 0 {
		if err != nil {
			sd.warn(fieldUVSets, "expected a list of UV sets, skipping")
		}
		return
	}

	var pairs []string
	if err := json.Unmarshal(sets[0], &pairs); err != nil {
		sd.warn(fieldUVSets, "expected a list of UV pair strings, skipping")
		return
	}
	for i, p := range pairs {
		pairs[i] = sd.mirrorPair(p, axis)
	}
	sets[0] = mustMarshal(pairs)
	f.raw = mustMarshal(sets)
}

// mirrorPair maps "u v" to "1-u v" (U axis) or "u 1-v" (V axis).
func (sd *shapeData) mirrorPair(s string, axis UVAxis) string {
	tokens := strings.Fields(s)
	if len(tokens) != 2 {
		sd.warn(fieldUVSets, fmt.Sprintf("UV pair %q does not have 2 components", s))
		return s
	}
	u, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		sd.warn(fieldUVSets, fmt.Sprintf("UV pair %q is not numeric", s))
		return s
	}
	v, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		sd.warn(fieldUVSets, fmt.Sprintf("UV pair %q is not numeric", s))
		return s
	}
	if axis == AxisV {
		v = 1.0 - v
	} else {
		u = 1.0 - u
	}
	return FormatCoord(u) + " " + FormatCoord(v)
}

// FormatCoord renders a coordinate with the shortest round-trippable
// decimal text, keeping a trailing ".0" on integral values so mirrored
// files stay textually in line with Sniff output (1.0, not 1).
func FormatCoord(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// mustMarshal marshals values that cannot fail (strings and ints).
func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

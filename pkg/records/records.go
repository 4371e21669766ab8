// Package records builds TES3 plugin record fragments (Static, MiscItem,
// Ingredient) from .nif model file names. The output is a JSON array chunk
// meant to be pasted into a plugin dump, one record per model.
package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the record type generated for each model.
type Kind int

const (
	Static Kind = iota
	MiscItem
	Ingredient
)

// String returns the record type name as it appears in plugin dumps.
func (k Kind) String() string {
	switch k {
	case MiscItem:
		return "MiscItem"
	case Ingredient:
		return "Ingredient"
	default:
		return "Static"
	}
}

// ErrUnknownKind reports an unrecognized record kind name.
var ErrUnknownKind = errors.New("unknown record kind")

// ParseKind maps a CLI argument to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "static":
		return Static, nil
	case "miscitem":
		return MiscItem, nil
	case "ingredient":
		return Ingredient, nil
	}
	return Static, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Settings drives record generation. Prefixes are prepended to every model
// name; the shared name/script/icon/weight/value fields fill the item
// records.
type Settings struct {
	Flags  string `yaml:"flags"` // PERSISTENT | BLOCKED
	Name   string `yaml:"name"`
	Script string `yaml:"script"`
	Icon   string `yaml:"icon"`

	Weight float64 `yaml:"weight"`
	Value  int     `yaml:"value"`

	PrefixID   string `yaml:"prefix_id"`
	PrefixMesh string `yaml:"prefix_mesh"`

	MaxLengthID   int `yaml:"max_length_id"`
	MaxLengthName int `yaml:"max_length_name"`
	MaxLengthMesh int `yaml:"max_length_mesh"`
	MaxLengthIcon int `yaml:"max_length_icon"`
}

// DefaultSettings returns the limits the engine enforces (31 characters for
// ids and paths) and the stock RR prefixes.
func DefaultSettings() Settings {
	return Settings{
		Weight:        0.1,
		Value:         10,
		PrefixID:      "_RR_",
		PrefixMesh:    `rr\f\`,
		MaxLengthID:   31,
		MaxLengthName: 31,
		MaxLengthMesh: 31,
		MaxLengthIcon: 31,
	}
}

// Validate checks the shared settings themselves (record-independent
// fields the user configures once).
func (s Settings) Validate() error {
	if len(s.Name) > s.MaxLengthName {
		return fmt.Errorf("configured name is too long: max %d chars, current %d", s.MaxLengthName, len(s.Name))
	}
	if len(s.Icon) > s.MaxLengthIcon {
		return fmt.Errorf("configured icon path is too long: max %d chars, current %d", s.MaxLengthIcon, len(s.Icon))
	}
	return nil
}

// LengthError reports an id or mesh path exceeding the engine limit for one
// model.
type LengthError struct {
	Field  string // "id" or "mesh"
	Name   string // model base name
	Length int
	Max    int
}

func (e LengthError) Error() string {
	return fmt.Sprintf("record %s is too long for %s: max %d chars, current %d", e.Field, e.Name, e.Max, e.Length)
}

// staticRecord is the minimal record form used for world statics.
type staticRecord struct {
	Type  string `json:"type"`
	Flags string `json:"flags"`
	ID    string `json:"id"`
	Mesh  string `json:"mesh"`
}

type miscData struct {
	Weight float64 `json:"weight"`
	Value  int     `json:"value"`
	Flags  string  `json:"flags"`
}

type miscRecord struct {
	Type   string   `json:"type"`
	Flags  string   `json:"flags"`
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Script string   `json:"script"`
	Mesh   string   `json:"mesh"`
	Icon   string   `json:"icon"`
	Data   miscData `json:"data"`
}

type ingredientData struct {
	Weight     float64   `json:"weight"`
	Value      int       `json:"value"`
	Effects    [4]string `json:"effects"`
	Skills     [4]string `json:"skills"`
	Attributes [4]string `json:"attributes"`
}

type ingredientRecord struct {
	Type   string         `json:"type"`
	Flags  string         `json:"flags"`
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Script string         `json:"script"`
	Mesh   string         `json:"mesh"`
	Icon   string         `json:"icon"`
	Data   ingredientData `json:"data"`
}

// noEffects is the empty 4-slot effect/skill/attribute list ingredients
// carry by default.
var noEffects = [4]string{"None", "None", "None", "None"}

// Build constructs one record for a model base name. Length violations are
// returned instead of a record; the caller aggregates them into the batch
// report.
func Build(kind Kind, nifName string, s Settings) (any, []LengthError) {
	fullID := s.PrefixID + nifName
	fullMesh := s.PrefixMesh + nifName + ".nif"

	var errs []LengthError
	if len(fullID) > s.MaxLengthID {
		errs = append(errs, LengthError{Field: "id", Name: nifName, Length: len(fullID), Max: s.MaxLengthID})
	}
	if len(fullMesh) > s.MaxLengthMesh {
		errs = append(errs, LengthError{Field: "mesh", Name: nifName, Length: len(fullMesh), Max: s.MaxLengthMesh})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	switch kind {
	case MiscItem:
		return miscRecord{
			Type:   kind.String(),
			Flags:  s.Flags,
			ID:     fullID,
			Name:   s.Name,
			Script: s.Script,
			Mesh:   fullMesh,
			Icon:   s.Icon,
			Data:   miscData{Weight: s.Weight, Value: s.Value},
		}, nil
	case Ingredient:
		return ingredientRecord{
			Type:   kind.String(),
			Flags:  s.Flags,
			ID:     fullID,
			Name:   s.Name,
			Script: s.Script,
			Mesh:   fullMesh,
			Icon:   s.Icon,
			Data: ingredientData{
				Weight:     s.Weight,
				Value:      s.Value,
				Effects:    noEffects,
				Skills:     noEffects,
				Attributes: noEffects,
			},
		}, nil
	default:
		return staticRecord{
			Type:  kind.String(),
			Flags: s.Flags,
			ID:    fullID,
			Mesh:  fullMesh,
		}, nil
	}
}

// Fragment renders records as a JSON array chunk: each record indented with
// two spaces and followed by a comma, ready to splice into a dump.
func Fragment(entries []any) ([]byte, error) {
	var buf bytes.Buffer
	for _, e := range entries {
		data, err := json.MarshalIndent(e, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding record: %w", err)
		}
		buf.Write(data)
		buf.WriteString(",\n")
	}
	return buf.Bytes(), nil
}

// Report renders length violations grouped by field, the format the
// converter writes next to its output file.
func Report(errs []LengthError, s Settings) string {
	var ids, meshes []string
	for _, e := range errs {
		line := fmt.Sprintf("%s (current %d chars)", e.Name, e.Length)
		if e.Field == "id" {
			ids = append(ids, line)
		} else {
			meshes = append(meshes, line)
		}
	}

	var b strings.Builder
	if len(ids) > 0 {
		fmt.Fprintf(&b, "ERROR - record id is too long (max %d chars):\n", s.MaxLengthID)
		b.WriteString(strings.Join(ids, "\n"))
		b.WriteString("\n\n")
	}
	if len(meshes) > 0 {
		fmt.Fprintf(&b, "ERROR - record mesh path is too long (max %d chars):\n", s.MaxLengthMesh)
		b.WriteString(strings.Join(meshes, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// Package retex generates retextured .nif.json variants by string
// substitution: for every input model it writes one copy per configured
// affix, renaming the NiTriShape nodes and swapping the base material
// texture for the variant texture. It operates on raw file text, not
// parsed JSON: the replacements are plain substring rewrites.
package retex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Settings drives one variant-generation run.
type Settings struct {
	Directory   string   `yaml:"directory"`
	BaseName    string   `yaml:"base_name"`    // e.g. Hill01_BM
	BaseAffix   string   `yaml:"base_affix"`   // affix of the base material, e.g. _G2
	BaseTexture string   `yaml:"base_texture"` // texture path to replace
	Suffixes    []string `yaml:"suffixes"`     // file-name suffix variations, e.g. "", "_m", "a"
	NewAffixes  []string `yaml:"new_affixes"`  // one output variant per affix
	Textures    []string `yaml:"textures"`     // replacement texture per affix, same order
}

// Settings errors.
var (
	ErrNoBaseName      = errors.New("base_name is not set")
	ErrTextureMismatch = errors.New("textures and new_affixes must have the same length")
)

// Validate checks that the affix and texture lists line up.
func (s Settings) Validate() error {
	if s.BaseName == "" {
		return ErrNoBaseName
	}
	if len(s.Textures) != len(s.NewAffixes) {
		return fmt.Errorf("%w: %d textures for %d affixes", ErrTextureMismatch, len(s.Textures), len(s.NewAffixes))
	}
	return nil
}

// AffixMapping maps every existing affix+suffix combination to its output
// affix+suffix list. A file carrying "_G2_m" maps to "_D1_m", "_G1_m", ...
func AffixMapping(suffixes, newAffixes []string, baseAffix string) map[string][]string {
	mapping := make(map[string][]string, len(suffixes))
	for _, suffix := range suffixes {
		out := make([]string, len(newAffixes))
		for i, affix := range newAffixes {
			out[i] = affix + suffix
		}
		mapping[baseAffix+suffix] = out
	}
	return mapping
}

// SplitAffix splits "Hill01_BM_G2_m.nif.json" into its affix "_G2_m".
// ok is false when the name does not start with baseName or is not a
// .nif.json file.
func SplitAffix(filename, baseName string) (affix string, ok bool) {
	if !strings.HasPrefix(filename, baseName) || !strings.HasSuffix(filename, ".nif.json") {
		return "", false
	}
	return filename[len(baseName) : len(filename)-len(".nif.json")], true
}

// Variant is one planned output file.
type Variant struct {
	Output     string // output file name
	OldShape   string // NiTriShape name to replace
	NewShape   string
	OldTexture string
	NewTexture string
}

// Apply performs the substitutions of a single variant on raw file text.
func (v Variant) Apply(content string) string {
	out := strings.ReplaceAll(content, v.OldShape, v.NewShape)
	return strings.ReplaceAll(out, v.OldTexture, v.NewTexture)
}

// VariantsFor plans the outputs for one input file, or nil when its affix
// is not in the mapping.
func VariantsFor(s Settings, filename string, mapping map[string][]string) []Variant {
	affix, ok := SplitAffix(filename, s.BaseName)
	if !ok {
		return nil
	}
	outAffixes, ok := mapping[affix]
	if !ok {
		return nil
	}

	variants := make([]Variant, len(outAffixes))
	for i, outAffix := range outAffixes {
		variants[i] = Variant{
			Output:     s.BaseName + outAffix + ".nif.json",
			OldShape:   s.BaseName + affix,
			NewShape:   s.BaseName + outAffix,
			OldTexture: s.BaseTexture,
			NewTexture: s.Textures[i%len(s.Textures)],
		}
	}
	return variants
}

// Plan splits candidate files into valid inputs and the two reject lists
// the run reports (wrong base name, unknown affix).
func Plan(s Settings, files []string, mapping map[string][]string) (valid, badBase, badAffix []string) {
	for _, f := range files {
		affix, ok := SplitAffix(f, s.BaseName)
		if !ok {
			badBase = append(badBase, f)
			continue
		}
		if _, ok := mapping[affix]; !ok {
			badAffix = append(badAffix, f)
			continue
		}
		valid = append(valid, f)
	}
	return valid, badBase, badAffix
}

// FileReport describes the outcome of one input file during a run.
type FileReport struct {
	Name    string
	Outputs []string
	Skipped string // reason, when no outputs were produced
	Err     error
}

// Run generates all variants for the valid files among candidates,
// writing each output next to its source.
func Run(s Settings, candidates []string) (reports []FileReport, err error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	mapping := AffixMapping(s.Suffixes, s.NewAffixes, s.BaseAffix)
	valid, _, _ := Plan(s, candidates, mapping)

	for _, filename := range valid {
		report := FileReport{Name: filename}

		data, readErr := os.ReadFile(filepath.Join(s.Directory, filename))
		if readErr != nil {
			report.Err = readErr
			reports = append(reports, report)
			continue
		}
		content := string(data)

		if !strings.Contains(content, s.BaseTexture) {
			report.Skipped = fmt.Sprintf("texture %s not found", s.BaseTexture)
			reports = append(reports, report)
			continue
		}

		for _, v := range VariantsFor(s, filename, mapping) {
			outPath := filepath.Join(s.Directory, v.Output)
			if writeErr := os.WriteFile(outPath, []byte(v.Apply(content)), 0644); writeErr != nil {
				report.Err = writeErr
				break
			}
			report.Outputs = append(report.Outputs, v.Output)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

package retex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings(dir string) Settings {
	return Settings{
		Directory:   dir,
		BaseName:    "Hill01_BM",
		BaseAffix:   "_G2",
		BaseTexture: `textures\\tx_bm_grass_02.dds`,
		Suffixes:    []string{"", "_m"},
		NewAffixes:  []string{"_D1", "_G1"},
		Textures:    []string{`textures\\tx_bm_dirt_01.dds`, `textures\\tx_bm_grass_01.dds`},
	}
}

func TestValidate(t *testing.T) {
	s := testSettings("")
	require.NoError(t, s.Validate())

	s.Textures = s.Textures[:1]
	assert.ErrorIs(t, s.Validate(), ErrTextureMismatch)

	s = testSettings("")
	s.BaseName = ""
	assert.ErrorIs(t, s.Validate(), ErrNoBaseName)
}

func TestAffixMapping(t *testing.T) {
	mapping := AffixMapping([]string{"", "_m"}, []string{"_D1", "_G1"}, "_G2")

	assert.Equal(t, map[string][]string{
		"_G2":   {"_D1", "_G1"},
		"_G2_m": {"_D1_m", "_G1_m"},
	}, mapping)
}

func TestSplitAffix(t *testing.T) {
	tests := []struct {
		filename string
		affix    string
		ok       bool
	}{
		{"Hill01_BM_G2.nif.json", "_G2", true},
		{"Hill01_BM_G2_m.nif.json", "_G2_m", true},
		{"Hill01_BM.nif.json", "", true},
		{"Rock01_G2.nif.json", "", false},
		{"Hill01_BM_G2.nif", "", false},
	}

	for _, tt := range tests {
		affix, ok := SplitAffix(tt.filename, "Hill01_BM")
		assert.Equal(t, tt.ok, ok, tt.filename)
		if ok {
			assert.Equal(t, tt.affix, affix, tt.filename)
		}
	}
}

func TestVariantsFor(t *testing.T) {
	s := testSettings("")
	mapping := AffixMapping(s.Suffixes, s.NewAffixes, s.BaseAffix)

	variants := VariantsFor(s, "Hill01_BM_G2_m.nif.json", mapping)
	require.Len(t, variants, 2)

	assert.Equal(t, "Hill01_BM_D1_m.nif.json", variants[0].Output)
	assert.Equal(t, "Hill01_BM_G2_m", variants[0].OldShape)
	assert.Equal(t, "Hill01_BM_D1_m", variants[0].NewShape)
	assert.Equal(t, `textures\\tx_bm_dirt_01.dds`, variants[0].NewTexture)

	assert.Equal(t, "Hill01_BM_G1_m.nif.json", variants[1].Output)
	assert.Equal(t, `textures\\tx_bm_grass_01.dds`, variants[1].NewTexture)

	assert.Nil(t, VariantsFor(s, "Hill01_BM_XX.nif.json", mapping))
	assert.Nil(t, VariantsFor(s, "Other_G2.nif.json", mapping))
}

func TestVariantApply(t *testing.T) {
	v := Variant{
		OldShape:   "Hill01_BM_G2",
		NewShape:   "Hill01_BM_D1",
		OldTexture: `textures\\tx_bm_grass_02.dds`,
		NewTexture: `textures\\tx_bm_dirt_01.dds`,
	}

	in := `{"NiTriShape": "Hill01_BM_G2", "Texture": "textures\\tx_bm_grass_02.dds"}`
	out := v.Apply(in)

	assert.Contains(t, out, "Hill01_BM_D1")
	assert.NotContains(t, out, "Hill01_BM_G2")
	assert.Contains(t, out, `tx_bm_dirt_01.dds`)
	assert.NotContains(t, out, `tx_bm_grass_02.dds`)
}

func TestPlan(t *testing.T) {
	s := testSettings("")
	mapping := AffixMapping(s.Suffixes, s.NewAffixes, s.BaseAffix)

	valid, badBase, badAffix := Plan(s, []string{
		"Hill01_BM_G2.nif.json",
		"Hill01_BM_G2_m.nif.json",
		"Rock01.nif.json",
		"Hill01_BM_ZZ.nif.json",
	}, mapping)

	assert.Equal(t, []string{"Hill01_BM_G2.nif.json", "Hill01_BM_G2_m.nif.json"}, valid)
	assert.Equal(t, []string{"Rock01.nif.json"}, badBase)
	assert.Equal(t, []string{"Hill01_BM_ZZ.nif.json"}, badAffix)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	s := testSettings(dir)

	content := `{"NiTriShape": "Hill01_BM_G2", "Texture": "` + s.BaseTexture + `"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Hill01_BM_G2.nif.json"), []byte(content), 0644))
	// A file without the base texture gets skipped with a reason.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Hill01_BM_G2_m.nif.json"), []byte(`{}`), 0644))

	reports, err := Run(s, []string{"Hill01_BM_G2.nif.json", "Hill01_BM_G2_m.nif.json"})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, []string{"Hill01_BM_D1.nif.json", "Hill01_BM_G1.nif.json"}, reports[0].Outputs)
	assert.Empty(t, reports[1].Outputs)
	assert.Contains(t, reports[1].Skipped, "not found")

	out, err := os.ReadFile(filepath.Join(dir, "Hill01_BM_D1.nif.json"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Hill01_BM_D1")
	assert.Contains(t, string(out), `tx_bm_dirt_01.dds`)
}

func TestRun_InvalidSettings(t *testing.T) {
	s := testSettings("")
	s.Textures = nil
	_, err := Run(s, nil)
	assert.ErrorIs(t, err, ErrTextureMismatch)
}

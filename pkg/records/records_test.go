package records

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"static", Static, false},
		{"Static", Static, false},
		{"miscitem", MiscItem, false},
		{"MiscItem", MiscItem, false},
		{"ingredient", Ingredient, false},
		{"weapon", Static, true},
		{"", Static, true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q): got error=%v, wantErr=%v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBuild_Static(t *testing.T) {
	s := DefaultSettings()
	rec, errs := Build(Static, "ex_hut01", s)
	if len(errs) != 0 {
		t.Fatalf("unexpected length errors: %v", errs)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(data)

	want := `{"type":"Static","flags":"","id":"_RR_ex_hut01","mesh":"rr\\f\\ex_hut01.nif"}`
	if got != want {
		t.Errorf("record mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestBuild_MiscItem(t *testing.T) {
	s := DefaultSettings()
	s.Name = "Basket"
	rec, errs := Build(MiscItem, "basket01", s)
	if len(errs) != 0 {
		t.Fatalf("unexpected length errors: %v", errs)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["type"] != "MiscItem" {
		t.Errorf("expected type MiscItem, got %v", m["type"])
	}
	if m["name"] != "Basket" {
		t.Errorf("expected name Basket, got %v", m["name"])
	}
	inner := m["data"].(map[string]any)
	if inner["weight"] != 0.1 {
		t.Errorf("expected weight 0.1, got %v", inner["weight"])
	}
	if inner["value"] != 10.0 {
		t.Errorf("expected value 10, got %v", inner["value"])
	}
}

func TestBuild_Ingredient(t *testing.T) {
	rec, errs := Build(Ingredient, "flower01", DefaultSettings())
	if len(errs) != 0 {
		t.Fatalf("unexpected length errors: %v", errs)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	inner := m["data"].(map[string]any)
	for _, field := range []string{"effects", "skills", "attributes"} {
		slots := inner[field].([]any)
		if len(slots) != 4 {
			t.Errorf("expected 4 %s slots, got %d", field, len(slots))
		}
		for _, slot := range slots {
			if slot != "None" {
				t.Errorf("expected %s slot None, got %v", field, slot)
			}
		}
	}
}

func TestBuild_LengthViolations(t *testing.T) {
	s := DefaultSettings()
	longName := strings.Repeat("x", 40)

	rec, errs := Build(Static, longName, s)
	if rec != nil {
		t.Error("expected no record for an over-long name")
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 length errors (id and mesh), got %d", len(errs))
	}

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
		if e.Max != 31 {
			t.Errorf("expected max 31, got %d", e.Max)
		}
	}
	if !fields["id"] || !fields["mesh"] {
		t.Errorf("expected id and mesh violations, got %v", errs)
	}
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Errorf("default settings should validate: %v", err)
	}

	s.Name = strings.Repeat("n", 32)
	if err := s.Validate(); err == nil {
		t.Error("expected error for over-long name")
	}

	s = DefaultSettings()
	s.Icon = strings.Repeat("i", 32)
	if err := s.Validate(); err == nil {
		t.Error("expected error for over-long icon path")
	}
}

func TestFragment(t *testing.T) {
	s := DefaultSettings()
	rec1, _ := Build(Static, "a", s)
	rec2, _ := Build(Static, "b", s)

	out, err := Fragment([]any{rec1, rec2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := string(out)
	if strings.Count(text, ",\n") < 2 {
		t.Errorf("expected a trailing comma after each record:\n%s", text)
	}
	if !strings.Contains(text, `"id": "_RR_a"`) || !strings.Contains(text, `"id": "_RR_b"`) {
		t.Errorf("expected both records in fragment:\n%s", text)
	}
}

func TestReport(t *testing.T) {
	s := DefaultSettings()
	errs := []LengthError{
		{Field: "id", Name: "very_long_model", Length: 35, Max: 31},
		{Field: "mesh", Name: "other_model", Length: 40, Max: 31},
	}

	report := Report(errs, s)
	if !strings.Contains(report, "record id is too long (max 31 chars)") {
		t.Errorf("missing id section:\n%s", report)
	}
	if !strings.Contains(report, "record mesh path is too long (max 31 chars)") {
		t.Errorf("missing mesh section:\n%s", report)
	}
	if !strings.Contains(report, "very_long_model (current 35 chars)") {
		t.Errorf("missing id entry:\n%s", report)
	}

	if Report(nil, s) != "" {
		t.Error("expected empty report for no violations")
	}
}

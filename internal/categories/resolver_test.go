package categories

import (
	"testing"

	"lana/internal/core"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  []map[string]any
		want []core.Category
	}{
		{
			name: "canonical keys",
			raw:  []map[string]any{{"id": float64(1), "name": "Comida"}},
			want: []core.Category{{ID: "1", Name: "Comida"}},
		},
		{
			name: "legacy casing",
			raw:  []map[string]any{{"ID": float64(5), "Nombre": "Renta"}},
			want: []core.Category{{ID: "5", Name: "Renta"}},
		},
		{
			name: "snake case id",
			raw:  []map[string]any{{"id_category": float64(3), "nombre": "Ocio"}},
			want: []core.Category{{ID: "3", Name: "Ocio"}},
		},
		{
			name: "camel case id",
			raw:  []map[string]any{{"idCategory": "9", "name": "Transporte"}},
			want: []core.Category{{ID: "9", Name: "Transporte"}},
		},
		{
			name: "missing name falls back to id",
			raw:  []map[string]any{{"id": float64(7)}},
			want: []core.Category{{ID: "7", Name: "7"}},
		},
		{
			name: "record without id is dropped",
			raw:  []map[string]any{{"name": "Huérfana"}, {"id": float64(2), "name": "Comida"}},
			want: []core.Category{{ID: "2", Name: "Comida"}},
		},
		{
			name: "alias priority prefers id over id_category",
			raw:  []map[string]any{{"id": float64(1), "id_category": float64(99), "name": "Comida"}},
			want: []core.Category{{ID: "1", Name: "Comida"}},
		},
		{
			name: "empty input",
			raw:  nil,
			want: []core.Category{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("Normalize() returned %d records, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("record %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := []map[string]any{
		{"id": float64(1), "name": "Comida"},
		{"ID": float64(5), "Nombre": "Renta"},
	}
	first := Normalize(raw)

	// Re-normalizing the already-uniform shape produces the same list.
	again := make([]map[string]any, 0, len(first))
	for _, c := range first {
		again = append(again, map[string]any{"id": string(c.ID), "name": c.Name})
	}
	second := Normalize(again)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("record %d changed across passes: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestIndexRoundTrip(t *testing.T) {
	cats := []core.Category{
		{ID: "1", Name: "Comida"},
		{ID: "2", Name: "Renta"},
	}
	ix := NewIndex(cats)

	for _, c := range cats {
		if got := ix.NameToID[c.Name]; got != c.ID {
			t.Errorf("NameToID[%q] = %q, want %q", c.Name, got, c.ID)
		}
		if got := ix.DisplayName(c.ID); got != c.Name {
			t.Errorf("DisplayName(%q) = %q, want %q", c.ID, got, c.Name)
		}
	}
}

func TestIndexDisplayNamePlaceholder(t *testing.T) {
	ix := NewIndex([]core.Category{{ID: "1", Name: "Comida"}})
	if got := ix.DisplayName("42"); got != "Cat 42" {
		t.Errorf("DisplayName(42) = %q, want \"Cat 42\"", got)
	}
}

func TestIndexLastWriteWins(t *testing.T) {
	ix := NewIndex([]core.Category{
		{ID: "1", Name: "Comida"},
		{ID: "1", Name: "Comida y bebida"},
	})
	if got := ix.DisplayName("1"); got != "Comida y bebida" {
		t.Errorf("DisplayName(1) = %q, want last write", got)
	}
}

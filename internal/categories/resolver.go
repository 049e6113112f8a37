// Package categories normalizes the heterogeneous category records the
// backend returns and builds the id/name lookup maps the view models use.
//
// Different backend revisions expose the id and name under different key
// casings, so extraction is a small ordered list of candidate keys applied
// in priority order. Backend shape drift should only ever touch this file.
package categories

import (
	"lana/internal/core"
)

// idKeys and nameKeys are the known aliases, tried in order.
var (
	idKeys   = []string{"id", "ID", "Id", "id_category", "idCategory"}
	nameKeys = []string{"name", "Nombre", "nombre"}
)

// Normalize converts raw category records to the uniform {id, name} form.
// A record whose id cannot be resolved under any alias is skipped; a record
// without a name falls back to the stringified id.
func Normalize(raw []map[string]any) []core.Category {
	out := make([]core.Category, 0, len(raw))
	for _, rec := range raw {
		id := firstString(rec, idKeys)
		if id == "" {
			continue
		}
		name := firstString(rec, nameKeys)
		if name == "" {
			name = id
		}
		out = append(out, core.Category{ID: core.CategoryID(id), Name: name})
	}
	return out
}

// Index holds the bidirectional lookup maps built from a normalized list.
// Duplicate ids or names overwrite; last write wins.
type Index struct {
	NameToID map[string]core.CategoryID
	IDToName map[core.CategoryID]string
}

func NewIndex(cats []core.Category) Index {
	ix := Index{
		NameToID: make(map[string]core.CategoryID, len(cats)),
		IDToName: make(map[core.CategoryID]string, len(cats)),
	}
	for _, c := range cats {
		ix.NameToID[c.Name] = c.ID
		ix.IDToName[c.ID] = c.Name
	}
	return ix
}

// DisplayName resolves an id to its category name, falling back to the
// "Cat <id>" placeholder for ids absent from the list. Transactions with an
// unresolvable category still render; they are never dropped.
func (ix Index) DisplayName(id core.CategoryID) string {
	if name, ok := ix.IDToName[id]; ok && name != "" {
		return name
	}
	return "Cat " + string(id)
}

func firstString(rec map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			if s := core.Stringify(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// Package doctree builds the hierarchical document tree (book, chapters,
// sections, paragraphs, figures, tables, lists) from the ordered reading
// sequence produced by the layout engine, using an explicit font-size to
// structural-role mapping.
package doctree

import (
	"math"
	"sort"

	"github.com/pagestitch/pagestitch/layout"
	"github.com/pagestitch/pagestitch/model"
)

// RoleMap maps font sizes to structural roles. It is built once per
// document (either supplied by the caller or derived from the font-size
// histogram), immutable afterwards, and safe to share across parallel page
// workers. Sizes are matched at 0.1-unit resolution; unmapped sizes
// resolve to the paragraph role.
type RoleMap struct {
	roles map[int]model.Role
}

// sizeKey quantizes a font size for map lookup
func sizeKey(size float64) int {
	return int(math.Round(size * 10))
}

// NewRoleMap creates an empty role map
func NewRoleMap() RoleMap {
	return RoleMap{roles: make(map[int]model.Role)}
}

// Set binds a font size to a role and returns the map for chaining
func (m RoleMap) Set(size float64, role model.Role) RoleMap {
	m.roles[sizeKey(size)] = role
	return m
}

// Resolve returns the role for a font size. Sizes without a binding
// default to the paragraph role; this is never an error.
func (m RoleMap) Resolve(size float64) model.Role {
	if m.roles == nil {
		return model.RolePara
	}
	if role, ok := m.roles[sizeKey(size)]; ok {
		return role
	}
	return model.RolePara
}

// Len returns the number of bindings
func (m RoleMap) Len() int {
	return len(m.roles)
}

// headingWeightRatio caps a heading candidate's text extent relative to the
// body size. A size carrying more than this fraction of the body weight is
// an emphasis style running through body text, not a heading.
const headingWeightRatio = 0.5

// DeriveRoles infers a role map from the font-size histogram of the given
// lines. The size carrying the most text extent becomes the paragraph
// (body) size; rare larger sizes are ranked descending and bound to
// chapter, section and subsection in that order. Any further sizes above
// the body size also bind to subsection. Sizes at or below the body size
// stay paragraphs, as do larger sizes too common to be headings.
func DeriveRoles(lines []layout.Line) RoleMap {
	roles := NewRoleMap()
	if len(lines) == 0 {
		return roles
	}

	weights := make(map[int]float64)
	for i := range lines {
		size := lines[i].DominantFontSize()
		if size <= 0 {
			continue
		}
		weights[sizeKey(size)] += lines[i].BBox.Width
	}
	if len(weights) == 0 {
		return roles
	}

	bodyKey, bestWeight := 0, -1.0
	for key, weight := range weights {
		if weight > bestWeight || (weight == bestWeight && key < bodyKey) {
			bodyKey, bestWeight = key, weight
		}
	}
	roles.roles[bodyKey] = model.RolePara

	var larger []int
	for key, weight := range weights {
		if key <= bodyKey {
			continue
		}
		if weight > bestWeight*headingWeightRatio {
			roles.roles[key] = model.RolePara
			continue
		}
		larger = append(larger, key)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(larger)))

	headingRoles := []model.Role{model.RoleChapter, model.RoleSection, model.RoleSubsection}
	for i, key := range larger {
		if i < len(headingRoles) {
			roles.roles[key] = headingRoles[i]
		} else {
			roles.roles[key] = model.RoleSubsection
		}
	}

	return roles
}

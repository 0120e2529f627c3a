package text

// FontSpec describes a font referenced by extracted fragments
type FontSpec struct {
	Size   float64
	Family string
	Color  string
}

// FontTable maps upstream font identifiers to their specifications.
// It is built once from the extractor's fontspec records and read-only
// thereafter, so it is safe to share across parallel page workers.
type FontTable map[string]FontSpec

// Resolve returns the spec for a font ID. Unknown IDs resolve to a zero
// spec; callers fall back to the fragment's own FontSize in that case.
func (t FontTable) Resolve(fontID string) (FontSpec, bool) {
	spec, ok := t[fontID]
	return spec, ok
}

// Apply fills each fragment's FontSize and FontName from the table where the
// fragment carries a known FontID. Fragments with unknown IDs keep whatever
// size the extractor reported. Returns a new slice.
func (t FontTable) Apply(fragments []TextFragment) []TextFragment {
	if len(t) == 0 {
		return fragments
	}

	result := make([]TextFragment, len(fragments))
	copy(result, fragments)
	for i := range result {
		if spec, ok := t[result[i].FontID]; ok {
			if spec.Size > 0 {
				result[i].FontSize = spec.Size
			}
			if spec.Family != "" {
				result[i].FontName = spec.Family
			}
		}
	}
	return result
}

package doctree

import (
	"fmt"
	"strings"

	"github.com/pagestitch/pagestitch/layout"
	"github.com/pagestitch/pagestitch/model"
)

// UntitledHeading is the title synthesized for a container (chapter or
// section) that must open before any heading of its own level has appeared
const UntitledHeading = "Untitled"

// BuilderConfig holds configuration for document tree building
type BuilderConfig struct {
	// MinListItems is the number of further matching lines required after
	// a candidate marker line before it is confirmed as a list (default: 2)
	MinListItems int

	// StrongBulletMinItems is the reduced requirement for strong bullet
	// glyphs, which never appear in ordinary prose (default: 1)
	StrongBulletMinItems int

	// IndentTolerance is the maximum left-indentation difference between
	// list items, in page units (default: 15)
	IndentTolerance float64

	// MaxItemGapFactor is the maximum vertical gap between list items as a
	// multiple of line height (default: 2.5)
	MaxItemGapFactor float64

	// ContinuationGapFactor is the maximum baseline gap, as a multiple of
	// line height, for a line to continue the previous paragraph
	// (default: 1.8)
	ContinuationGapFactor float64
}

// DefaultBuilderConfig returns sensible default configuration
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		MinListItems:          2,
		StrongBulletMinItems:  1,
		IndentTolerance:       15.0,
		MaxItemGapFactor:      2.5,
		ContinuationGapFactor: 1.8,
	}
}

// Builder assembles the document tree from the ordered reading sequence.
// The font-role map is passed in explicitly and never stored globally, so
// builders for different documents can run side by side.
type Builder struct {
	config BuilderConfig
}

// NewBuilder creates a builder with default configuration
func NewBuilder() *Builder {
	return &Builder{config: DefaultBuilderConfig()}
}

// NewBuilderWithConfig creates a builder with custom configuration
func NewBuilderWithConfig(config BuilderConfig) *Builder {
	return &Builder{config: config}
}

// buildState tracks the open container stack and paragraph continuity
// during one build
type buildState struct {
	book       *model.DocumentNode
	chapter    *model.DocumentNode
	section    *model.DocumentNode
	subsection *model.DocumentNode

	prevPara *model.DocumentNode
	prevLine *layout.Line

	figureCount int
	tableCount  int
}

// innermost returns the deepest open container
func (s *buildState) innermost() *model.DocumentNode {
	switch {
	case s.subsection != nil:
		return s.subsection
	case s.section != nil:
		return s.section
	case s.chapter != nil:
		return s.chapter
	default:
		return s.book
	}
}

// Build walks the reading sequence and produces the book tree. Each line's
// dominant font size resolves to a structural role via the role map;
// heading roles open and close chapter/section/subsection containers, and
// paragraph lines accumulate into para nodes with soft-wrap continuation.
// Media items become figure/table nodes attached to the innermost open
// container, each guaranteed a non-empty title and a media reference.
func (b *Builder) Build(items []layout.Item, roles RoleMap) *model.DocumentNode {
	state := &buildState{book: model.NewNode(model.RoleBook)}

	for i := 0; i < len(items); i++ {
		item := items[i]

		if item.Media != nil {
			b.appendMedia(state, item.Media)
			continue
		}

		line := item.Line
		if line.IsEmpty() {
			continue
		}

		switch roles.Resolve(line.DominantFontSize()) {
		case model.RoleChapter:
			b.openChapter(state, line)
		case model.RoleSection:
			b.openSection(state, line)
		case model.RoleSubsection:
			b.openSubsection(state, line)
		default:
			if consumed := b.tryList(state, items, i); consumed > 0 {
				i += consumed - 1
				continue
			}
			b.appendPara(state, line)
		}
	}

	return state.book
}

// openChapter closes any open section/subsection and starts a new chapter
// titled from the heading line
func (b *Builder) openChapter(state *buildState, line *layout.Line) {
	title := strings.TrimSpace(line.Text())
	if title == "" {
		title = UntitledHeading
	}

	state.chapter = model.NewNode(model.RoleChapter)
	state.chapter.Title = title
	state.book.Append(state.chapter)
	state.section, state.subsection = nil, nil
	state.prevPara, state.prevLine = nil, nil
}

// openSection starts a new section, synthesizing an untitled chapter when
// section content appears before any chapter heading
func (b *Builder) openSection(state *buildState, line *layout.Line) {
	if state.chapter == nil {
		state.chapter = model.NewNode(model.RoleChapter)
		state.chapter.Title = UntitledHeading
		state.book.Append(state.chapter)
	}

	state.section = model.NewNode(model.RoleSection)
	state.section.Title = strings.TrimSpace(line.Text())
	state.chapter.Append(state.section)
	state.subsection = nil
	state.prevPara, state.prevLine = nil, nil
}

// openSubsection starts a new subsection, synthesizing missing ancestors
func (b *Builder) openSubsection(state *buildState, line *layout.Line) {
	if state.section == nil {
		b.openSection(state, &layout.Line{})
		state.section.Title = UntitledHeading
	}

	state.subsection = model.NewNode(model.RoleSubsection)
	state.subsection.Title = strings.TrimSpace(line.Text())
	state.section.Append(state.subsection)
	state.prevPara, state.prevLine = nil, nil
}

// appendPara appends a paragraph line, continuing the previous para node
// when the line is a soft-wrap continuation: the previous line lacked
// terminal punctuation and the baselines are adjacent
func (b *Builder) appendPara(state *buildState, line *layout.Line) {
	if state.prevPara != nil && state.prevLine != nil && b.continues(state.prevLine, line) {
		state.prevPara.TextRuns = append(state.prevPara.TextRuns, strings.TrimSpace(line.Text()))
		state.prevLine = line
		return
	}

	para := model.NewNode(model.RolePara)
	para.TextRuns = []string{strings.TrimSpace(line.Text())}
	state.innermost().Append(para)
	state.prevPara, state.prevLine = para, line
}

// continues reports whether next soft-wraps the paragraph ending at prev
func (b *Builder) continues(prev, next *layout.Line) bool {
	if hasTerminalPunctuation(prev.Text()) {
		return false
	}
	if prev.Page != next.Page {
		return false
	}
	gap := next.Baseline - prev.Baseline
	height := next.BBox.Height
	if height <= 0 {
		height = prev.BBox.Height
	}
	return gap > 0 && gap <= height*b.config.ContinuationGapFactor
}

// hasTerminalPunctuation reports whether text ends a sentence or clause
func hasTerminalPunctuation(text string) bool {
	trimmed := strings.TrimRight(strings.TrimSpace(text), `"')]`+"”’")
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?', ':', ';':
		return true
	}
	return strings.HasSuffix(trimmed, "…")
}

// appendMedia wraps a media region in a figure or table node. Downstream
// packaging requires every figure/table to carry a non-empty title and a
// content reference, so missing captions get a synthesized title.
func (b *Builder) appendMedia(state *buildState, region *model.MediaRegion) {
	role := model.RoleFigure
	if region.Type == model.MediaTypeTable {
		role = model.RoleTable
	}

	node := model.NewNode(role)
	node.Media = region

	title := strings.TrimSpace(region.Caption)
	if title == "" {
		if role == model.RoleTable {
			state.tableCount++
			title = fmt.Sprintf("Table %d", state.tableCount)
		} else {
			state.figureCount++
			title = fmt.Sprintf("Figure %d", state.figureCount)
		}
	} else if role == model.RoleTable {
		state.tableCount++
	} else {
		state.figureCount++
	}
	node.Title = title

	state.innermost().Append(node)
}

// tryList attempts to consume a run of list items starting at items[start].
// A paragraph-role line with a marker is confirmed as a list only when
// enough further lines match the same marker family at the same
// indentation with plausible vertical spacing; a lone numbered line is
// ordinary prose. Returns the number of items consumed (0 if not a list).
func (b *Builder) tryList(state *buildState, items []layout.Item, start int) int {
	first := items[start].Line
	marker, ok := detectMarker(first.Text())
	if !ok {
		return 0
	}

	matched := []*layout.Line{first}
	markers := []listMarker{marker}
	prev := first

	for j := start + 1; j < len(items); j++ {
		line := items[j].Line
		if line == nil {
			break
		}
		m, ok := detectMarker(line.Text())
		if !ok || !sameFamily(marker, m) {
			break
		}
		if absFloat64(line.BBox.Left-first.BBox.Left) > b.config.IndentTolerance {
			break
		}
		if !b.plausibleItemGap(prev, line) {
			break
		}
		matched = append(matched, line)
		markers = append(markers, m)
		prev = line
	}

	required := b.config.MinListItems
	if marker.strong {
		required = b.config.StrongBulletMinItems
	}
	if len(matched)-1 < required {
		return 0
	}

	list := model.NewNode(model.RoleList)
	list.Ordered = marker.ordered()
	for i, line := range matched {
		item := model.NewNode(model.RoleListItem)
		item.TextRuns = []string{stripMarker(line.Text(), markers[i])}
		list.Append(item)
	}
	state.innermost().Append(list)
	state.prevPara, state.prevLine = nil, nil

	return len(matched)
}

// plausibleItemGap reports whether two consecutive list items are close
// enough vertically to belong to the same list
func (b *Builder) plausibleItemGap(prev, next *layout.Line) bool {
	if prev.Page != next.Page {
		return false
	}
	height := next.BBox.Height
	if height <= 0 {
		height = prev.BBox.Height
	}
	gap := next.Baseline - prev.Baseline
	return gap >= 0 && gap <= height*b.config.MaxItemGapFactor
}

func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

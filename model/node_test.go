package model

import "testing"

func TestDocumentNode_Text(t *testing.T) {
	para := NewNode(RolePara)
	para.TextRuns = []string{"wrapped line one", "wrapped line two"}

	if got := para.Text(); got != "wrapped line one wrapped line two" {
		t.Errorf("leaf text = %q", got)
	}

	chapter := NewNode(RoleChapter)
	chapter.Append(para)
	other := NewNode(RolePara)
	other.TextRuns = []string{"second para"}
	chapter.Append(other)

	want := "wrapped line one wrapped line two\nsecond para"
	if got := chapter.Text(); got != want {
		t.Errorf("container text = %q, want %q", got, want)
	}
}

func TestDocumentNode_CountByRole(t *testing.T) {
	book := NewNode(RoleBook)
	chapter := NewNode(RoleChapter)
	book.Append(chapter)
	for i := 0; i < 3; i++ {
		chapter.Append(NewNode(RolePara))
	}
	section := NewNode(RoleSection)
	chapter.Append(section)
	section.Append(NewNode(RolePara))

	if got := book.CountByRole(RolePara); got != 4 {
		t.Errorf("CountByRole(para) = %d, want 4", got)
	}
	if got := book.CountByRole(RoleChapter); got != 1 {
		t.Errorf("CountByRole(chapter) = %d, want 1", got)
	}
}

func TestDocumentNode_WalkStopsDescent(t *testing.T) {
	book := NewNode(RoleBook)
	chapter := NewNode(RoleChapter)
	chapter.Append(NewNode(RolePara))
	book.Append(chapter)

	visited := 0
	book.Walk(func(n *DocumentNode) bool {
		visited++
		return n.Role != RoleChapter
	})

	if visited != 2 {
		t.Errorf("visited %d nodes, want 2 (descent into chapter stopped)", visited)
	}
}

func TestRole_IsContainer(t *testing.T) {
	if !RoleChapter.IsContainer() {
		t.Error("chapter must be a container")
	}
	if RolePara.IsContainer() {
		t.Error("para must not be a container")
	}
}

func TestMediaRegion_IsFigure(t *testing.T) {
	raster := MediaRegion{Type: MediaTypeRaster}
	vector := MediaRegion{Type: MediaTypeVector}
	table := MediaRegion{Type: MediaTypeTable}

	if !raster.IsFigure() || !vector.IsFigure() {
		t.Error("raster and vector regions are figures")
	}
	if table.IsFigure() {
		t.Error("table regions are not figures")
	}
}

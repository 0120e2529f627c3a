package model

import "strings"

// Role represents the structural role of a document tree node
type Role int

const (
	RoleUnknown Role = iota
	RoleBook
	RoleChapter
	RoleSection
	RoleSubsection
	RolePara
	RoleFigure
	RoleTable
	RoleList
	RoleListItem
)

// String returns a string representation of the role
func (r Role) String() string {
	switch r {
	case RoleBook:
		return "book"
	case RoleChapter:
		return "chapter"
	case RoleSection:
		return "section"
	case RoleSubsection:
		return "subsection"
	case RolePara:
		return "para"
	case RoleFigure:
		return "figure"
	case RoleTable:
		return "table"
	case RoleList:
		return "list"
	case RoleListItem:
		return "listitem"
	default:
		return "unknown"
	}
}

// IsContainer reports whether nodes of this role hold structural children
// (as opposed to leaf text content)
func (r Role) IsContainer() bool {
	switch r {
	case RoleBook, RoleChapter, RoleSection, RoleSubsection, RoleList:
		return true
	default:
		return false
	}
}

// DocumentNode is a node in the reconstructed document tree
// (book -> chapter -> section -> subsection -> {para, figure, table, list}).
// Children preserve document reading order.
type DocumentNode struct {
	// Role is the structural role of this node
	Role Role

	// Title is the node's title text. Chapters, sections and subsections
	// always carry a non-empty title; the builder synthesizes one when the
	// source document omits it. Figures and tables carry a caption-derived
	// title because downstream packaging requires one.
	Title string

	// TextRuns are the ordered text spans of a leaf para/listitem node.
	// Each run corresponds to one source line merged into the node.
	TextRuns []string

	// Children are the child nodes in reading order
	Children []*DocumentNode

	// Media is the media region attached to a figure/table node
	Media *MediaRegion

	// Ordered marks a list node as numbered rather than bulleted
	Ordered bool
}

// NewNode creates a node with the given role
func NewNode(role Role) *DocumentNode {
	return &DocumentNode{Role: role}
}

// Append adds a child node, preserving reading order
func (n *DocumentNode) Append(child *DocumentNode) {
	n.Children = append(n.Children, child)
}

// Text returns the node's assembled text content. For leaf nodes this joins
// the text runs with single spaces; for containers it recurses over children.
func (n *DocumentNode) Text() string {
	if n == nil {
		return ""
	}
	if len(n.TextRuns) > 0 {
		return strings.Join(n.TextRuns, " ")
	}

	var sb strings.Builder
	for i, child := range n.Children {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(child.Text())
	}
	return sb.String()
}

// ChildrenByRole returns the direct children with the given role
func (n *DocumentNode) ChildrenByRole(role Role) []*DocumentNode {
	if n == nil {
		return nil
	}
	var result []*DocumentNode
	for _, child := range n.Children {
		if child.Role == role {
			result = append(result, child)
		}
	}
	return result
}

// Walk visits the node and all descendants in reading order. The visitor
// returns false to stop descending into the current node's children.
func (n *DocumentNode) Walk(visit func(*DocumentNode) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

// CountByRole returns the number of descendant nodes (including this node)
// with the given role
func (n *DocumentNode) CountByRole(role Role) int {
	count := 0
	n.Walk(func(node *DocumentNode) bool {
		if node.Role == role {
			count++
		}
		return true
	})
	return count
}

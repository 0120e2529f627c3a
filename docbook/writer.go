// Package docbook serializes the reconstructed document tree into a
// DocBook-like XML format. It emits structure only; DTD validation, entity
// resolution and archive packaging are downstream concerns.
package docbook

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/pagestitch/pagestitch/model"
)

// elementNames maps tree roles to their DocBook element names
var elementNames = map[model.Role]string{
	model.RoleBook:       "book",
	model.RoleChapter:    "chapter",
	model.RoleSection:    "sect1",
	model.RoleSubsection: "sect2",
	model.RolePara:       "para",
	model.RoleFigure:     "figure",
	model.RoleTable:      "table",
	model.RoleListItem:   "listitem",
}

// Marshal renders a document tree as indented DocBook-like XML
func Marshal(book *model.DocumentNode) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, book); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders a document tree to the given writer
func Write(w io.Writer, book *model.DocumentNode) error {
	if book == nil || book.Role != model.RoleBook {
		return fmt.Errorf("docbook: root node must have the book role")
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("docbook: write header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := writeNode(enc, book); err != nil {
		return fmt.Errorf("docbook: encode tree: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("docbook: flush: %w", err)
	}
	return nil
}

// writeNode emits one node and its descendants
func writeNode(enc *xml.Encoder, node *model.DocumentNode) error {
	name, ok := elementNames[node.Role]
	if !ok {
		if node.Role == model.RoleList {
			return writeList(enc, node)
		}
		return fmt.Errorf("no element mapping for role %s", node.Role)
	}

	start := xml.StartElement{Name: xml.Name{Local: name}}
	if node.Media != nil && node.Media.ID != "" {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "id"},
			Value: node.Media.ID,
		})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	if node.Title != "" {
		if err := writeSimple(enc, "title", node.Title); err != nil {
			return err
		}
	}

	if node.Media != nil {
		if err := writeMedia(enc, node.Media); err != nil {
			return err
		}
	}

	switch node.Role {
	case model.RolePara:
		if err := enc.EncodeToken(xml.CharData(node.Text())); err != nil {
			return err
		}
	case model.RoleListItem:
		if err := writeSimple(enc, "para", node.Text()); err != nil {
			return err
		}
	}

	for _, child := range node.Children {
		if err := writeNode(enc, child); err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}

// writeList emits a list node as itemizedlist or orderedlist
func writeList(enc *xml.Encoder, node *model.DocumentNode) error {
	name := "itemizedlist"
	if node.Ordered {
		name = "orderedlist"
	}

	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := writeNode(enc, child); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// writeMedia emits the media reference child required by downstream
// packaging for every figure and table
func writeMedia(enc *xml.Encoder, media *model.MediaRegion) error {
	start := xml.StartElement{Name: xml.Name{Local: "mediaobject"}}
	if media.FileRef != "" {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "fileref"},
			Value: media.FileRef,
		})
	}
	start.Attr = append(start.Attr, xml.Attr{
		Name:  xml.Name{Local: "type"},
		Value: media.Type.String(),
	})
	if media.Composite {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "composite"},
			Value: "true",
		})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

// writeSimple emits <name>text</name>
func writeSimple(enc *xml.Encoder, name, text string) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData(text)); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

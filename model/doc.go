// Package model defines the shared data types for document structure
// reconstruction: page-local bounding-box geometry, detected media regions,
// and the hierarchical document tree produced by the tree builder.
//
// Geometry uses a top-left origin with Y increasing downward. A text
// fragment's baseline is Top + Height.
package model

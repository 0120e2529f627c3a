// Package layout infers logical page structure from the flat, positioned
// fragment stream produced by PDF text extraction.
//
// The pipeline runs in a fixed order per page:
//
//  1. ScriptDetector merges superscript/subscript fragments into their
//     parent runs (must run before line grouping, which would otherwise
//     misclassify them by baseline)
//  2. LineGrouper clusters fragments sharing a baseline into lines
//  3. InlineMerger collapses adjacent fragments within each line
//  4. ColumnClassifier assigns column IDs, with single-column override and
//     run smoothing to suppress column weaving
//  5. BlockAssembler numbers reading-order blocks at column transitions
//  6. MediaAssociator deduplicates raster/vector regions and splices media
//     into the reading sequence
//
// PageAnalyzer orchestrates all six stages. Pages are independent and may
// be analyzed concurrently; no stage mutates its inputs.
package layout

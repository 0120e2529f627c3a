// Package text defines the positioned text fragment record consumed by the
// layout engine, along with the font specification table that resolves
// upstream font identifiers to sizes and families.
package text

// Package schema holds the typed schema model shared by the decoder and the
// flattener: a recursive Schema node and the ordered Definitions map of named
// schemas found in a document.
package schema

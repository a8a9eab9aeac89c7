// Package book reads and writes the JSON exchanged between mdBook and a
// preprocessor, and walks the chapters of a book.
//
// mdBook writes a two element array, [context, book], to the preprocessor's
// stdin and expects the (possibly modified) book back on stdout followed by
// a newline. The book schema belongs to mdBook, so it is held as a generic
// JSON tree; fields this package does not know about survive a round trip.
//
// # Items
//
// A book lists its items under "sections" (mdBook 0.4) or "items"; chapters
// nest further items under "sub_items". Each item is one of:
//
//	{"Chapter": {"name": ..., "content": ..., "sub_items": [...]}}
//	"Separator"
//	{"PartTitle": "..."}
//
// [Book.Walk] visits items depth first and dispatches on [Kind]. Items of an
// unrecognized kind are reported as [KindUnknown] and searched for nested
// items, so chapters inside them are still reached.
package book

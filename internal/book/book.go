package book

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// bookItemKeys are the top-level book fields holding items, in the order
// they are walked.
var bookItemKeys = []string{"sections", "items"}

const subItemsKey = "sub_items"

// Kind is the declared kind of a book item.
type Kind int

const (
	// KindUnknown is an item this package does not recognize.
	KindUnknown Kind = iota
	// KindChapter is {"Chapter": {...}}.
	KindChapter
	// KindSeparator is the string "Separator".
	KindSeparator
	// KindPartTitle is {"PartTitle": "..."}.
	KindPartTitle
)

// String returns the mdBook name of the kind.
func (k Kind) String() string {
	switch k {
	case KindChapter:
		return "Chapter"
	case KindSeparator:
		return "Separator"
	case KindPartTitle:
		return "PartTitle"
	default:
		return "Unknown"
	}
}

// KindOf classifies a decoded item value.
func KindOf(item any) Kind {
	switch v := item.(type) {
	case string:
		if v == "Separator" {
			return KindSeparator
		}
	case map[string]any:
		if len(v) != 1 {
			return KindUnknown
		}
		if ch, ok := v["Chapter"].(map[string]any); ok && ch != nil {
			return KindChapter
		}
		if _, ok := v["PartTitle"].(string); ok {
			return KindPartTitle
		}
	}
	return KindUnknown
}

// Book is the generic JSON tree of an mdBook book.
type Book struct {
	root map[string]any
}

// New wraps an already decoded book tree.
func New(root map[string]any) *Book {
	return &Book{root: root}
}

// MarshalJSON implements json.Marshaler.
func (b *Book) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.root)
}

// Item is a single book item handed to a VisitFunc.
type Item struct {
	Kind Kind
	// Depth is 0 for top-level items and grows by one per sub_items level.
	Depth int
	// Chapter is set for KindChapter.
	Chapter *Chapter
	// Title is set for KindPartTitle.
	Title string
	// Raw is the decoded item value.
	Raw any
}

// VisitFunc is called for every item. Returning an error stops the walk.
type VisitFunc func(it Item) error

// Walk visits every item of the book depth first, parents before their
// sub-items.
func (b *Book) Walk(fn VisitFunc) error {
	for _, key := range bookItemKeys {
		if items, ok := b.root[key].([]any); ok {
			if err := walkItems(items, 0, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// ForEachChapter calls fn for every chapter, including nested ones.
func (b *Book) ForEachChapter(fn func(ch *Chapter) error) error {
	return b.Walk(func(it Item) error {
		if it.Kind != KindChapter {
			return nil
		}
		return fn(it.Chapter)
	})
}

func walkItems(items []any, depth int, fn VisitFunc) error {
	for _, raw := range items {
		if err := walkItem(raw, depth, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkItem(raw any, depth int, fn VisitFunc) error {
	kind := KindOf(raw)
	it := Item{Kind: kind, Depth: depth, Raw: raw}

	switch kind {
	case KindChapter:
		fields := raw.(map[string]any)["Chapter"].(map[string]any)
		it.Chapter = &Chapter{fields: fields}
		if err := fn(it); err != nil {
			return err
		}
		if sub, ok := fields[subItemsKey].([]any); ok {
			return walkItems(sub, depth+1, fn)
		}
		return nil
	case KindPartTitle:
		it.Title = raw.(map[string]any)["PartTitle"].(string)
		return fn(it)
	case KindSeparator:
		return fn(it)
	default:
		if err := fn(it); err != nil {
			return err
		}
		return walkNested(raw, depth, fn)
	}
}

// walkNested searches v for values that are recognized items.
func walkNested(v any, depth int, fn VisitFunc) error {
	switch v := v.(type) {
	case []any:
		for _, elem := range v {
			if err := walkNested(elem, depth, fn); err != nil {
				return err
			}
		}
	case map[string]any:
		if KindOf(v) != KindUnknown {
			return walkItem(v, depth, fn)
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if err := walkNested(v[k], depth, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Chapter is a mutable view of a chapter's fields.
type Chapter struct {
	fields map[string]any
}

// Name returns the chapter title.
func (c *Chapter) Name() string {
	s, _ := c.fields["name"].(string)
	return s
}

// Content returns the chapter's Markdown and whether it was present.
func (c *Chapter) Content() (string, bool) {
	s, ok := c.fields["content"].(string)
	return s, ok
}

// SetContent replaces the chapter's Markdown.
func (c *Chapter) SetContent(content string) {
	c.fields["content"] = content
}

// Path returns the chapter's path relative to the source directory, or ""
// for draft chapters.
func (c *Chapter) Path() string {
	s, _ := c.fields["path"].(string)
	return s
}

// SourcePath returns the path of the file the chapter was read from.
func (c *Chapter) SourcePath() string {
	s, _ := c.fields["source_path"].(string)
	return s
}

// IsDraft reports whether the chapter has no backing file.
func (c *Chapter) IsDraft() bool {
	return c.fields["path"] == nil
}

// Number returns the section number formatted the way mdBook prints it,
// e.g. "1.2.", or "" for unnumbered chapters.
func (c *Chapter) Number() string {
	parts, ok := c.fields["number"].([]any)
	if !ok || len(parts) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range parts {
		switch n := p.(type) {
		case json.Number:
			sb.WriteString(n.String())
		case float64:
			sb.WriteString(strconv.FormatFloat(n, 'f', -1, 64))
		default:
			continue
		}
		sb.WriteByte('.')
	}
	return sb.String()
}

// Label identifies the chapter in log output: its path, or its name for
// drafts.
func (c *Chapter) Label() string {
	if c.IsDraft() || c.Path() == "" {
		return c.Name()
	}
	return c.Path()
}

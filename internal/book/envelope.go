package book

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/tidwall/gjson"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
)

// Envelope is the decoded [context, book] pair.
type Envelope struct {
	Context *Context
	Book    *Book
}

// Context describes the mdBook invocation.
type Context struct {
	// Root is the book's root directory.
	Root string
	// Renderer is the renderer the book is being built for.
	Renderer string
	// MdbookVersion is the version of the mdBook binary.
	MdbookVersion string

	raw string
}

// Config returns the value at path within the book configuration, using
// gjson path syntax (e.g. "book.title").
func (c *Context) Config(path string) gjson.Result {
	return gjson.Get(c.raw, "config."+path)
}

// PreprocessorConfig returns the [preprocessor.<name>] table from book.toml,
// or nil when it is absent.
func (c *Context) PreprocessorConfig(name string) map[string]any {
	res := gjson.Get(c.raw, "config.preprocessor."+gjson.Escape(name))
	if !res.IsObject() {
		return nil
	}
	m, _ := res.Value().(map[string]any)
	return m
}

// Decode reads a [context, book] envelope from r.
//
// The shape is checked before decoding; any mismatch is reported as an
// error marked with errors.ErrMalformedEnvelope. Read failures are returned
// wrapped but unmarked.
func Decode(r io.Reader) (*Envelope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading preprocessor input")
	}

	if !gjson.ValidBytes(data) {
		return nil, malformed("input is not valid JSON")
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, malformed("expected [context, book] array from mdbook")
	}

	elems := parsed.Array()
	if len(elems) != 2 {
		return nil, malformed("expected [context, book] array from mdbook, got %d elements", len(elems))
	}

	ctxRes, bookRes := elems[0], elems[1]
	if !ctxRes.IsObject() {
		return nil, malformed("context is not an object")
	}
	if !bookRes.IsObject() {
		return nil, malformed("book is not an object")
	}

	b, err := decodeBook(bookRes.Raw)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		Context: &Context{
			Root:          ctxRes.Get("root").String(),
			Renderer:      ctxRes.Get("renderer").String(),
			MdbookVersion: ctxRes.Get("mdbook_version").String(),
			raw:           ctxRes.Raw,
		},
		Book: b,
	}, nil
}

func decodeBook(raw string) (*Book, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decoding book"), errors.ErrMalformedEnvelope)
	}

	found := false
	for _, key := range bookItemKeys {
		v, ok := root[key]
		if !ok {
			continue
		}
		if _, isArray := v.([]any); !isArray {
			return nil, malformed("book field %q is not an array", key)
		}
		found = true
	}
	if !found {
		return nil, malformed("book has no %q or %q array", bookItemKeys[0], bookItemKeys[1])
	}

	return New(root), nil
}

// Encode writes b as JSON followed by a single newline.
func Encode(w io.Writer, b *Book) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return errors.Wrap(enc.Encode(b.root), "encoding book")
}

func malformed(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), errors.ErrMalformedEnvelope)
}

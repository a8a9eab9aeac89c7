package preprocessor

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/book"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/config"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/errors"
	"github.com/thoreinstein/mdbook-frontmatter-strip/internal/logging"
	"github.com/thoreinstein/mdbook-frontmatter-strip/pkg/frontmatter"
)

const input = `[
  {"root": "/book", "config": {}, "renderer": "html", "mdbook_version": "0.4.40"},
  {"sections": [
    {"Chapter": {"name": "One", "content": "---\ntitle: One\n---\n\n\n# One\n\nText.\n", "number": [1], "sub_items": [
      {"Chapter": {"name": "One A", "content": "---\n---\nNested body\n", "number": [1, 1], "sub_items": [], "path": "one/a.md"}}
    ], "path": "one.md"}},
    "Separator",
    {"PartTitle": "Reference"},
    {"Chapter": {"name": "Two", "content": "# Two\n\n---\n\nrule above\n", "number": [2], "sub_items": [], "path": "two.md"}},
    {"Chapter": {"name": "Three", "content": "---\nopen only\n", "number": [3], "sub_items": [], "path": "three.md"}}
  ], "__non_exhaustive": null}
]`

func chapterContents(t *testing.T, out []byte) map[string]string {
	t.Helper()

	env, err := book.Decode(bytes.NewReader(append([]byte(`[{}, `), append(out, ']')...)))
	require.NoError(t, err)

	contents := map[string]string{}
	require.NoError(t, env.Book.ForEachChapter(func(ch *book.Chapter) error {
		c, _ := ch.Content()
		contents[ch.Name()] = c
		return nil
	}))
	return contents
}

func TestHandle(t *testing.T) {
	p := New(Options{})
	ctx := logging.NewContext(t.Context(), logging.ForTest(t))

	var out bytes.Buffer
	require.NoError(t, p.Handle(ctx, strings.NewReader(input), &out))

	assert.True(t, strings.HasSuffix(out.String(), "}\n"))

	got := chapterContents(t, out.Bytes())
	assert.Equal(t, map[string]string{
		"One":   "# One\n\nText.",
		"One A": "Nested body",
		"Two":   "# Two\n\n---\n\nrule above",
		"Three": "---\nopen only",
	}, got)
}

func TestHandle_PreservesNonChapterItems(t *testing.T) {
	p := New(Options{})

	var out bytes.Buffer
	require.NoError(t, p.Handle(t.Context(), strings.NewReader(input), &out))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))

	sections, ok := decoded["sections"].([]any)
	require.True(t, ok)
	require.Len(t, sections, 5)
	assert.Equal(t, "Separator", sections[1])
	assert.Equal(t, map[string]any{"PartTitle": "Reference"}, sections[2])
	assert.Contains(t, decoded, "__non_exhaustive")
}

func TestHandle_MalformedInputWritesNothing(t *testing.T) {
	p := New(Options{})

	tests := []string{
		"",
		"[]",
		`[{}, {"sections": []}, {}]`,
		`{"context": {}, "book": {}}`,
		`[{}, "book"]`,
	}

	for _, in := range tests {
		var out bytes.Buffer
		err := p.Handle(t.Context(), strings.NewReader(in), &out)
		require.Error(t, err, "input %q", in)
		assert.True(t, errors.Is(err, errors.ErrMalformedEnvelope), "input %q: %v", in, err)
		assert.Zero(t, out.Len(), "nothing may be written on failure")
	}
}

func TestRun_Stats(t *testing.T) {
	env, err := book.Decode(strings.NewReader(input))
	require.NoError(t, err)

	stats, err := New(Options{LogFrontmatter: true}).Run(logging.NewContext(t.Context(), logging.ForTest(t)), env)
	require.NoError(t, err)

	assert.Equal(t, &Stats{Chapters: 4, Stripped: 2, Unterminated: 1}, stats)
}

func TestRun_Idempotent(t *testing.T) {
	p := New(Options{})

	var first, second bytes.Buffer
	require.NoError(t, p.Handle(t.Context(), strings.NewReader(input), &first))

	again := `[{}, ` + strings.TrimSpace(first.String()) + `]`
	require.NoError(t, p.Handle(t.Context(), strings.NewReader(again), &second))

	assert.JSONEq(t, first.String(), second.String())
}

func TestRun_Cancelled(t *testing.T) {
	env, err := book.Decode(strings.NewReader(input))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = New(Options{}).Run(ctx, env)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSupportsRenderer(t *testing.T) {
	tests := []struct {
		name      string
		renderers []string
		renderer  string
		want      bool
	}{
		{"default html", nil, "html", true},
		{"default rejects markdown", nil, "markdown", false},
		{"default rejects epub", nil, "epub", false},
		{"exact match only", nil, "HTML", false},
		{"empty name", nil, "", false},
		{"configured list", []string{"html", "markdown"}, "markdown", true},
		{"configured list excludes html", []string{"epub"}, "html", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(Options{Renderers: tt.renderers})
			assert.Equal(t, tt.want, p.SupportsRenderer(tt.renderer))
		})
	}
}

func TestFromConfig(t *testing.T) {
	p := FromConfig(nil)
	assert.Equal(t, []string{"html"}, p.Renderers())
	assert.Equal(t, Name, p.Name())

	cfg := config.Default()
	cfg.Renderers = []string{"markdown"}
	cfg.LogFrontmatter = true
	p = FromConfig(cfg)
	assert.True(t, p.SupportsRenderer("markdown"))
	assert.False(t, p.SupportsRenderer("html"))

	// The preprocessor keeps its own copy.
	cfg.Renderers[0] = "html"
	assert.False(t, p.SupportsRenderer("html"))
}

func TestCheckRenderer(t *testing.T) {
	p := New(Options{})
	assert.NoError(t, p.CheckRenderer("html"))

	err := p.CheckRenderer("markdown")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedRenderer))
	assert.Contains(t, err.Error(), `"markdown"`)
}

func TestRun_BookTableOverridesLogFrontmatter(t *testing.T) {
	withTable := func(enabled string) string {
		return strings.Replace(input, `"config": {}`,
			`"config": {"book": {"title": "Guide"}, "preprocessor": {"frontmatter-strip": {"log-frontmatter": `+enabled+`}}}`, 1)
	}

	tests := []struct {
		name       string
		in         string
		configured bool
		wantLogged bool
	}{
		{"configured off, no table", input, false, false},
		{"configured on, no table", input, true, true},
		{"table turns it on", withTable("true"), false, true},
		{"table turns it off", withTable("false"), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := book.Decode(strings.NewReader(tt.in))
			require.NoError(t, err)

			var logs bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
			ctx := logging.NewContext(t.Context(), logger)

			_, err = New(Options{LogFrontmatter: tt.configured}).Run(ctx, env)
			require.NoError(t, err)

			if tt.wantLogged {
				assert.Contains(t, logs.String(), `"msg":"stripped frontmatter"`)
				assert.Contains(t, logs.String(), `"frontmatter":"---\ntitle: One\n---"`)
			} else {
				assert.NotContains(t, logs.String(), "stripped frontmatter")
			}
		})
	}
}

func TestRun_MatchesStrip(t *testing.T) {
	env, err := book.Decode(strings.NewReader(input))
	require.NoError(t, err)

	original := map[string]string{}
	require.NoError(t, env.Book.ForEachChapter(func(ch *book.Chapter) error {
		c, _ := ch.Content()
		original[ch.Name()] = c
		return nil
	}))

	_, err = New(Options{}).Run(t.Context(), env)
	require.NoError(t, err)

	require.NoError(t, env.Book.ForEachChapter(func(ch *book.Chapter) error {
		c, _ := ch.Content()
		assert.Equal(t, frontmatter.Strip(original[ch.Name()]), c, ch.Name())
		return nil
	}))
}

package cms

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, lang, body string) {
	t.Helper()
	p := filepath.Join(dir, KindLegal, lang)
	require.NoError(t, os.MkdirAll(p, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(p, "mentions-legales.md"), []byte(body), 0o644))
}

func TestPageReadsFrontMatterAndSanitizes(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "fr", `---
title: Mentions
updated_at: 2026-03-01
seo:
  description: Informations légales
---
## Éditeur

Texte <script>alert(1)</script> ici.
`)
	store := NewStore(dir)
	page, err := store.Page(KindLegal, "mentions-legales", "fr-FR")
	require.NoError(t, err)
	require.Equal(t, "Mentions", page.Title)
	require.Equal(t, "fr", page.Lang)
	require.Equal(t, "Informations légales", page.Description)
	require.Equal(t, 2026, page.UpdatedAt.Year())
	require.Contains(t, string(page.HTML), `<h2 id=`)
	require.NotContains(t, string(page.HTML), "<script>")
}

func TestPageFallsBackAcrossLanguagesThenBuiltin(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "en", "Only English here.\n")
	store := NewStore(dir)

	page, err := store.Page(KindLegal, "mentions-legales", "fr")
	require.NoError(t, err)
	require.Equal(t, "en", page.Lang)
	require.Equal(t, "Only English here.", page.Description)

	page, err = NewStore(t.TempDir()).Page(KindLegal, "mentions-legales", "fr")
	require.NoError(t, err)
	require.Equal(t, "Mentions légales", page.Title)

	_, err = store.Page(KindLegal, "../etc/passwd", "fr")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.Page(KindLegal, "unknown", "fr")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPageRejectsBrokenFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "fr", "---\ntitle: [unclosed\n---\nbody\n")
	_, err := NewStore(dir).Page(KindLegal, "mentions-legales", "fr")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestExpandSubstitutesPlaceholders(t *testing.T) {
	page, err := NewStore(t.TempDir()).Page(KindLegal, "mentions-legales", "en")
	require.NoError(t, err)
	out, err := Expand(page, map[string]string{
		"brand":    "Iso At The Top",
		"email":    "contact@isoatthetop.com",
		"phone":    "+33 6 51 18 58 62",
		"locality": "Isola 2000",
		"year":     "2026",
	})
	require.NoError(t, err)
	html := string(out.HTML)
	require.Contains(t, html, `href="mailto:contact@isoatthetop.com"`)
	require.Contains(t, html, "© 2026 Iso At The Top")
	require.NotContains(t, html, "{brand}")
	require.True(t, strings.HasPrefix(out.Description, "The Iso At The Top website"))
	require.Contains(t, page.Body, "{brand}")
}

func TestExcerptTruncates(t *testing.T) {
	long := "<h2>x</h2><p>" + strings.Repeat("word ", 80) + "</p>"
	got := Excerpt(long)
	require.True(t, strings.HasSuffix(got, "…"))
	require.LessOrEqual(t, len([]rune(got)), maxDescriptionRunes)
	require.Equal(t, "a b", Excerpt("<p>\n a \n b </p><p>c</p>"))
}

func TestFSStoreHTMLFormat(t *testing.T) {
	files := fstest.MapFS{
		"legal/en/mentions-legales.md": {Data: []byte("\ufeff---\r\nformat: html\r\nsummary: Short\r\n---\r\n<p onclick=\"x()\">Hello</p>")},
	}
	page, err := NewFSStore(files).Page(KindLegal, "/mentions-legales/", "en-GB")
	require.NoError(t, err)
	require.Equal(t, "html", page.Format)
	require.Equal(t, "<p>Hello</p>", string(page.HTML))
	require.Equal(t, "Short", page.Description)
	require.Empty(t, page.Title)
}

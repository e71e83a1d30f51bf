// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/materials-miner/pkg/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"micro sign", "a 1.5 µm film", "a 1.5 μm film"},
		{"angstrom sign", "100 Å", "100 Å"},
		{"subscript digits", "Cu₂OSeO₃", "Cu2OSeO3"},
		{"plain ascii", "MnSi", "MnSi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestID(t *testing.T) {
	assert.Equal(t, "smith-2019-mnsi", ID("papers/text/smith-2019-mnsi.txt"))
	assert.Equal(t, "doc", ID("doc.html"))
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("a.txt"))
	assert.True(t, IsSupported("a.md"))
	assert.True(t, IsSupported("a.HTML"))
	assert.True(t, IsSupported("a.xml"))
	assert.False(t, IsSupported("a.pdf"))
	assert.False(t, IsSupported("README"))
}

func TestLoad_TextWithMetadata(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "mnsi.txt")
	metaPath := filepath.Join(dir, "mnsi.yaml")
	writeFile(t, textPath, "The Curie temperature of MnSi is 29.5 K in a 1.5 µm crystal.")
	require.NoError(t, WriteMetadata(metaPath, types.Provenance{
		Title:     "Helimagnetism in MnSi",
		DOI:       "10.1000/mnsi",
		Authors:   []string{"A. Author", "B. Author"},
		Journal:   "Phys. Rev. B",
		Volume:    "80",
		Page:      "1-10",
		CoverDate: "2019-07-01",
		Source:    "elsevier",
	}))

	doc, err := Load(textPath, metaPath)
	require.NoError(t, err)

	assert.Equal(t, "mnsi", doc.ID)
	assert.Equal(t, "mnsi", doc.Provenance.DocumentID)
	assert.Equal(t, "Helimagnetism in MnSi", doc.Provenance.Title)
	assert.Equal(t, []string{"A. Author", "B. Author"}, doc.Provenance.Authors)
	assert.Equal(t, "elsevier", doc.Provenance.Source)
	assert.NotEmpty(t, doc.Provenance.AccessDate)
	assert.Contains(t, doc.Text, "1.5 μm", "text is NFKC normalized")
}

func TestLoad_MissingMetadata(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "fege.md")
	writeFile(t, textPath, "# FeGe\n\nFeGe orders at 278 K.")

	doc, err := Load(textPath, filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "fege", doc.Provenance.DocumentID)
	assert.Empty(t, doc.Provenance.Title)
	assert.Contains(t, doc.Text, "FeGe orders at 278 K.")
}

func TestLoad_BadMetadata(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "a.txt")
	metaPath := filepath.Join(dir, "a.yaml")
	writeFile(t, textPath, "MnSi")
	writeFile(t, metaPath, "title: [unclosed")

	_, err := Load(textPath, metaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing metadata")
}

func TestLoad_HTML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cu2oseo3.html")
	writeFile(t, path, `<html><head><title>Skyrmions</title><script>var x = 1;</script></head>
<body><p>The Curie temperature of Cu<sub>2</sub>OSeO<sub>3</sub> is 58 K.</p>
<p>It hosts   skyrmions.</p></body></html>`)

	doc, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "The Curie temperature of Cu2OSeO3 is 58 K.\nIt hosts skyrmions.", doc.Text)
}

func TestLoad_XML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fege.xml")
	writeFile(t, path, `<?xml version="1.0"?>
<doc><ce:para>FeGe orders at 278 K.</ce:para><ce:para>MnSi orders at 29.5 K.</ce:para>
<ce:bibliography><ce:para>Ref 1 FeSi 300 K.</ce:para></ce:bibliography></doc>`)

	doc, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "FeGe orders at 278 K.\nMnSi orders at 29.5 K.", doc.Text)
}

func TestLoad_Binary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.txt")
	require.NoError(t, os.WriteFile(path, []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff, 0xfe}, 0o644))

	_, err := Load(path, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputType)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtractText_SkipsScript(t *testing.T) {
	text, err := ExtractText(strings.NewReader("<p>MnSi</p><script>FeGe</script>"))
	require.NoError(t, err)
	assert.Equal(t, "MnSi", text)
}

func TestNew(t *testing.T) {
	doc := New("id-1", "Cu₂O", types.Provenance{Title: "t"})
	assert.Equal(t, "Cu2O", doc.Text)
	assert.Equal(t, "id-1", doc.Provenance.DocumentID)
	assert.Equal(t, "t", doc.Provenance.Title)
}

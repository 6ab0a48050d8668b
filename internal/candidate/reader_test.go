package candidate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	input := `{"element_id":"e1","text":"A 1","metadata":{"page_number":3,"text_as_html":"<table><tr><td>A</td></tr></table>","expected_cols":2}}
{"element_id":"e2","text":"B 2","metadata":{"page_numbers":[4,5],"text_as_html":null}}
`
	elements, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, elements, 2)

	assert.Equal(t, "e1", elements[0].ElementID)
	assert.Equal(t, 3, elements[0].PageTrimmed)
	assert.Equal(t, 2, elements[0].ExpectedCols)
	assert.Contains(t, elements[0].TextAsHTML, "<table>")

	// page_numbers list: first entry wins; null html stays empty.
	assert.Equal(t, 4, elements[1].PageTrimmed)
	assert.Empty(t, elements[1].TextAsHTML)
	assert.Zero(t, elements[1].ExpectedCols)
}

func TestRead_SkipsMalformedLines(t *testing.T) {
	input := `{"element_id":"e1","text":"ok","metadata":{}}
garbage line
{"text":"missing id","metadata":{}}

{"element_id":"e2","text":"ok too","metadata":{}}
`
	elements, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, elements, 2)
	assert.Equal(t, "e1", elements[0].ElementID)
	assert.Equal(t, "e2", elements[1].ElementID)
}

func TestParseElement_MissingID(t *testing.T) {
	_, err := ParseElement([]byte(`{"text":"no id"}`))
	assert.Error(t, err)
}

func TestLoadPageMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"1":[3],"2":[4,5]}`), 0o644))

	pages, err := LoadPageMap(path)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, pages.Original(1))
	assert.Equal(t, []int{4, 5}, pages.Original(2))
	// Unmapped pages are the identity.
	assert.Equal(t, []int{9}, pages.Original(9))
	assert.Equal(t, 4, pages.FirstOriginal(2))
}

func TestLoadPageMap_EmptyPathIsNilMap(t *testing.T) {
	pages, err := LoadPageMap("")
	require.NoError(t, err)
	assert.Nil(t, pages)
	// Nil map is the identity mapping.
	assert.Equal(t, []int{2}, pages.Original(2))
}

func TestLoadPageMap_BadKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not-a-number":[1]}`), 0o644))

	_, err := LoadPageMap(path)
	assert.Error(t, err)
}

package model

// CandidateElement is one machine-produced chunk under evaluation. Pages are
// numbered in the working (possibly trimmed/re-paginated) document; PageMap
// translates them back to original document pages.
type CandidateElement struct {
	ElementID    string `json:"element_id"`
	PageTrimmed  int    `json:"page_trimmed,omitempty"`
	Text         string `json:"text,omitempty"`
	TextAsHTML   string `json:"text_as_html,omitempty"`
	ExpectedCols int    `json:"expected_cols,omitempty"`
}

// PageMap translates a page number in the trimmed working document to the
// original document page numbers it was sliced from. A chunk may straddle a
// slice boundary, so one trimmed page can map to several originals.
type PageMap map[int][]int

// Original returns the original pages for a trimmed page. An absent mapping
// is the identity: the working document was never re-paginated.
func (m PageMap) Original(page int) []int {
	if m == nil {
		return []int{page}
	}
	if orig, ok := m[page]; ok && len(orig) > 0 {
		return orig
	}
	return []int{page}
}

// FirstOriginal returns the first original page for a trimmed page.
func (m PageMap) FirstOriginal(page int) int {
	return m.Original(page)[0]
}

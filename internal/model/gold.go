package model

// GoldRecordType tags a line in the gold dataset.
type GoldRecordType string

const (
	GoldRecordDoc   GoldRecordType = "doc"
	GoldRecordTable GoldRecordType = "table"
)

// GoldDocument identifies one source document in the gold set.
type GoldDocument struct {
	DocID  string `json:"doc_id"`
	Source string `json:"source"`
}

// GoldTable is a hand-curated reference table used as ground truth.
// Immutable after load: evaluation never mutates header, rows, or pages.
type GoldTable struct {
	DocID   string     `json:"doc_id"`
	TableID string     `json:"table_id"`
	Title   string     `json:"title,omitempty"`
	Header  []string   `json:"header"`
	Rows    [][]string `json:"rows"`
	Pages   []int      `json:"pages"`
}

// PageSet returns the declared source pages as a set. An empty set means
// the table does not restrict candidate pages.
func (t *GoldTable) PageSet() map[int]struct{} {
	set := make(map[int]struct{}, len(t.Pages))
	for _, p := range t.Pages {
		set[p] = struct{}{}
	}
	return set
}

// ExpectedCols returns the column count implied by the gold header, or the
// width of the widest row when the header is empty.
func (t *GoldTable) ExpectedCols() int {
	if len(t.Header) > 0 {
		return len(t.Header)
	}
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// GoldRecord is one line of the gold dataset: either a document record or a
// table record, discriminated by Type. Unknown or malformed lines are skipped
// at the parse boundary rather than propagated.
type GoldRecord struct {
	Type    GoldRecordType `json:"type"`
	DocID   string         `json:"doc_id"`
	Source  string         `json:"source,omitempty"`
	TableID string         `json:"table_id,omitempty"`
	Title   string         `json:"title,omitempty"`
	Header  []string       `json:"header,omitempty"`
	Rows    [][]string     `json:"rows,omitempty"`
	Pages   []int          `json:"pages,omitempty"`
}

// Document extracts the document view of a "doc" record.
func (r *GoldRecord) Document() GoldDocument {
	return GoldDocument{DocID: r.DocID, Source: r.Source}
}

// Table extracts the table view of a "table" record.
func (r *GoldRecord) Table() GoldTable {
	return GoldTable{
		DocID:   r.DocID,
		TableID: r.TableID,
		Title:   r.Title,
		Header:  r.Header,
		Rows:    r.Rows,
		Pages:   r.Pages,
	}
}

// Package gold loads the hand-labeled gold dataset and resolves which gold
// document a given input corresponds to.
package gold

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/tableval/internal/model"
)

// Dataset holds the parsed gold records in file order. Immutable after load.
type Dataset struct {
	docs   []model.GoldDocument
	tables []model.GoldTable
}

// Load parses a line-delimited gold dataset: one JSON object per line,
// tagged "doc" or "table". Malformed or unknown lines are skipped
// individually; they never abort the batch.
func Load(r io.Reader) (*Dataset, error) {
	ds := &Dataset{}
	skipped := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec model.GoldRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			skipped++
			continue
		}

		switch rec.Type {
		case model.GoldRecordDoc:
			if rec.DocID == "" {
				skipped++
				continue
			}
			ds.docs = append(ds.docs, rec.Document())
		case model.GoldRecordTable:
			if rec.DocID == "" || rec.TableID == "" {
				skipped++
				continue
			}
			ds.tables = append(ds.tables, rec.Table())
		default:
			skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "gold: read dataset")
	}

	if skipped > 0 {
		zap.L().Warn("gold: skipped malformed records",
			zap.Int("skipped", skipped),
			zap.Int("docs", len(ds.docs)),
			zap.Int("tables", len(ds.tables)),
		)
	}
	return ds, nil
}

// LoadFile loads a gold dataset from disk.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "gold: open %s", path)
	}
	defer f.Close()
	return Load(f)
}

// Docs returns the document records in file order.
func (d *Dataset) Docs() []model.GoldDocument { return d.docs }

// Tables returns all table records in file order.
func (d *Dataset) Tables() []model.GoldTable { return d.tables }

// Resolve picks the gold document for an input. Resolution order: explicit
// docID, exact source match, then the first document whose source is a
// suffix of the input source. Returns the resolved doc id and its tables in
// file order. No match is not an error: callers get ("", nil) and must treat
// it as "no gold available for this input".
func (d *Dataset) Resolve(source, docID string) (string, []model.GoldTable) {
	resolved := ""

	if docID != "" {
		for _, doc := range d.docs {
			if doc.DocID == docID {
				resolved = doc.DocID
				break
			}
		}
	}
	if resolved == "" && source != "" {
		for _, doc := range d.docs {
			if doc.Source == source {
				resolved = doc.DocID
				break
			}
		}
	}
	if resolved == "" && source != "" {
		for _, doc := range d.docs {
			if doc.Source != "" && strings.HasSuffix(source, doc.Source) {
				resolved = doc.DocID
				break
			}
		}
	}
	if resolved == "" {
		return "", nil
	}

	var tables []model.GoldTable
	for _, t := range d.tables {
		if t.DocID == resolved {
			tables = append(tables, t)
		}
	}
	return resolved, tables
}

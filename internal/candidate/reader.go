// Package candidate reads the chunk-producing pipeline's output: a stream
// of element records carrying HTML table fragments and page placement.
package candidate

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/tableval/internal/model"
)

// wireElement mirrors the upstream element record shape. Page placement may
// arrive as a single page_number or a page_numbers list.
type wireElement struct {
	ElementID string `json:"element_id"`
	Text      string `json:"text"`
	Metadata  struct {
		PageNumber   *int    `json:"page_number"`
		PageNumbers  []int   `json:"page_numbers"`
		TextAsHTML   *string `json:"text_as_html"`
		ExpectedCols *int    `json:"expected_cols"`
	} `json:"metadata"`
}

// ParseElement decodes a single element record into the engine's candidate
// shape.
func ParseElement(data []byte) (model.CandidateElement, error) {
	var wire wireElement
	if err := json.Unmarshal(data, &wire); err != nil {
		return model.CandidateElement{}, eris.Wrap(err, "candidate: parse element")
	}
	if wire.ElementID == "" {
		return model.CandidateElement{}, eris.New("candidate: missing element_id")
	}

	el := model.CandidateElement{
		ElementID: wire.ElementID,
		Text:      wire.Text,
	}
	if wire.Metadata.PageNumber != nil {
		el.PageTrimmed = *wire.Metadata.PageNumber
	} else if len(wire.Metadata.PageNumbers) > 0 {
		el.PageTrimmed = wire.Metadata.PageNumbers[0]
	}
	if wire.Metadata.TextAsHTML != nil {
		el.TextAsHTML = *wire.Metadata.TextAsHTML
	}
	if wire.Metadata.ExpectedCols != nil {
		el.ExpectedCols = *wire.Metadata.ExpectedCols
	}
	return el, nil
}

// Read parses line-delimited candidate element records. Malformed lines are
// skipped individually per the engine's error policy.
func Read(r io.Reader) ([]model.CandidateElement, error) {
	var elements []model.CandidateElement
	skipped := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		el, err := ParseElement(line)
		if err != nil {
			skipped++
			continue
		}
		elements = append(elements, el)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "candidate: read elements")
	}

	if skipped > 0 {
		zap.L().Warn("candidate: skipped malformed records",
			zap.Int("skipped", skipped),
			zap.Int("elements", len(elements)),
		)
	}
	return elements, nil
}

// ReadFile reads candidate elements from disk.
func ReadFile(path string) ([]model.CandidateElement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "candidate: open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// LoadPageMap reads a page-index mapping from a JSON object of trimmed page
// number to original page numbers, e.g. {"1": [3], "2": [4, 5]}.
func LoadPageMap(path string) (model.PageMap, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "candidate: open page map %s", path)
	}

	var raw map[string][]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrap(err, "candidate: parse page map")
	}

	pages := make(model.PageMap, len(raw))
	for k, v := range raw {
		page, err := strconv.Atoi(k)
		if err != nil {
			return nil, eris.Wrapf(err, "candidate: page map key %q", k)
		}
		pages[page] = v
	}
	return pages, nil
}

package match

import (
	stdhtml "html"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Grid is the structural view of an HTML table fragment: an optional header
// row plus ordered body rows.
type Grid struct {
	Header []string
	Rows   [][]string
}

// Empty reports whether the grid carries no content at all.
func (g Grid) Empty() bool {
	return len(g.Header) == 0 && len(g.Rows) == 0
}

// GridParser converts an HTML table fragment into a Grid. Both
// implementations satisfy the same output contract and are interchangeable;
// a fragment with no table-like structure yields the zero Grid.
type GridParser interface {
	Name() string
	Parse(fragment string) Grid
}

// NewGridParser probes the structured parser against a canonical fragment at
// startup and returns it when it behaves, falling back to the regex parser
// otherwise. Selection happens once, not per failure.
func NewGridParser() GridParser {
	structured := StructuredParser{}
	if probeGridParser(structured) {
		return structured
	}
	return FallbackParser{}
}

const probeFragment = `<table><thead><tr><th>a</th><th>b</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>`

func probeGridParser(p GridParser) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	g := p.Parse(probeFragment)
	return len(g.Header) == 2 && len(g.Rows) == 1 && len(g.Rows[0]) == 2
}

// StructuredParser extracts the grid by walking the parsed DOM of the
// fragment. Header cells come from a thead section, or from a leading
// all-th row when no thead exists.
type StructuredParser struct{}

func (StructuredParser) Name() string { return "structured" }

func (StructuredParser) Parse(fragment string) Grid {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return Grid{}
	}

	table := findElement(doc, "table")
	if table == nil {
		return Grid{}
	}

	var grid Grid

	// Header from an explicit thead section, if present.
	if thead := findElement(table, "thead"); thead != nil {
		if tr := findElement(thead, "tr"); tr != nil {
			grid.Header = rowCells(tr)
		}
	}

	// Body rows: tbody rows when a tbody exists, otherwise every row that is
	// not inside the thead.
	var rowParent *html.Node = table
	if tbody := findElement(table, "tbody"); tbody != nil {
		rowParent = tbody
	}
	rows := collectRows(rowParent)

	for i, tr := range rows {
		if insideElement(tr, "thead") {
			continue
		}
		cells, allTH := rowCellsTagged(tr)
		if len(cells) == 0 {
			continue
		}
		// A leading all-th row doubles as the header when thead is absent.
		if i == 0 && allTH && len(grid.Header) == 0 {
			grid.Header = cells
			continue
		}
		if sameCells(cells, grid.Header) {
			continue // duplicate header row
		}
		grid.Rows = append(grid.Rows, cells)
	}

	return grid
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func collectRows(n *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			rows = append(rows, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return rows
}

func insideElement(n *html.Node, tag string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == tag {
			return true
		}
	}
	return false
}

func rowCells(tr *html.Node) []string {
	cells, _ := rowCellsTagged(tr)
	return cells
}

// rowCellsTagged returns the cell texts of a row and whether every cell is
// a th cell.
func rowCellsTagged(tr *html.Node) ([]string, bool) {
	var cells []string
	allTH := true
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "td":
			allTH = false
			cells = append(cells, cellText(c))
		case "th":
			cells = append(cells, cellText(c))
		}
	}
	if len(cells) == 0 {
		allTH = false
	}
	return cells, allTH
}

// cellText concatenates a cell's descendant text with single-space
// separators and trims the result.
func cellText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func sameCells(a, b []string) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FallbackParser extracts the grid with tag-boundary regexes. Less robust to
// malformed markup than the DOM walk, but produces structurally equivalent
// output for well-formed input. Unclosed cells and rows are cut at the next
// tag boundary rather than dropped.
type FallbackParser struct{}

func (FallbackParser) Name() string { return "fallback" }

var (
	tableLikeRe = regexp.MustCompile(`(?i)<\s*(table|tr|td|th)\b`)
	rowOpenRe   = regexp.MustCompile(`(?i)<tr[^>]*>`)
	cellOpenRe  = regexp.MustCompile(`(?i)<t([dh])[^>]*>`)
	cellEndRe   = regexp.MustCompile(`(?i)</t[dh]\s*>|</tr\s*>|</table\s*>`)
	anyTagRe    = regexp.MustCompile(`(?s)<[^>]*>`)
)

func (FallbackParser) Parse(fragment string) Grid {
	if !tableLikeRe.MatchString(fragment) {
		return Grid{}
	}

	var grid Grid

	rowStarts := rowOpenRe.FindAllStringIndex(fragment, -1)
	for i, loc := range rowStarts {
		start := loc[1]
		end := len(fragment)
		if i+1 < len(rowStarts) {
			end = rowStarts[i+1][0]
		}
		cells, allTH := fallbackCells(fragment[start:end])
		if len(cells) == 0 {
			continue
		}
		if allTH && len(grid.Header) == 0 && len(grid.Rows) == 0 {
			grid.Header = cells
			continue
		}
		if sameCells(cells, grid.Header) {
			continue // duplicate header row
		}
		grid.Rows = append(grid.Rows, cells)
	}

	return grid
}

func fallbackCells(segment string) ([]string, bool) {
	opens := cellOpenRe.FindAllStringSubmatchIndex(segment, -1)
	if len(opens) == 0 {
		return nil, false
	}

	var cells []string
	allTH := true
	for i, open := range opens {
		tag := strings.ToLower(segment[open[2]:open[3]])
		if tag != "h" {
			allTH = false
		}

		start := open[1]
		end := len(segment)
		if i+1 < len(opens) {
			end = opens[i+1][0]
		}
		content := segment[start:end]
		if loc := cellEndRe.FindStringIndex(content); loc != nil {
			content = content[:loc[0]]
		}

		content = anyTagRe.ReplaceAllString(content, " ")
		content = stdhtml.UnescapeString(content)
		cells = append(cells, strings.Join(strings.Fields(content), " "))
	}
	return cells, allTH
}

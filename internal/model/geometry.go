package model

// BoundingBox is an axis-aligned box in pixel space: origin top-left,
// y increasing downward, matching the extraction provider's convention.
type BoundingBox struct {
	PageTrimmed  int     `json:"page_trimmed,omitempty"`
	LayoutWidth  float64 `json:"layout_width,omitempty"`
	LayoutHeight float64 `json:"layout_height,omitempty"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	W            float64 `json:"w"`
	H            float64 `json:"h"`
}

// RowSpan is a half-open row range [Start, End) into a table's row sequence,
// with Total recording the row count of the table it indexes into.
type RowSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Total int `json:"total"`
}

// RowSegment pairs a sliced bounding box with the row span it covers. It is
// attached to a candidate chunk as auxiliary visualization metadata.
type RowSegment struct {
	Box  BoundingBox `json:"box"`
	Span RowSpan     `json:"span"`
}

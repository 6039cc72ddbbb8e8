package model

// CellKind describes what a dashboard cell holds.
type CellKind string

const (
	CellBlank       CellKind = "blank"
	CellTitle       CellKind = "title"
	CellHeader      CellKind = "header"
	CellStudent     CellKind = "student"
	CellPlaceholder CellKind = "placeholder"
)

// GridCell is a single dashboard cell plus its decoration.
type GridCell struct {
	Value     string            `json:"value"`
	Kind      CellKind          `json:"kind"`
	Highlight HighlightDecision `json:"highlight"`
}

// TimeBlock locates one time slot inside a day grid.
type TimeBlock struct {
	Title    string `json:"title"`
	SortTime int    `json:"sort_time"`
	StartCol int    `json:"start_col"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// DayGrid is the rectangular dashboard region for one schedule day.
// Every row in Cells has exactly Width cells.
type DayGrid struct {
	Day    Day          `json:"day"`
	Width  int          `json:"width"`
	Blocks []TimeBlock  `json:"blocks"`
	Cells  [][]GridCell `json:"cells"`
}

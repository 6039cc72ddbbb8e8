package model

// Category is the highlight colour assigned to a student row.
type Category string

const (
	CategoryNone   Category = "none"
	CategoryRed    Category = "red"
	CategoryOrange Category = "orange"
	CategoryYellow Category = "yellow"
	CategoryPurple Category = "purple"
	CategoryGreen  Category = "green"
)

// HighlightDecision annotates one record. Skip marks rows whose comment asks
// to be ignored; they never receive a colour.
type HighlightDecision struct {
	Category Category `json:"category"`
	Bold     bool     `json:"bold,omitempty"`
	Skip     bool     `json:"skip,omitempty"`
}

// NoHighlight is the zero decision.
var NoHighlight = HighlightDecision{Category: CategoryNone}

// ClassifiedRecord pairs a record with its highlight.
type ClassifiedRecord struct {
	StudentRecord
	Highlight HighlightDecision `json:"highlight"`
}

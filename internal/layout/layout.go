// Package layout arranges classified students into per-day dashboard grids:
// one block per time slot, blocks side by side, padded to a rectangle.
package layout

import (
	"sort"

	"github.com/ninjapark/rollsync/internal/classify"
	"github.com/ninjapark/rollsync/internal/model"
	"github.com/ninjapark/rollsync/internal/normalize"
)

// DefaultCapacity is the seat count per group in the padded variant.
const DefaultCapacity = 7

// PlaceholderName fills an unfilled seat in the padded variant.
const PlaceholderName = "Open"

// BlockColumns are the column headers of every time slot block.
var BlockColumns = []string{"Student", "Age", "Att", "Skill", "Group", "Comment"}

// paddedGroups are padded to capacity, in this order.
var paddedGroups = []model.GroupTag{model.Group1, model.Group2, model.Group3}

// Options select the layout variant.
type Options struct {
	Variant  string
	Capacity int
}

// DefaultOptions is the separated variant.
func DefaultOptions() Options {
	return Options{Variant: model.LayoutSeparated, Capacity: DefaultCapacity}
}

type row []model.GridCell

// Build lays out classified records. It does not modify records; days without
// students are omitted. The result depends only on the record set, not on the
// order records are passed in.
func Build(records []model.ClassifiedRecord, opts Options) []model.DayGrid {
	if opts.Capacity < 1 {
		opts.Capacity = DefaultCapacity
	}

	sorted := append([]model.ClassifiedRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return classify.Less(sorted[i].StudentRecord, sorted[j].StudentRecord)
	})

	var grids []model.DayGrid
	for _, day := range model.Days {
		var slots [][]model.ClassifiedRecord
		for _, r := range sorted {
			if r.ScheduleDay != day {
				continue
			}
			n := len(slots)
			if n > 0 && slots[n-1][0].ScheduleSortTime == r.ScheduleSortTime {
				slots[n-1] = append(slots[n-1], r)
				continue
			}
			slots = append(slots, []model.ClassifiedRecord{r})
		}
		if len(slots) == 0 {
			continue
		}
		grids = append(grids, buildDay(day, slots, opts))
	}
	return grids
}

func buildDay(day model.Day, slots [][]model.ClassifiedRecord, opts Options) model.DayGrid {
	blockWidth := len(BlockColumns)
	blocks := make([][]row, len(slots))
	height := 0
	for i, slot := range slots {
		blocks[i] = buildBlock(day, slot, opts)
		if len(blocks[i]) > height {
			height = len(blocks[i])
		}
	}

	width := len(blocks)*blockWidth + len(blocks) - 1
	g := model.DayGrid{Day: day, Width: width, Cells: make([][]model.GridCell, height)}
	for y := range g.Cells {
		g.Cells[y] = blankRow(width)
	}

	for i, b := range blocks {
		start := i * (blockWidth + 1)
		for y, r := range b {
			copy(g.Cells[y][start:start+blockWidth], r)
		}
		g.Blocks = append(g.Blocks, model.TimeBlock{
			Title:    b[0][0].Value,
			SortTime: slots[i][0].ScheduleSortTime,
			StartCol: start,
			Width:    blockWidth,
			Height:   len(b),
		})
	}
	return g
}

func buildBlock(day model.Day, slot []model.ClassifiedRecord, opts Options) []row {
	rows := []row{titleRow(day, slot[0]), headerRow()}

	if opts.Variant == model.LayoutPadded {
		for _, g := range paddedGroups {
			filled := 0
			for _, r := range slot {
				if normalize.Group(string(r.Keyword)) == g {
					rows = append(rows, studentRow(r))
					filled++
				}
			}
			for ; filled < opts.Capacity; filled++ {
				rows = append(rows, placeholderRow(g))
			}
		}
		for _, r := range slot {
			if normalize.GroupRank(r.Keyword) == 99 {
				rows = append(rows, studentRow(r))
			}
		}
		return rows
	}

	for i, r := range slot {
		if i > 0 && normalize.Group(string(r.Keyword)) != normalize.Group(string(slot[i-1].Keyword)) {
			rows = append(rows, blankRow(len(BlockColumns)))
		}
		rows = append(rows, studentRow(r))
	}
	return rows
}

// titleRow labels a slot "<day> <time>", or "<day> ?" when the time could
// not be parsed.
func titleRow(day model.Day, first model.ClassifiedRecord) row {
	title := string(day) + " ?"
	if first.ScheduleSortTime != model.SortTimeUnknown && first.ScheduleTime != "" {
		title = string(day) + " " + first.ScheduleTime
	}
	r := filledRow(model.CellTitle)
	r[0].Value = title
	return r
}

func headerRow() row {
	r := filledRow(model.CellHeader)
	for i, c := range BlockColumns {
		r[i].Value = c
	}
	return r
}

func studentRow(rec model.ClassifiedRecord) row {
	values := []string{
		rec.Name,
		rec.Age,
		rec.Attendance,
		string(rec.SkillLevel),
		string(rec.Keyword),
		rec.Comment,
	}
	r := make(row, len(values))
	for i, v := range values {
		r[i] = model.GridCell{Value: v, Kind: model.CellStudent, Highlight: rec.Highlight}
	}
	return r
}

func placeholderRow(g model.GroupTag) row {
	r := filledRow(model.CellPlaceholder)
	r[0].Value = PlaceholderName
	r[4].Value = string(g)
	return r
}

func filledRow(kind model.CellKind) row {
	r := make(row, len(BlockColumns))
	for i := range r {
		r[i] = model.GridCell{Kind: kind, Highlight: model.NoHighlight}
	}
	return r
}

func blankRow(width int) row {
	r := make(row, width)
	for i := range r {
		r[i] = model.GridCell{Kind: model.CellBlank, Highlight: model.NoHighlight}
	}
	return r
}

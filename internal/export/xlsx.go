package export

import (
	"fmt"

	"github.com/ninjapark/rollsync/internal/model"
	"github.com/xuri/excelize/v2"
)

// StudentsSheet holds the flat table in every workbook.
const StudentsSheet = "All Students"

// ContentTypeXLSX is the media type of a rendered workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CategoryColors are the fill colours used for highlight categories.
var CategoryColors = map[model.Category]string{
	model.CategoryRed:    "F4CCCC",
	model.CategoryOrange: "FCE5CD",
	model.CategoryYellow: "FFF2CC",
	model.CategoryPurple: "D9D2E9",
	model.CategoryGreen:  "D9EAD3",
}

var blockColumnWidths = []float64{24, 6, 6, 7, 10, 28}

type styleKey struct {
	kind     model.CellKind
	category model.Category
	bold     bool
}

type workbook struct {
	f      *excelize.File
	styles map[styleKey]int
}

// RenderWorkbook builds the dashboard workbook: the flat student table on the
// first sheet and one sheet per day grid. The caller owns the returned file.
func RenderWorkbook(records []model.StudentRecord, grids []model.DayGrid) (*excelize.File, error) {
	wb := &workbook{f: excelize.NewFile(), styles: make(map[styleKey]int)}
	if err := wb.f.SetSheetName("Sheet1", StudentsSheet); err != nil {
		wb.f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := wb.writeStudents(records); err != nil {
		wb.f.Close()
		return nil, err
	}

	firstDay := -1
	for _, g := range grids {
		idx, err := wb.f.NewSheet(string(g.Day))
		if err != nil {
			wb.f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", g.Day, err)
		}
		if firstDay < 0 {
			firstDay = idx
		}
		if err := wb.writeGrid(g); err != nil {
			wb.f.Close()
			return nil, fmt.Errorf("render %s: %w", g.Day, err)
		}
	}
	if firstDay >= 0 {
		wb.f.SetActiveSheet(firstDay)
	}
	return wb.f, nil
}

func (wb *workbook) writeStudents(records []model.StudentRecord) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, CSVHeader)
	for _, r := range records {
		rows = append(rows, FlatRow(r))
	}

	for y, values := range rows {
		for x, v := range values {
			cell, err := excelize.CoordinatesToCellName(x+1, y+1)
			if err != nil {
				return err
			}
			if err := wb.f.SetCellValue(StudentsSheet, cell, v); err != nil {
				return fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	headerStyle, err := wb.style(styleKey{kind: model.CellHeader})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(CSVHeader), 1)
	if err != nil {
		return err
	}
	if err := wb.f.SetCellStyle(StudentsSheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := wb.f.SetColWidth(StudentsSheet, "A", "A", 24); err != nil {
		return err
	}
	if err := wb.f.SetColWidth(StudentsSheet, "F", "G", 36); err != nil {
		return err
	}
	return wb.f.SetPanes(StudentsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (wb *workbook) writeGrid(g model.DayGrid) error {
	sheet := string(g.Day)
	for y, row := range g.Cells {
		for x, c := range row {
			if c.Kind == model.CellBlank {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(x+1, y+1)
			if err != nil {
				return err
			}
			if c.Value != "" {
				if err := wb.f.SetCellValue(sheet, cell, c.Value); err != nil {
					return fmt.Errorf("write %s: %w", cell, err)
				}
			}
			styleID, err := wb.style(keyFor(c))
			if err != nil {
				return err
			}
			if err := wb.f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return fmt.Errorf("style %s: %w", cell, err)
			}
		}
	}

	for _, b := range g.Blocks {
		from, err := excelize.CoordinatesToCellName(b.StartCol+1, 1)
		if err != nil {
			return err
		}
		to, err := excelize.CoordinatesToCellName(b.StartCol+b.Width, 1)
		if err != nil {
			return err
		}
		if err := wb.f.MergeCell(sheet, from, to); err != nil {
			return fmt.Errorf("merge title %s: %w", from, err)
		}
		for i, w := range blockColumnWidths {
			if i >= b.Width {
				break
			}
			col, err := excelize.ColumnNumberToName(b.StartCol + i + 1)
			if err != nil {
				return err
			}
			if err := wb.f.SetColWidth(sheet, col, col, w); err != nil {
				return err
			}
		}
	}
	return nil
}

// keyFor drops decorations that must never show on non-student cells.
func keyFor(c model.GridCell) styleKey {
	k := styleKey{kind: c.Kind}
	if c.Kind == model.CellStudent && !c.Highlight.Skip {
		k.category = c.Highlight.Category
		k.bold = c.Highlight.Bold
	}
	return k
}

func (wb *workbook) style(k styleKey) (int, error) {
	if id, ok := wb.styles[k]; ok {
		return id, nil
	}

	s := &excelize.Style{Font: &excelize.Font{Bold: k.bold}}
	switch k.kind {
	case model.CellTitle:
		s.Font = &excelize.Font{Bold: true, Size: 12}
		s.Alignment = &excelize.Alignment{Horizontal: "center"}
	case model.CellHeader:
		s.Font = &excelize.Font{Bold: true}
		s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"EFEFEF"}}
		s.Border = thinBorder()
	case model.CellPlaceholder:
		s.Font = &excelize.Font{Italic: true, Color: "999999"}
		s.Border = thinBorder()
	case model.CellStudent:
		s.Border = thinBorder()
		if color, ok := CategoryColors[k.category]; ok {
			s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
		}
	}

	id, err := wb.f.NewStyle(s)
	if err != nil {
		return 0, fmt.Errorf("create style: %w", err)
	}
	wb.styles[k] = id
	return id, nil
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "B7B7B7", Style: 1},
		{Type: "top", Color: "B7B7B7", Style: 1},
		{Type: "right", Color: "B7B7B7", Style: 1},
		{Type: "bottom", Color: "B7B7B7", Style: 1},
	}
}

package pretty

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/gofold/pkg/runner"
)

// Table formatting constants.
const (
	defaultTermWidth  = 100
	minFileWidth      = 20
	minMarkerWidth    = 16
	minContextWidth   = 20
	fileWidthShare    = 3  // FILE may take up to a third of the terminal
	markerWidthShare  = 4  // MARKER may take up to a quarter
	fixedColumnsWidth = 24 // START, END, LINES plus borders and padding
)

// TableHeaders are the column titles of the range table.
var TableHeaders = []string{"FILE", "LANG", "START", "END", "LINES", "MARKER"}

// TableFormatter formats folding ranges as a bordered table.
type TableFormatter struct {
	styles      *Styles
	termWidth   int
	showContext bool
}

// NewTableFormatter creates a new table formatter. A non-positive termWidth
// falls back to 100 columns.
func NewTableFormatter(styles *Styles, termWidth int, showContext bool) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:      styles,
		termWidth:   termWidth,
		showContext: showContext,
	}
}

// FormatTable formats every range in result as one table. Returns "" when
// there is nothing to show.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	var rows []RangeRow
	for i := range result.Files {
		rows = append(rows, RowsFor(&result.Files[i])...)
	}
	return t.FormatRows(rows)
}

// FormatRows renders rows as a table.
func (t *TableFormatter) FormatRows(rows []RangeRow) string {
	if len(rows) == 0 {
		return ""
	}

	fileWidth := max(minFileWidth, t.termWidth/fileWidthShare)
	markerWidth := max(minMarkerWidth, t.termWidth/markerWidthShare)

	headers := TableHeaders
	if t.showContext {
		headers = append(append([]string{}, TableHeaders...), "CONTEXT")
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cell := []string{
			truncateFilePath(row.File, fileWidth),
			row.Language,
			strconv.Itoa(row.Start),
			strconv.Itoa(row.End),
			strconv.Itoa(row.Lines),
			truncate(row.Marker, markerWidth),
		}
		if t.showContext {
			contextWidth := max(minContextWidth, t.termWidth-fileWidth-markerWidth-len(row.Language)-fixedColumnsWidth)
			cell = append(cell, truncate(row.Context, contextWidth))
		}
		cells = append(cells, cell)
	}

	styles := t.styles
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.TableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeader
			}
			switch col {
			case 0:
				return styles.TableCell.Inherit(styles.FilePath)
			case 5:
				return styles.TableCell.Inherit(styles.Marker)
			case 6:
				return styles.TableCell.Inherit(styles.SourceLine)
			default:
				return styles.TableCell
			}
		}).
		Headers(headers...).
		Rows(cells...)

	return tbl.String() + "\n"
}

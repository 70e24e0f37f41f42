package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/vk/provgraph/internal/model"
	"github.com/vk/provgraph/internal/provenance"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	placedStyle = cellStyle.Foreground(lipgloss.Color("10"))
)

const placedMark = "yes"

// WriteFileTable renders files as a table in input order. The "Graph"
// column marks the files placed in the graph.
func WriteFileTable(w io.Writer, files []*model.File, placed map[string]*model.File) error {
	rows := make([][]string, 0, len(files))
	placedRows := make(map[int]bool)
	for _, f := range files {
		if f == nil {
			continue
		}
		mark := ""
		if _, ok := placed[f.ID]; ok {
			mark = placedMark
			placedRows[len(rows)] = true
		}
		rows = append(rows, []string{
			accession(f),
			f.OutputType,
			f.Assembly,
			f.GenomeAnnotation,
			replicates(f.BiologicalReplicates),
			f.Status,
			mark,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Accession", "Output type", "Assembly", "Annotation", "Replicates", "Status", "Graph").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case placedRows[row]:
				return placedStyle
			default:
				return cellStyle
			}
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func replicates(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func accession(f *model.File) string {
	if f.Accession != "" {
		return f.Accession
	}
	return provenance.ShortID(f.ID)
}

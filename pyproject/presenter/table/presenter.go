package table

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"github.com/anchore/check-pyproject/pyproject"
)

// Presenter renders one row per validated manifest followed by a summary line.
type Presenter struct {
	results   []pyproject.Result
	withColor bool
}

func NewPresenter(results []pyproject.Result, withColor bool) *Presenter {
	return &Presenter{
		results:   results,
		withColor: withColor,
	}
}

func (p *Presenter) Present(output io.Writer) error {
	if len(p.results) == 0 {
		_, err := io.WriteString(output, "No files checked\n")
		return err
	}

	table := tablewriter.NewWriter(output)
	table.SetHeader([]string{"Path", "Problems", "Status"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(true)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, r := range p.results {
		row := []string{r.Path, strconv.Itoa(r.Problems), r.Status()}
		if p.withColor {
			table.Rich(row, []tablewriter.Colors{{}, {}, statusColor(r.Status())})
		} else {
			table.Append(row)
		}
	}

	table.Render()

	_, err := fmt.Fprintln(output, p.summary())
	return err
}

func (p *Presenter) summary() string {
	total := pyproject.TotalProblems(p.results)
	files := "file"
	if len(p.results) != 1 {
		files = "files"
	}
	line := fmt.Sprintf("%s problems detected in %s %s", humanize.Comma(int64(total)), humanize.Comma(int64(len(p.results))), files)

	if !p.withColor {
		return line
	}
	if total > 0 {
		return color.Red.Sprint(line)
	}
	return color.Green.Sprint(line)
}

func statusColor(status string) tablewriter.Colors {
	switch status {
	case "ok":
		return tablewriter.Colors{tablewriter.Normal, tablewriter.FgGreenColor}
	case "problems":
		return tablewriter.Colors{tablewriter.Normal, tablewriter.FgYellowColor}
	default:
		return tablewriter.Colors{tablewriter.Bold, tablewriter.FgRedColor}
	}
}

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Characters used to draw runs of black squares
const (
	blockLeft  = "▐"
	blockMid   = "█"
	blockRight = "▌"
)

var (
	titleColor   = color.New(color.FgHiWhite, color.Bold)
	circledColor = color.New(color.FgYellow, color.Underline)
	grayColor    = color.New(color.FgHiBlack)
)

// Displays a decoded puzzle: header, metadata, grid and clues
func DisplayPuzzle(w io.Writer, puzzle *Puzzle) {
	p := &puzzle.GamePageData

	fmt.Fprintln(w, strings.Repeat("=", 80))
	titleColor.Fprintln(w, PuzzleTitle(p.Meta))
	fmt.Fprintln(w, strings.Repeat("=", 80))

	meta := tablewriter.NewWriter(w)
	meta.SetBorder(false)
	meta.SetAutoWrapText(false)
	meta.SetColumnSeparator(":")
	meta.Append([]string{"Author", PuzzleAuthor(p.Meta)})
	if p.Meta.PublicationDate != "" {
		meta.Append([]string{"Published", p.Meta.PublicationDate})
	}
	meta.Append([]string{"Size", fmt.Sprintf("%d x %d", p.Dimensions.ColumnCount, p.Dimensions.RowCount)})
	if c := PuzzleCopyright(p.Meta); c != "" {
		meta.Append([]string{"Copyright", c})
	}
	meta.Render()
	fmt.Fprintln(w)

	for _, line := range GridLines(p) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	if len(p.Clues) > 0 {
		clues := tablewriter.NewWriter(w)
		clues.SetHeader([]string{"No", "Direction", "Clue"})
		clues.SetAutoWrapText(false)
		for _, clue := range p.Clues {
			clues.Append([]string{clue.Label, clue.Direction, string(clue.Text)})
		}
		clues.Render()
	}

	fmt.Fprintf(w, "Clues: %d\n", len(p.Clues))
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintln(w)
}

// Builds the display title, e.g. "NY Times, Monday, May 1, 2023 MINI"
func PuzzleTitle(meta Meta) string {
	title := strings.ToUpper(meta.Title)

	if meta.PublicationDate != "" {
		if d, err := time.Parse(time.DateOnly, meta.PublicationDate); err == nil {
			s := "NY Times, " + d.Format("Monday, January 2, 2006")
			if title != "" {
				s += " " + title
			}
			return s
		}
	}
	if title != "" {
		return title
	}
	return "New York Times Crossword"
}

// Constructors, followed by the editor when there is one
func PuzzleAuthor(meta Meta) string {
	author := strings.Join(meta.Constructors, ", ")
	if meta.Editor != "" {
		author += " / " + meta.Editor
	}
	return author
}

func PuzzleCopyright(meta Meta) string {
	if meta.Copyright == "" {
		return ""
	}
	return "© " + meta.Copyright + ", The New York Times"
}

// Renders the answer grid one line per row. Rebus and alternative
// answers are listed after the row they appear in.
func GridLines(p *GamePageData) []string {
	width, height := p.Dimensions.ColumnCount, p.Dimensions.RowCount

	lines := make([]string, 0, height)
	for y := 0; y < height; y++ {
		var row, extra strings.Builder
		row.WriteString(" ")
		shown := ""

		for x := 0; x < width; x++ {
			cell, ok := p.CellAt(x, y)
			switch {
			case ok && cell.Type == cellTypeInvisible:
				row.WriteString("  ")
			case !ok || cell.IsBlock():
				row.WriteString("# ")
			case cell.MoreAnswers != nil:
				row.WriteString("- ")
				answers := cell.MoreAnswers.Valid
				if cell.Answer != "" {
					answers = append([]string{cell.Answer}, answers...)
				}
				if s := " (" + strings.Join(answers, ", ") + ")"; s != shown {
					shown = s
					extra.WriteString(s)
				}
			case len([]rune(cell.Answer)) > 1:
				extra.WriteString(" " + cell.Answer)
				row.WriteString(colorCell(cell, strings.ToLower(string([]rune(cell.Answer)[0]))) + " ")
			default:
				row.WriteString(colorCell(cell, cell.Answer) + " ")
			}
		}

		lines = append(lines, " "+drawBlocks(row.String(), width)+extra.String())
	}
	return lines
}

// Turns runs of "# " into solid bars
func drawBlocks(row string, width int) string {
	for n := width; n > 0; n-- {
		run := " " + strings.Repeat("# ", n)
		bar := blockLeft + strings.Repeat(blockMid, 2*n-1) + blockRight
		row = strings.ReplaceAll(row, run, bar)
	}
	return row
}

func colorCell(cell Cell, s string) string {
	switch cell.Type {
	case cellTypeCircled:
		return circledColor.Sprint(s)
	case cellTypeGray:
		return grayColor.Sprint(s)
	default:
		return s
	}
}

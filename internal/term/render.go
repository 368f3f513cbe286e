// Package term is the terminal front end: it draws a game view with termenv
// and drives a History from line commands.
package term

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jaminalder/tictactoe-timetravel/internal/app"
	"github.com/jaminalder/tictactoe-timetravel/internal/domain"
)

const (
	colorX   = "12" // bright blue
	colorO   = "9"  // bright red
	colorWin = "10" // bright green
)

// Render writes the status line, the board and the move list.
// Empty cells show the key that plays them.
func Render(out *termenv.Output, v app.View) {
	fmt.Fprintln(out, out.String(v.Status).Bold())
	fmt.Fprintln(out)

	for r := 0; r < domain.Size; r++ {
		cells := make([]string, domain.Size)
		for c := 0; c < domain.Size; c++ {
			i := r*domain.Size + c
			cells[c] = " " + cell(out, v, i) + " "
		}
		fmt.Fprintln(out, strings.Join(cells, "|"))
		if r < domain.Size-1 {
			fmt.Fprintln(out, "---+---+---")
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "[s] %s\n", v.SortLabel())
	for _, m := range v.Moves {
		if m.Current {
			fmt.Fprintf(out, "> %s\n", out.String(m.Label()).Bold())
			continue
		}
		fmt.Fprintf(out, "  [j %d] %s\n", m.Move, m.Label())
	}
}

func cell(out *termenv.Output, v app.View, i int) string {
	c := v.Board[i]
	if c == domain.Empty {
		return out.String(strconv.Itoa(i + 1)).Faint().String()
	}
	s := out.String(c.String())
	switch {
	case v.Winning(i):
		s = s.Bold().Reverse().Foreground(out.Color(colorWin))
	case c == domain.X:
		s = s.Foreground(out.Color(colorX))
	default:
		s = s.Foreground(out.Color(colorO))
	}
	return s.String()
}

package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/jaminalder/tictactoe-timetravel/internal/app"
)

var errUnknownCommand = errors.New("unknown command")

const help = `commands:
  1-9     place a mark (cells numbered left to right, top to bottom)
  j N     go to move N
  s       toggle move list order
  n       new game
  h       this help
  q       quit`

// Session plays one game at a time on a terminal.
type Session struct {
	history *app.History
	out     *termenv.Output
	log     *zap.Logger
}

// NewSession starts with a fresh game. A nil logger disables logging.
func NewSession(out *termenv.Output, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		history: app.NewHistory(),
		out:     out,
		log:     logger.With(zap.String("component", "term")),
	}
}

// History exposes the game being played.
func (s *Session) History() *app.History { return s.history }

// Run reads commands from in until q, end of input or ctx is done.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	Render(s.out, s.history.View())
	fmt.Fprint(s.out, "> ")

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		quit, err := s.Exec(sc.Text())
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		fmt.Fprint(s.out, "> ")
	}
	return sc.Err()
}

// Exec applies one command line. It reports quit for q and returns the
// error of a rejected command.
func (s *Session) Exec(line string) (quit bool, err error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		Render(s.out, s.history.View())
		return false, nil
	}

	switch cmd := fields[0]; cmd {
	case "q", "quit":
		return true, nil
	case "h", "help":
		fmt.Fprintln(s.out, help)
		return false, nil
	case "s", "sort":
		s.history.ToggleSortOrder()
	case "n", "new":
		s.history = app.NewHistory()
	case "j", "jump":
		if len(fields) != 2 {
			return false, fmt.Errorf("%w: usage: j N", errUnknownCommand)
		}
		move, perr := strconv.Atoi(fields[1])
		if perr != nil {
			return false, fmt.Errorf("bad move number %q: %w", fields[1], perr)
		}
		err = s.history.JumpTo(move)
	default:
		n, perr := strconv.Atoi(cmd)
		if perr != nil || len(fields) != 1 {
			return false, fmt.Errorf("%w: %q (h for help)", errUnknownCommand, line)
		}
		err = s.history.PlayAt(n - 1)
	}

	if err != nil {
		s.log.Debug("rejected", zap.String("command", line), zap.Error(err))
		return false, err
	}
	s.log.Debug("applied", zap.String("command", line), zap.Int("current", s.history.CurrentMove()))
	Render(s.out, s.history.View())
	return false, nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tokenroute/lib/config"
	"github.com/bureau-foundation/tokenroute/lib/journal"
	"github.com/bureau-foundation/tokenroute/lib/routemetrics"
	"github.com/bureau-foundation/tokenroute/lib/router"
	"github.com/bureau-foundation/tokenroute/lib/rpg"
)

// ErrAborted is returned by Session.Run when a line fails to route and
// the error strategy is abort.
var ErrAborted = errors.New("aborted on unroutable line")

// Session reads command lines and dispatches each through the game's
// routing table.
type Session struct {
	Table *router.Router[*rpg.State]
	State *rpg.State

	// Journal and Metrics are optional.
	Journal *journal.Writer
	Metrics *routemetrics.Recorder

	OnError config.ErrorStrategy

	// Prompt is written before each line when non-empty.
	Prompt string

	Logger *slog.Logger
}

// Run processes lines from in until EOF, writing one result line per
// command to out. Blank lines and lines starting with # are skipped.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	renderer := lipgloss.NewRenderer(out)
	quoted := renderer.NewStyle().Foreground(lipgloss.Color("245"))
	failed := renderer.NewStyle().Foreground(lipgloss.Color("196"))

	scanner := bufio.NewScanner(in)
	for {
		if s.Prompt != "" {
			fmt.Fprint(out, s.Prompt)
		}
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens := strings.Fields(line)

		result := routemetrics.Dispatch(s.Metrics, s.Table, s.State, tokens)
		if s.Journal != nil {
			if _, err := s.Journal.Record(tokens, result); err != nil {
				return err
			}
		}

		value, err := result.Unwrap()
		if err != nil {
			fmt.Fprintf(out, "%s %s\n", quoted.Render(fmt.Sprintf("%q", line)), failed.Render("failed: "+err.Error()))
			s.Logger.Debug("line not routed", "line", line, "error", err)
			if s.OnError == config.Abort {
				return fmt.Errorf("%w: %q: %w", ErrAborted, line, err)
			}
			continue
		}
		fmt.Fprintf(out, "%s %s\n", quoted.Render(fmt.Sprintf("%q", line)), rpg.Describe(value))
		s.Logger.Debug("line dispatched", "line", line, "leaf", value.Leaf(), "outcome", value.Type())
	}
	return scanner.Err()
}

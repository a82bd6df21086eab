// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package routeinfo

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tokenroute/lib/router"
)

// Theme is the color palette for route listings. Colors are ANSI
// 256-color codes.
type Theme struct {
	Header      lipgloss.Color
	Keyword     lipgloss.Color
	Placeholder lipgloss.Color
	Outcome     lipgloss.Color
	Faint       lipgloss.Color
}

// DefaultTheme suits a dark terminal background.
var DefaultTheme = Theme{
	Header:      lipgloss.Color("255"),
	Keyword:     lipgloss.Color("252"),
	Placeholder: lipgloss.Color("75"),  // blue
	Outcome:     lipgloss.Color("114"), // green
	Faint:       lipgloss.Color("245"),
}

// Render writes one line per route: pattern, outcome types and leaf
// name in aligned columns, followed by the fingerprint. When styled
// is set the listing is colored with DefaultTheme; the renderer still
// drops colors if w is not a terminal.
func Render(w io.Writer, routes []router.Route, styled bool) error {
	renderer := lipgloss.NewRenderer(w)
	style := func(color lipgloss.Color) lipgloss.Style {
		s := renderer.NewStyle()
		if styled {
			s = s.Foreground(color)
		}
		return s
	}
	header := style(DefaultTheme.Header)
	if styled {
		header = header.Bold(true)
	}
	keyword := style(DefaultTheme.Keyword)
	placeholder := style(DefaultTheme.Placeholder)
	outcome := style(DefaultTheme.Outcome)
	faint := style(DefaultTheme.Faint)

	patternWidth, outcomeWidth := len("ROUTE"), len("RESULT")
	for _, route := range routes {
		patternWidth = max(patternWidth, len(route.String()))
		outcomeWidth = max(outcomeWidth, len(route.Outcomes.String()))
	}

	var builder strings.Builder
	builder.WriteString(header.Render(pad("ROUTE", patternWidth)))
	builder.WriteString("  ")
	builder.WriteString(header.Render(pad("RESULT", outcomeWidth)))
	builder.WriteString("  ")
	builder.WriteString(header.Render("LEAF"))
	builder.WriteString("\n")

	for _, route := range routes {
		tokens := make([]string, len(route.Pattern))
		for i, token := range route.Pattern {
			if strings.HasPrefix(token, "<") {
				tokens[i] = placeholder.Render(token)
			} else {
				tokens[i] = keyword.Render(token)
			}
		}
		builder.WriteString(strings.Join(tokens, " "))
		builder.WriteString(strings.Repeat(" ", patternWidth-len(route.String())+2))
		builder.WriteString(outcome.Render(pad(route.Outcomes.String(), outcomeWidth)))
		builder.WriteString("  ")
		builder.WriteString(faint.Render(route.Leaf))
		builder.WriteString("\n")
	}
	fmt.Fprintf(&builder, "\n%s %s\n", faint.Render("fingerprint"), Fingerprint(routes))

	_, err := io.WriteString(w, builder.String())
	return err
}

func pad(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return text + strings.Repeat(" ", width-len(text))
}

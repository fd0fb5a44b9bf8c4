package main

import (
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"mkvsmith/internal/deps"
	"mkvsmith/internal/preflight"
)

// checkState is the verdict shown for one tool or preflight check.
type checkState string

const (
	stateReady    checkState = "ready"
	stateOptional checkState = "unavailable"
	stateMissing  checkState = "missing"
	statePass     checkState = "pass"
	stateFail     checkState = "fail"
)

// blocking reports whether the state prevents edits or batches from running.
func (s checkState) blocking() bool {
	return s == stateMissing || s == stateFail
}

func (s checkState) colors() text.Colors {
	switch s {
	case stateReady, statePass:
		return text.Colors{text.FgGreen}
	case stateOptional:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{text.FgRed, text.Bold}
	}
}

type checkRow struct {
	name   string
	state  checkState
	detail string
}

func toolRow(status deps.Status) checkRow {
	row := checkRow{name: status.Name, state: stateReady, detail: status.Command}
	if status.Detail != "" {
		row.detail += " (" + status.Detail + ")"
	}
	if !status.Available {
		row.state = stateMissing
		if status.Optional {
			row.state = stateOptional
		}
		row.detail = status.Detail
	}
	return row
}

func preflightRow(result preflight.Result) checkRow {
	row := checkRow{name: result.Name, state: statePass, detail: result.Detail}
	if !result.Passed {
		row.state = stateFail
	}
	return row
}

// renderCheckSection renders a titled table of rows.
func renderCheckSection(title string, rows []checkRow, colorize bool) string {
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		state := string(row.state)
		if colorize {
			state = row.state.colors().Sprint(state)
		}
		cells = append(cells, []string{row.name, state, row.detail})
	}
	heading := title
	if colorize {
		heading = text.Colors{text.FgBlue, text.Bold}.Sprint(title)
	}
	return heading + "\n" + renderTable([]string{"Name", "State", "Detail"}, cells, nil)
}

// checkSummary names the blocking rows, or reports readiness.
func checkSummary(rows ...[]checkRow) string {
	var blockers []string
	seen := make(map[string]bool)
	for _, group := range rows {
		for _, row := range group {
			if row.state.blocking() && !seen[row.name] {
				seen[row.name] = true
				blockers = append(blockers, row.name)
			}
		}
	}
	if len(blockers) == 0 {
		return "Ready"
	}
	return "Not ready: " + strings.Join(blockers, ", ")
}

// shouldColorize reports whether writer is an interactive terminal.
func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mkvsmith/internal/deps"
	"mkvsmith/internal/remux"
)

// printPlan writes the commands a plan would run, one table row per step.
func printPlan(cmd *cobra.Command, plan *remux.Plan, tc deps.Toolchain) {
	commands := plan.Commands(tc)
	rows := make([][]string, 0, len(commands))
	for i, argv := range commands {
		rows = append(rows, []string{strconv.Itoa(i + 1), shellJoin(argv)})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable([]string{"Step", "Command"}, rows, []columnAlignment{alignRight}))
	fmt.Fprintf(out, "Output: %s\n", plan.Mux.Output)
	for _, temp := range plan.TempFiles() {
		fmt.Fprintf(out, "Temp:   %s\n", temp)
	}
}

func shellJoin(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n'\"\\$`!*?[]{}()<>|&;#~") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

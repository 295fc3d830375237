package main

import (
	"fmt"
	"os"

	"fjacquet/expense-tracker/cmd/analyze"
	"fjacquet/expense-tracker/cmd/ask"
	"fjacquet/expense-tracker/cmd/batch"
	"fjacquet/expense-tracker/cmd/categorize"
	"fjacquet/expense-tracker/cmd/export"
	"fjacquet/expense-tracker/cmd/report"
	"fjacquet/expense-tracker/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(ask.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

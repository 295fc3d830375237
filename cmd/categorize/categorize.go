// Package categorize handles expense categorization commands
package categorize

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/categorizer"
	"fjacquet/expense-tracker/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize [description...]",
	Short: "Categorize expense descriptions",
	Long: `Categorize expense descriptions with the keyword taxonomy.

Each argument is categorized on its own. Without arguments the --input file
is categorized and the number of expenses per category is printed.

Example:
  expense-tracker categorize "Starbucks Coffee" "Uber ride"
  expense-tracker categorize -i expenses.csv --rule "pets: vet"`,
	RunE: categorizeFunc,
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	root.GetLogger().Debug("Categorize command called", logging.F(logging.FieldCount, len(args)))
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		t, err := common.LoadSession(root.SharedFlags.Input)
		if err != nil {
			return err
		}
		counts := map[string]int{}
		for _, r := range t.Records() {
			counts[r.Category]++
		}
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "%s: %d\n", name, counts[name])
		}
		return nil
	}

	if err := common.PersistRules(); err != nil {
		return err
	}
	t, err := common.NewTracker()
	if err != nil {
		return err
	}
	taxonomy := t.Taxonomy()
	for _, desc := range args {
		m := categorizer.Assign(desc, taxonomy)
		if m.Matched() {
			fmt.Fprintf(out, "%s => %s (keyword %q)\n", strings.TrimSpace(desc), m.Category, m.Keyword)
		} else {
			fmt.Fprintf(out, "%s => %s\n", strings.TrimSpace(desc), m.Category)
		}
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ArnaudCalmettes/graybench/models"
	"github.com/ArnaudCalmettes/graybench/report"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := models.ListRuns(db, historyLimit)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 5, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tSOURCE\tHOST\tPLATFORM\tFILES\tSECONDS\t")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%.3f\t\n",
				r.ShortID(), r.CreatedAt.Format("2006-01-02 15:04:05"), r.Source, r.Host, r.Platform, r.Files, r.Elapsed)
		}
		return w.Flush()
	},
}

// historyShowCmd represents the history show command
var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the measurements of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		run, err := models.FindRun(db, args[0])
		if err != nil {
			return fmt.Errorf("run %q: %w", args[0], err)
		}
		fmt.Println("Run", run.ID)
		fmt.Println("Date:", run.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Println("Host:", run.Host, run.Platform, run.GoVersion)
		fmt.Println()
		return report.WriteTable(os.Stdout, run.Summary())
	},
}

// historyRmCmd represents the history rm command
var historyRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Delete a recorded run",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		run, err := models.DeleteRun(db, args[0])
		if err != nil {
			return fmt.Errorf("run %q: %w", args[0], err)
		}
		fmt.Println("Deleted run", run.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRmCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "number of runs to list (0 for all)")
}

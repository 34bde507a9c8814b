package cmd

import (
	"context"
	"log"
	"os"

	"github.com/ArnaudCalmettes/graybench/bench"
	"github.com/ArnaudCalmettes/graybench/imp"
	"github.com/ArnaudCalmettes/graybench/models"
	"github.com/ArnaudCalmettes/graybench/report"
	"github.com/ArnaudCalmettes/graybench/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark (default command)",
	Args:  cobra.NoArgs,
	RunE:  runBenchmark,
}

func configFromViper() bench.Config {
	return bench.Config{
		InputDir:  viper.GetString("input"),
		Pattern:   viper.GetString("pattern"),
		OutputDir: viper.GetString("output"),
		Ext:       viper.GetString("ext"),
		Quality:   viper.GetInt("quality"),
		Repeat:    viper.GetInt("repeat"),
		Verify:    viper.GetBool("verify"),
	}
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	convs, err := imp.Select(viper.GetStringSlice("only"))
	if err != nil {
		return err
	}

	shutdown, err := telemetry.Init(viper.GetString("trace"))
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Println("couldn't flush spans:", err)
		}
	}()

	runner := bench.NewRunner(configFromViper(), convs, os.Stdout)
	s, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := exportSummary(s); err != nil {
		return err
	}
	return recordRun(s)
}

// exportSummary writes every export file configured.
func exportSummary(s *bench.Summary) error {
	exports := []struct {
		key   string
		write func(string, *bench.Summary) error
	}{
		{"report", report.WriteYAML},
		{"metrics", report.WriteMetrics},
		{"chart", report.WriteChart},
	}
	for _, e := range exports {
		path := viper.GetString(e.key)
		if path == "" {
			continue
		}
		if e.key == "chart" && len(s.Files) == 0 {
			log.Println("No image benchmarked, skipping chart")
			continue
		}
		if err := e.write(path, s); err != nil {
			return err
		}
		log.Printf("Wrote %s to %s", e.key, path)
	}
	return nil
}

// recordRun saves the run in the history database, if any.
func recordRun(s *bench.Summary) error {
	if viper.GetString("db") == "" {
		return nil
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	run := models.NewRunFromSummary("cli", s)
	if err := run.Create(db); err != nil {
		return err
	}
	log.Println("Recorded run", run.ShortID())
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}

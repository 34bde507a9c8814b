package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ArnaudCalmettes/graybench/bench"
	"github.com/ArnaudCalmettes/graybench/input"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "graybench",
	Short: "Grayscale conversion benchmark",
	Long: `Converts every image of a directory to grayscale with several implementations,
checks that they all agree, and reports how long each took and how much memory it used.`,
	Args:          cobra.NoArgs,
	RunE:          runBenchmark,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitCode maps an error to the process exit status: 2 when converters
// disagree, 1 for any other failure.
func exitCode(err error) int {
	var mismatch *bench.MismatchError
	if errors.As(err, &mismatch) {
		return 2
	}
	return 1
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(exitCode(err))
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	cfg := bench.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.graybench.yaml)")
	flags.String("db", "", "run history database (history is disabled when empty)")
	flags.StringP("input", "i", cfg.InputDir, "directory to read images from")
	flags.StringP("output", "o", cfg.OutputDir, "directory to write grayscale images to")
	flags.StringP("pattern", "p", input.DefaultPattern, "pattern of the images to convert (case-sensitive)")
	flags.String("ext", cfg.Ext, "extension, and format, of the output images")
	flags.Int("quality", cfg.Quality, "JPEG quality of the output images")
	flags.IntP("repeat", "n", cfg.Repeat, "number of measured calls per converter and image")
	flags.StringSlice("only", nil, "converters to run, the first one being the baseline (default all)")
	flags.Bool("verify", false, "read every output image back after writing it")
	flags.String("report", "", "write a YAML summary to this file")
	flags.String("metrics", "", "write a Prometheus textfile to this file")
	flags.String("chart", "", "write a bar chart (svg, png or pdf) to this file")
	flags.String("trace", "", "write OpenTelemetry spans to this file (- for stdout)")

	for _, key := range []string{
		"db", "input", "output", "pattern", "ext", "quality", "repeat", "only",
		"verify", "report", "metrics", "chart", "trace",
	} {
		viper.BindPFlag(key, flags.Lookup(key))
	}
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".graybench" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".graybench")
	}

	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("GRAYBENCH")

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

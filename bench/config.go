package bench

import "github.com/ArnaudCalmettes/graybench/input"

// Config controls a benchmark run over a directory of images.
type Config struct {
	// InputDir is searched (non-recursively) for files matching Pattern.
	InputDir string
	Pattern  string
	// OutputDir receives one <stem>_bw<Ext> grayscale file per input.
	OutputDir string
	Ext       string
	// Quality is the JPEG quality of the output files.
	Quality int
	// Repeat is the number of measured calls per converter and image. Values
	// below 1 mean a single call.
	Repeat int
	// Verify reads every output file back after writing it.
	Verify bool
}

// DefaultConfig returns the configuration of a plain run in the current
// directory.
func DefaultConfig() Config {
	return Config{
		InputDir:  "input",
		Pattern:   input.DefaultPattern,
		OutputDir: "output",
		Ext:       ".jpg",
		Quality:   95,
		Repeat:    1,
	}
}

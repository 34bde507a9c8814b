package bench

import (
	"fmt"
	"io"
)

// printStats writes the console line of one converter. A single run prints
// its own figures; repeated runs print the mean and standard deviation.
func printStats(w io.Writer, s Stats) {
	label := s.Converter + ":"
	if s.Runs > 1 {
		fmt.Fprintf(w, "%-15s%.5f ± %.5f seconds (n=%d), %d bytes\n", label, s.Mean, s.StdDev, s.Runs, s.PeakBytes)
		return
	}
	fmt.Fprintf(w, "%-15s%.5f seconds, %d bytes\n", label, s.Mean, s.PeakBytes)
}

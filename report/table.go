package report

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/ArnaudCalmettes/graybench/bench"
)

// WriteTable writes one row per image and converter.
func WriteTable(w io.Writer, s *bench.Summary) error {
	tw := tabwriter.NewWriter(w, 5, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "FILE\tCONVERTER\tSECONDS\tBYTES\tRUNS\t")
	for _, f := range s.Files {
		for _, st := range f.Stats() {
			fmt.Fprintf(tw, "%s\t%s\t%.5f\t%d\t%d\t\n",
				filepath.Base(f.Name), st.Converter, st.Mean, st.PeakBytes, st.Runs)
		}
	}
	return tw.Flush()
}

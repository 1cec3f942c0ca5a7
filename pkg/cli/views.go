package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/nmrstar/pkg/fasta"
	"github.com/andrew-torda/nmrstar/pkg/logger"
	"github.com/andrew-torda/nmrstar/pkg/star"
	"github.com/andrew-torda/nmrstar/pkg/table"
	"github.com/andrew-torda/nmrstar/pkg/views"
)

// writeTable sends t as CSV to outFile, or to w if outFile is empty.
func writeTable(t *table.Table, w io.Writer, outFile string) error {
	if outFile == "" {
		return t.WriteCSV(w)
	}
	fp, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := t.WriteCSV(fp); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// viewCmd makes a command that parses files, extracts one view from
// each and writes the lot as one CSV table.
func viewCmd[R table.Recorder](use, short string, extract func(*star.Entry) ([]R, error)) *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   use + " file.str...",
		Short: short,
		Args:  needArgs(1, "file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := parseAll(args)
			if err != nil {
				return err
			}
			var recs []R
			for _, p := range all {
				r, err := extract(p.entry)
				if err != nil {
					return fileErr(p.fname, err)
				}
				logger.Debug("extracted", "view", use, "file", p.fname, "rows", len(r))
				recs = append(recs, r...)
			}
			return writeTable(table.FromRecords(recs), cmd.OutOrStdout(), outFile)
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write CSV here instead of stdout")
	return cmd
}

// sequencesCmd can also write FASTA, one record per entity.
func sequencesCmd() *cobra.Command {
	var asFasta bool
	cmd := viewCmd("sequences", "Sequences of the entities, as CSV or FASTA", views.Sequences)
	csvRun := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if !asFasta {
			return csvRun(cmd, args)
		}
		all, err := parseAll(args)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if outFile, _ := cmd.Flags().GetString("output"); outFile != "" {
			fp, err := os.Create(outFile)
			if err != nil {
				return err
			}
			defer fp.Close()
			w = fp
		}
		for _, p := range all {
			seqs, err := views.Sequences(p.entry)
			if err != nil {
				return fileErr(p.fname, err)
			}
			if err := fasta.Write(w, "bmr"+entryID(p), seqs); err != nil {
				return fileErr(p.fname, err)
			}
		}
		return nil
	}
	cmd.Flags().BoolVarP(&asFasta, "fasta", "f", false, "write FASTA instead of CSV")
	return cmd
}

func shiftsCmd() *cobra.Command {
	return viewCmd("shifts", "Assigned chemical shifts, as CSV", views.ChemShifts)
}

// samplesCmd gives the last component of each sample, like the
// summary BMRB shows, unless --all is set.
func samplesCmd() *cobra.Command {
	var all bool
	extract := func(e *star.Entry) ([]views.SampleComponent, error) {
		if all {
			return views.SampleComponents(e)
		}
		return views.SampleInfo(e)
	}
	cmd := viewCmd("samples", "Sample components, as CSV", extract)
	cmd.Flags().BoolVarP(&all, "all", "a", false, "every component, not just the last of each sample")
	return cmd
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/nmrstar/pkg/star"
)

var errTooMany = errors.New("only one file, please")

// dump prints one line per saveframe, then one indented line per loop.
func dump(w io.Writer, e *star.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "saveframe\tcategory\ttags\tloops")
	for _, sf := range e.Saveframes() {
		cat, ok := sf.Tag("Sf_category")
		if !ok {
			cat = "-"
		}
		loops := sf.LoopNames()
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", sf.Name, cat, len(sf.TagKeys()), len(loops))
		for _, l := range loops {
			rows, _ := sf.Loop(l)
			fmt.Fprintf(tw, "  %s\t\t%d rows\t\n", l, len(rows))
		}
	}
	return tw.Flush()
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump file.str",
		Short: "List the saveframes and loops in a file",
		Args:  needArgs(1, "file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageError{errTooMany}
			}
			all, err := parseAll(args)
			if err != nil {
				return err
			}
			return dump(cmd.OutOrStdout(), all[0].entry)
		},
	}
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/nmrstar/pkg/bmrb"
)

func (a *app) fetchCmd() *cobra.Command {
	var dir string
	var progress bool
	cmd := &cobra.Command{
		Use:   "fetch id...",
		Short: "Download entries from the BMRB",
		Long: `fetch downloads bmr<id>_3.str for each id into the output directory.
An id can be given as 15000 or bmr15000.`,
		Args: needArgs(1, "id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, len(args))
			for i, s := range args {
				id, err := bmrb.ParseID(s)
				if err != nil {
					return usageError{err}
				}
				ids[i] = id
			}
			if !cmd.Flags().Changed("dir") {
				dir = a.cfg.Output.Dir
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			c := bmrb.NewClient(a.cfg.BMRB.BaseURL, a.cfg.BMRB.Timeout)
			if progress || a.cfg.BMRB.Progress {
				c.Progress = cmd.ErrOrStderr()
			}
			for _, id := range ids {
				path, err := c.Fetch(cmd.Context(), id, dir)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory for downloaded files (default output.dir)")
	cmd.Flags().BoolVarP(&progress, "progress", "p", false, "show a progress bar")
	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/andrew-torda/nmrstar/pkg/store"
)

func (a *app) storeCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "store file.str...",
		Short: "Save the views of entries in an sqlite database",
		Long: `store parses each file and saves its sequences, sample components and
shifts under the entry's ID. Storing an entry again replaces it.`,
		Args: needArgs(1, "file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("db") {
				dbPath = a.cfg.Store.Path
			}
			all, err := parseAll(args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			db, err := store.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			for _, p := range all {
				seqs, samples, shifts, err := allViews(p.entry)
				if err != nil {
					return fileErr(p.fname, err)
				}
				if err := db.SaveEntry(ctx, entryID(p), seqs, samples, shifts); err != nil {
					return fileErr(p.fname, err)
				}
			}
			return db.Close()
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "database file (default store.path)")
	return cmd
}

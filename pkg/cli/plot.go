package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/nmrstar/pkg/plot"
	"github.com/andrew-torda/nmrstar/pkg/views"
)

func (a *app) plotCmd() *cobra.Command {
	var outFile string
	var opts plot.Options
	cmd := &cobra.Command{
		Use:   "plot file.str",
		Short: "Plot chemical shifts against residue number as PNG",
		Args:  needArgs(1, "file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageError{errTooMany}
			}
			all, err := parseAll(args)
			if err != nil {
				return err
			}
			p := all[0]
			shifts, err := views.ChemShifts(p.entry)
			if err != nil {
				return fileErr(p.fname, err)
			}
			if opts.Width == 0 {
				opts.Width = a.cfg.Plot.Width
			}
			if opts.Height == 0 {
				opts.Height = a.cfg.Plot.Height
			}
			if opts.Title == "" {
				opts.Title = "bmr" + entryID(p)
			}
			fp, err := os.Create(outFile)
			if err != nil {
				return err
			}
			if err := plot.ShiftMap(fp, shifts, opts); err != nil {
				fp.Close()
				os.Remove(outFile)
				return fileErr(p.fname, err)
			}
			return fp.Close()
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "shifts.png", "PNG file to write")
	cmd.Flags().StringVar(&opts.Atom, "atom", "", "only this atom, like CA")
	cmd.Flags().StringVar(&opts.Title, "title", "", "title (default the entry ID)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "width in pixels (default plot.width)")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "height in pixels (default plot.height)")
	return cmd
}

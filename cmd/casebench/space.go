package main

import (
	"fmt"
	"text/tabwriter"

	"casebench/internal/benchmark"

	"github.com/spf13/cobra"
)

func newSpaceCmd(a *app) *cobra.Command {
	var countOnly bool
	cmd := &cobra.Command{
		Use:   "space",
		Short: "List the parameter combinations a sweep would visit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			space := benchmark.SpaceFromConfig(a.cfg)
			out := cmd.OutOrStdout()

			if countOnly {
				fmt.Fprintln(out, space.Len())
				return nil
			}

			fmt.Fprintf(out, "sizes:  %v\naligns: %v\nalphas: %v\n\n", space.Sizes, space.Aligns, space.Alphas)
			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "#\tALPHA\tALIGN\tSIZE")
			i := 0
			err := space.Each(func(p benchmark.Params) error {
				i++
				_, err := fmt.Fprintf(w, "%d\t%d%%\t%d\t%d\n", i, p.Alpha, p.Align, p.Size)
				return err
			})
			if err != nil {
				return err
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&countOnly, "count", false, "Only print the number of combinations")
	return cmd
}

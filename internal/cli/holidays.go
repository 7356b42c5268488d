package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lululau/minical/internal/holidays"
)

func newHolidaysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Manage the cached holidays file",
	}
	cmd.AddCommand(newHolidaysUpdateCmd(a))
	return cmd
}

func newHolidaysUpdateCmd(a *app) *cobra.Command {
	var url, output string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Download the holidays file used when --holidays is not given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dest := output
			if dest == "" {
				path, err := holidays.CachePath()
				if err != nil {
					return err
				}
				dest = path
			}
			years, err := holidays.Download(cmd.Context(), a.client, url, dest)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %s (years %d-%d)\n", dest, years.Min, years.Max)
			return err
		},
	}
	cmd.Flags().StringVar(&url, "url", holidays.DefaultURL, "where to download the holidays file from")
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination (default: user cache dir/minical/holidays.json)")
	return cmd
}

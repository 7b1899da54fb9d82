package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/X1ag/SRTScheduler/internal/utils"
)

var (
	searchDate string
	searchAll  bool
)

var stationsCmd = &cobra.Command{
	Use:   "stations [query]",
	Short: "List stations, optionally filtered by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return printJSON(cmd, utils.SearchStations(query))
	},
}

var searchCmd = &cobra.Command{
	Use:   "search FROM TO",
	Short: "Search trains between two stations",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := parseRoute(args[0], args[1])
		if err != nil {
			return err
		}
		date, err := parseTime(searchDate)
		if err != nil {
			return err
		}
		return withApp(cmd, false, func(ctx context.Context, a *app) error {
			trains, err := a.client.Find(ctx, from, to, date, searchAll)
			if err != nil {
				return err
			}
			return printJSON(cmd, trains)
		})
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchDate, "date", "", "departure date and time in KST (default: today from 00:00)")
	searchCmd.Flags().BoolVar(&searchAll, "all", false, "keep fetching pages until the service returns an empty one")
	rootCmd.AddCommand(stationsCmd, searchCmd)
}

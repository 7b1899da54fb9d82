package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

var (
	reserveDate       string
	reserveTrain      string
	reservePriority   string
	reservePassengers passengerFlags
)

var reservationsCmd = &cobra.Command{
	Use:   "reservations",
	Short: "List current reservations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *app) error {
			list, err := a.client.Reservations(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, list)
		})
	},
}

var reserveCmd = &cobra.Command{
	Use:   "reserve FROM TO",
	Short: "Reserve seats on a train found by number",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := parseRoute(args[0], args[1])
		if err != nil {
			return err
		}
		date, err := parseTime(reserveDate)
		if err != nil {
			return err
		}
		priority := domain.PriorityPolicy(reservePriority)
		if !priority.Valid() {
			return domain.ErrInvalidPriority
		}
		return withApp(cmd, true, func(ctx context.Context, a *app) error {
			trains, err := a.client.Find(ctx, from, to, date, true)
			if err != nil {
				return err
			}
			for _, t := range trains {
				if strings.TrimLeft(t.Number, "0") != strings.TrimLeft(reserveTrain, "0") {
					continue
				}
				r, err := a.client.Reserve(ctx, t, reservePassengers.list(), priority)
				if err != nil {
					return err
				}
				return printJSON(cmd, r)
			}
			return fmt.Errorf("train %s not found on %s %s", reserveTrain, from, to)
		})
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel ID",
	Short: "Cancel a reservation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *app) error {
			r, err := findReservation(ctx, a, args[0])
			if err != nil {
				return err
			}
			if err := a.client.Cancel(ctx, r); err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"id": r.ID, "cancelled": true})
		})
	},
}

var ticketsCmd = &cobra.Command{
	Use:   "tickets ID",
	Short: "Show the tickets of a reservation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *app) error {
			r, err := findReservation(ctx, a, args[0])
			if err != nil {
				return err
			}
			tickets, err := a.client.Tickets(ctx, r)
			if err != nil {
				return err
			}
			return printJSON(cmd, tickets)
		})
	},
}

func findReservation(ctx context.Context, a *app, id string) (*domain.Reservation, error) {
	r, err := a.client.ReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("reservation %s not found", id)
	}
	return r, nil
}

func addPassengerFlags(cmd *cobra.Command, p *passengerFlags) {
	cmd.Flags().IntVar(&p.adults, "adults", 1, "adult passengers")
	cmd.Flags().IntVar(&p.children, "children", 0, "child passengers")
	cmd.Flags().IntVar(&p.seniors, "seniors", 0, "senior passengers")
}

func init() {
	reserveCmd.Flags().StringVar(&reserveDate, "date", "", "departure date and time in KST")
	reserveCmd.Flags().StringVar(&reserveTrain, "train", "", "train number")
	reserveCmd.Flags().StringVar(&reservePriority, "priority", string(domain.GeneralFirst), "seat priority policy")
	_ = reserveCmd.MarkFlagRequired("train")
	addPassengerFlags(reserveCmd, &reservePassengers)

	rootCmd.AddCommand(reservationsCmd, reserveCmd, cancelCmd, ticketsCmd)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"staywatch/internal/app"
	"staywatch/internal/compliance/models"
	"staywatch/internal/platform/postgres"
	id "staywatch/pkg/domain"
	"staywatch/pkg/requestcontext"
)

func newEvaluateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <traveler-id>",
		Short: "Evaluate one traveler and apply the alert transition.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			travelerID, err := id.ParseTravelerID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				outcome, err := a.Alerts.EvaluateWithOutcome(ctx, travelerID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), outcome)
			})
		},
	}
}

func newEvaluateAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate-all",
		Short: "Evaluate every known traveler.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				report, err := a.Alerts.EvaluateAll(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
}

func newDispatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch",
		Short: "Send one digest of every alert not yet notified.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				report, err := a.Alerts.DispatchNotifications(ctx)
				if report != nil {
					if perr := printJSON(cmd.OutOrStdout(), report); perr != nil {
						return perr
					}
				}
				return err
			})
		},
	}
}

func newWindowCommand() *cobra.Command {
	var date string
	c := &cobra.Command{
		Use:   "window <traveler-id>",
		Short: "Show days used and remaining for a reference date.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			travelerID, err := id.ParseTravelerID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				ref, err := dateOrToday(ctx, date)
				if err != nil {
					return err
				}
				result, err := a.Query.WindowResult(ctx, travelerID, ref)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	c.Flags().StringVar(&date, "date", "", "reference date (YYYY-MM-DD), default today")
	return c
}

func newForecastCommand() *cobra.Command {
	var today string
	c := &cobra.Command{
		Use:   "forecast <traveler-id>",
		Short: "Show the earliest date the traveler is back within quota.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			travelerID, err := id.ParseTravelerID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				day, err := dateOrToday(ctx, today)
				if err != nil {
					return err
				}
				result, err := a.Query.ComplianceForecast(ctx, travelerID, day)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	c.Flags().StringVar(&today, "today", "", "date to forecast from (YYYY-MM-DD), default today")
	return c
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if !a.Persistent() {
					return fmt.Errorf("POSTGRES_URL is required to migrate")
				}
				db, err := postgres.Open(ctx, a.Config.Postgres)
				if err != nil {
					return err
				}
				defer db.Close()
				if err := postgres.Migrate(ctx, db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			})
		},
	}
}

func dateOrToday(ctx context.Context, raw string) (models.Date, error) {
	if raw == "" {
		return models.DateOf(requestcontext.Now(ctx)), nil
	}
	return models.ParseDate(raw)
}

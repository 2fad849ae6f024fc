package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"catalogdash/internal/dashboard"
	"catalogdash/internal/repository"
	jsonfile "catalogdash/internal/repository/json"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print aggregate views over the full product listing",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	svc := dashboard.NewService(a.catalog, dashboard.Options{
		TopWords:  a.cfg.Dashboard.TopWords,
		NoneLabel: a.cfg.Dashboard.NoneLabel,
	}, a.log)

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), a.render.Failure(err))
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), a.render.Dashboard(snap))

	if a.cfg.CLI.OutputFile != "" {
		repo := jsonfile.New(a.cfg.CLI.OutputFile, a.log)
		err := repo.SaveDashboard(ctx, repository.DashboardResult{
			FetchedAt: time.Now().UTC().Format(time.RFC3339),
			Source:    a.cfg.Catalog.BaseURL,
			Dashboard: snap,
		})
		if err != nil {
			return fmt.Errorf("save json: %w", err)
		}
	}
	return nil
}

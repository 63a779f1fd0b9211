package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
)

// newListCmd — чтение записанных выпусков: по идентификатору, за дату
// или за окно последних дней.
func newListCmd() *cobra.Command {
	var (
		id   string
		date string
		days int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored editions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), id, date, days)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "fetch a single edition by id")
	cmd.Flags().StringVar(&date, "date", "", "all editions for a date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 7, "recent window in calendar days")

	return cmd
}

func runList(ctx context.Context, id, date string, days int) error {
	ctx, cfg, err := setup(ctx)
	if err != nil {
		return err
	}

	svc, cleanup, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	var items []models.Edition

	switch {
	case id != "":
		edition, err := svc.EditionByID(ctx, id)
		if err != nil {
			return err
		}
		items = []models.Edition{*edition}
	case date != "":
		if items, err = svc.EditionsByDate(ctx, date); err != nil {
			return err
		}
	default:
		if items, err = svc.RecentEditions(ctx, days); err != nil {
			return err
		}
	}

	if len(items) == 0 {
		fmt.Println("no editions found")
		return nil
	}

	for _, e := range items {
		fmt.Printf("%s\t%s\t%s\n", e.ID, e.Timestamp.UTC().Format(time.RFC3339), e.Assets.ImageURL)
	}

	return nil
}

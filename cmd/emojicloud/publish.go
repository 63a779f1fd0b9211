package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pareeksourabh/today-in-emojis-cloud/pkg/log"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/instagram"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/service"
)

// publishHTTPTimeout — предел на один запрос к Graph API и проверку
// изображения; ожидание контейнера ограничивается отдельно конфигом.
const publishHTTPTimeout = 30 * time.Second

// newPublishCmd — публикация записанного выпуска в Instagram: подпись
// строится по документу, изображение берётся по его публичному URL.
func newPublishCmd() *cobra.Command {
	var (
		id   string
		date string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a stored edition to Instagram",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPublish(cmd.Context(), id, date)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "edition id to publish")
	cmd.Flags().StringVar(&date, "date", "", "publish the latest edition of a date (YYYY-MM-DD)")

	return cmd
}

func runPublish(ctx context.Context, id, date string) error {
	ctx, cfg, err := setup(ctx)
	if err != nil {
		return err
	}

	if id == "" && date == "" {
		return errors.New("either --id or --date is required")
	}

	// В dry-run обе стороны — и чтение выпуска, и Graph API — остаются
	// нетронутыми: команда лишь сообщает, что была бы публикация.
	if cfg.DryRun {
		log.From(ctx).Info("dry-run mode: instagram publish skipped", "id", id, "date", date)
		return nil
	}

	if cfg.Instagram.AccessToken == "" || cfg.Instagram.AccountID == "" {
		return errors.New("instagram credentials are not configured")
	}

	svc, cleanup, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	edition, err := resolveEdition(ctx, svc, id, date)
	if err != nil {
		return err
	}

	caption := instagram.Caption(*edition)
	lg := log.From(ctx).With("edition_id", edition.ID)
	lg.Info("caption_ready", "caption_len", len(caption))

	client := instagram.New(&http.Client{Timeout: publishHTTPTimeout}, cfg.Instagram)

	if err := client.VerifyImage(ctx, edition.Assets.ImageURL); err != nil {
		return err
	}

	media, err := client.Publish(ctx, edition.Assets.ImageURL, caption)
	if err != nil {
		return err
	}

	fmt.Println(media)

	return nil
}

// resolveEdition находит выпуск по идентификатору либо последний за дату
// (выпуски за дату отсортированы по времени создания по возрастанию).
func resolveEdition(ctx context.Context, svc *service.Service, id, date string) (*models.Edition, error) {
	if id != "" {
		return svc.EditionByID(ctx, id)
	}

	items, err := svc.EditionsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no editions for %s", date)
	}

	return &items[len(items)-1], nil
}

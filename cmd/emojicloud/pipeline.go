package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pareeksourabh/today-in-emojis-cloud/internal/ai"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/models"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/pipeline"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/render"
	"github.com/pareeksourabh/today-in-emojis-cloud/internal/rss"
)

// newPipelineCmd — полный цикл производства: опрос RSS-лент, выбор
// содержимого моделью, рендеринг изображения и запись выпуска.
func newPipelineCmd() *cobra.Command {
	var (
		postType string
		date     string
		imageOut string
	)

	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run the full pipeline: RSS, selection, render, produce",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd.Context(), postType, date, imageOut)
		},
	}

	cmd.Flags().StringVarP(&postType, "type", "t", "normal", "post type: normal or essence")
	cmd.Flags().StringVar(&date, "date", "", "edition date YYYY-MM-DD (default: today UTC)")
	cmd.Flags().StringVarP(&imageOut, "image-out", "o", "", "also write the rendered PNG to this path")

	return cmd
}

func runPipeline(ctx context.Context, postType, date, imageOut string) error {
	ctx, cfg, err := setup(ctx)
	if err != nil {
		return err
	}

	pt := models.PostType(postType)
	if !pt.Valid() {
		return fmt.Errorf("unknown post type %q", postType)
	}

	if date == "" {
		date = time.Now().UTC().Format(models.DateLayout)
	}

	selector, err := ai.New(cfg.AI)
	if err != nil {
		return err
	}

	parser := rss.New(&http.Client{Timeout: cfg.RSS.Timeout}, cfg.RSS.MaxConcurrent)
	renderer := render.New(cfg.Render)

	in, err := pipeline.New(*cfg, parser, selector, renderer).BuildRequest(ctx, date, pt)
	if err != nil {
		return err
	}

	if imageOut != "" {
		if err := os.WriteFile(imageOut, in.Image, 0o644); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
	}

	svc, cleanup, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	edition, err := svc.Produce(ctx, *in)
	if err != nil {
		return err
	}

	fmt.Println(edition.ID)

	return nil
}

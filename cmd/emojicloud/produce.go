package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pareeksourabh/today-in-emojis-cloud/pkg/log"
)

// newProduceCmd — производство выпуска из готового файла запроса:
// содержимое и изображение уже подготовлены внешним конвейером.
func newProduceCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "produce",
		Short: "Produce an edition from a prepared JSON request file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProduce(cmd.Context(), file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to JSON request file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runProduce(ctx context.Context, file string) error {
	ctx, cfg, err := setup(ctx)
	if err != nil {
		return err
	}

	in, err := loadProduceRequest(file)
	if err != nil {
		return err
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

	log.From(ctx).Info("edition_ready",
		"edition_id", edition.ID,
		"image_url", edition.Assets.ImageURL,
		"expires_at", edition.Assets.ExpiresAt,
	)
	fmt.Println(edition.ID)

	return nil
}

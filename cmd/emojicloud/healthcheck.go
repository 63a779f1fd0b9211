package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newHealthcheckCmd — проверка доступности обоих хранилищ; ненулевой
// код выхода при первой недоступности.
func newHealthcheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "healthcheck",
		Short: "Ping both storages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHealthcheck(cmd.Context())
		},
	}
}

func runHealthcheck(ctx context.Context) error {
	ctx, cfg, err := setup(ctx)
	if err != nil {
		return err
	}

	svc, cleanup, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.Health(ctx); err != nil {
		return err
	}

	fmt.Println("ok")

	return nil
}

// Package main — точка входа emojicloud: производство ежедневных
// эмодзи-выпусков, их публикация в Instagram и сервисные команды
// хранилищ. Вся работа разложена по подкомандам cobra; конфигурация
// общая (--config/CONFIG_PATH/ENV-переменные).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	configPath string
	forceDry   bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:   "emojicloud",
		Short: "Daily emoji editions: produce, store and publish",
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	rootCmd.PersistentFlags().BoolVar(&forceDry, "dry-run", false, "force dry-run regardless of config")

	rootCmd.AddCommand(
		newProduceCmd(),
		newPipelineCmd(),
		newListCmd(),
		newPublishCmd(),
		newHealthcheckCmd(),
		newInitStorageCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/raykavin/cryptopallab"
	"github.com/raykavin/cryptopallab/internal/config"
	"github.com/raykavin/cryptopallab/pkg/core"
	"github.com/raykavin/cryptopallab/pkg/market"
	"github.com/spf13/cobra"
)

// Command line flags
var (
	envFile   string
	chartDays int
	chartOut  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "cryptopallab",
		Short:         "Telegram bot for crypto prices and news",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env", config.DefaultEnvFile, "Path to an optional .env file")

	rootCmd.AddCommand(
		buildServeCmd(),
		buildPriceCmd(),
		buildTopCmd(),
		buildNewsCmd(),
		buildChartCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot and the news broadcast",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := config.RequireToken(settings); err != nil {
		return err
	}

	bot, err := cryptopallab.NewBot(settings)
	if err != nil {
		return err
	}

	if err := bot.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loadSettings() (core.Settings, error) {
	settings, err := config.Load(envFile)
	if err != nil {
		return core.Settings{}, fmt.Errorf("load configuration: %w", err)
	}
	return settings, nil
}

func newGateway() (*market.Gateway, core.Settings, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, settings, err
	}
	return market.NewGateway(settings.Market, cryptopallab.DefaultLog), settings, nil
}

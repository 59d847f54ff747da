// Command marketdata runs the market-data operations against the configured providers
// and prints the canonical results as markdown.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"portfolio_backend/internal/app/di"
)

func main() {
	_ = godotenv.Load(".env")

	// プロバイダーのフォールバックログは標準エラーに出す
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	market := di.NewMarketData(logger)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range commands(market, os.Stdout) {
		commander.Register(c, "market data")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

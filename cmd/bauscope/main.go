package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bau-lang/bauscope/cmd/bauscope/highlight"
	proxy_lsp "github.com/bau-lang/bauscope/cmd/bauscope/proxy-lsp"
	"github.com/bau-lang/bauscope/cmd/bauscope/tokenize"
	"gitlab.com/tozd/go/errors"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var debugLogs bool

	rootCmd := &cobra.Command{
		Use:   "bauscope",
		Short: "grammar-driven tokenizer and highlighter for the bau language",
	}

	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "enable debug logging")

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	rootCmd.AddCommand(tokenize.NewTokenizeCommand())
	rootCmd.AddCommand(highlight.NewHighlightCommand())
	rootCmd.AddCommand(proxy_lsp.NewProxyLSPCommand())

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if debugLogs {
			level = zerolog.DebugLevel
		}
		cmd.SetContext(logger.Level(level).WithContext(cmd.Context()))
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}

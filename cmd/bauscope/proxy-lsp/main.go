package proxy_lsp

import (
	"context"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bau-lang/bauscope/pkg/langserver"
)

type Handler struct {
	configPath string
}

func NewProxyLSPCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "proxy-lsp",
		Short: "spawn the configured external bau language server over stdio",
	}

	cmd.Flags().StringVar(&me.configPath, "config", "bauscope.yaml", "path to the language server config file")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	cfg, err := langserver.LoadConfig(afero.NewOsFs(), me.configPath)
	if err != nil {
		return err
	}

	return langserver.Spawn(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)
}

package langserver

import (
	"context"
	"io"
	"os/exec"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Spawn starts the configured language server and proxies the given
// streams to its stdio until the process exits or ctx is canceled. The
// protocol itself is opaque here; the server and this process's client
// speak over the proxied pipes.
func Spawn(ctx context.Context, cfg *Config, stdin io.Reader, stdout, stderr io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", cfg.Path).Strs("args", cfg.Args).Msg("spawning language server")

	cmd := exec.CommandContext(ctx, cfg.Path, cfg.Args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return errors.Errorf("language server canceled: %w", ctx.Err())
		}
		return errors.Errorf("running language server %s: %w", cfg.Path, err)
	}

	logger.Debug().Str("path", cfg.Path).Msg("language server exited")
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/textnorm/textnorm/kit/cli"
)

// Set during build via -ldflags "-X main.version=X.Y.Z".
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd, err := NewRootCommand(ctx, viper.New())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand assembles the textnorm command tree. All sub-commands share
// v, so TEXTNORM_* env vars and the config file apply to each of them.
func NewRootCommand(ctx context.Context, v *viper.Viper) (*cobra.Command, error) {
	root, err := cli.NewCommand(v, &cli.Program{Name: "textnorm"})
	if err != nil {
		return nil, err
	}
	root.Short = "Batch cleanup for lyric and text files"
	root.Version = version
	root.SilenceUsage = true

	// If a new sub-command is created, it must be added here
	for _, newCmd := range []func(context.Context, *viper.Viper) (*cobra.Command, error){
		NewNormalizeCommand,
		NewCountCommand,
	} {
		sub, err := newCmd(ctx, v)
		if err != nil {
			return nil, err
		}
		root.AddCommand(sub)
	}
	return root, nil
}

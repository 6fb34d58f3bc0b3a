package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/textnorm/textnorm/kit/cli"
	"github.com/textnorm/textnorm/logger"
	"github.com/textnorm/textnorm/normalize"
	"github.com/textnorm/textnorm/textio"
)

func NewNormalizeCommand(ctx context.Context, v *viper.Viper) (*cobra.Command, error) {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "normalize [dir]",
		Short: "Normalize the text and timed-lyric files of a directory",
		Long: `Normalize every file directly under dir, which defaults to the directory
holding the textnorm executable.

Each timed-lyric file has its [MM:SS.mmm] markers and blank lines removed and
is replaced by a text file of the same base name. Then every text file:
	* has CRLF line endings converted to LF;
	* has trailing whitespace removed from the end of its content;
	* has every line containing ':' or '：' removed.
Text files left empty are deleted.

Files that cannot be decoded are reported and left untouched.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := normalizeDir(args)
			if err != nil {
				return err
			}
			log, err := flags.newLogger(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer log.Sync()

			return runNormalize(logger.NewContextWithLogger(ctx, log), dir, &flags)
		},
	}

	if err := cli.BindOptions(v, cmd, flags.opts()); err != nil {
		return nil, err
	}
	return cmd, nil
}

// normalizeDir returns the directory argument, or the executable's directory.
func normalizeDir(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

func runNormalize(ctx context.Context, dir string, flags *commonFlags) error {
	log := logger.FromContext(ctx)

	exts, err := flags.extensions()
	if err != nil {
		return err
	}
	cs, err := textio.LookupCharset(flags.encoding)
	if err != nil {
		return err
	}

	n := normalize.New(log, normalize.WithCharset(cs), normalize.WithExtensions(exts))
	report, err := n.Run(ctx, dir)
	if err != nil {
		return err
	}
	if err := report.Fatal(); err != nil {
		return fmt.Errorf("normalizing %s: %w", dir, err)
	}
	return nil
}

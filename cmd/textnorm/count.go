package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/textnorm/textnorm/cjk"
	"github.com/textnorm/textnorm/kit/cli"
	"github.com/textnorm/textnorm/logger"
	"github.com/textnorm/textnorm/textio"
)

func NewCountCommand(ctx context.Context, v *viper.Viper) (*cobra.Command, error) {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "count [dir]",
		Short: "Count Chinese characters in the text files of a directory",
		Long: `Count the CJK Unified Ideographs (U+4E00 to U+9FFF) in every text file
directly under dir, which defaults to the working directory, and print the
count per file and in total. Unreadable files count as zero.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			log, err := flags.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer log.Sync()

			return runCount(logger.NewContextWithLogger(ctx, log), cmd.OutOrStdout(), dir, &flags)
		},
	}

	if err := cli.BindOptions(v, cmd, flags.opts()); err != nil {
		return nil, err
	}
	return cmd, nil
}

func runCount(ctx context.Context, w io.Writer, dir string, flags *commonFlags) error {
	exts, err := flags.extensions()
	if err != nil {
		return err
	}
	cs, err := textio.LookupCharset(flags.encoding)
	if err != nil {
		return err
	}

	c := cjk.NewCounter(logger.FromContext(ctx), cs, exts)
	tally, err := c.Run(ctx, dir)
	if err != nil {
		return err
	}

	for _, f := range tally.Files {
		fmt.Fprintf(w, "%s: %d Chinese characters\n", f.Name, f.Count)
	}
	fmt.Fprintf(w, "Total Chinese characters in all %s files: %s\n", exts.Text, humanize.Comma(int64(tally.Total)))
	return nil
}

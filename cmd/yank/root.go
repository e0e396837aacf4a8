package main

import (
	"fmt"
	"io"

	"github.com/aymanbagabas/yank"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type options struct {
	output     bool
	input      bool
	lf         bool
	crlf       bool
	crlfStrict bool
	verbose    bool
	serve      bool
}

// handoffFunc passes text to a process that keeps serving it after this one
// exits.
type handoffFunc func(text string) error

// handoffClipboard writes through to the clipboard and, when the content only
// lives as long as its owner, hands it to another process so the caller can
// exit right away.
type handoffClipboard struct {
	yank.Clipboard
	handoff handoffFunc
}

func (c handoffClipboard) WriteText(text string) (<-chan struct{}, error) {
	done, err := c.Clipboard.WriteText(text)
	if err != nil || done == nil {
		return done, err
	}
	if err := c.handoff(text); err != nil {
		return nil, fmt.Errorf("failed to hand off clipboard content: %w", err)
	}
	return nil, nil
}

func newRootCmd(cb yank.Clipboard, handoff handoffFunc) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "yank (-o [--lf] | -i [--crlf | --crlf-strict])",
		Short: "Read and write the system clipboard from the terminal",
		Long: `yank bridges the system clipboard and standard streams.

  yank -o         print clipboard contents to stdout
  yank -i         set clipboard from stdin

Reading an empty clipboard prints nothing. Other read failures are logged to
stderr and also print nothing. Write failures exit with a non-zero status.`,
		Version:       version(),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Flags are valid at this point; errors from here on are not
			// usage errors.
			cmd.SilenceUsage = true
			if opts.serve {
				return serve(cmd, cb, opts)
			}
			return run(cmd, handoffClipboard{Clipboard: cb, handoff: handoff}, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.output, "output", "o", false, "print clipboard contents to stdout")
	f.BoolVarP(&opts.input, "input", "i", false, "set clipboard from stdin")
	f.BoolVar(&opts.lf, "lf", false, "replace CRLF with LF before printing to stdout")
	f.BoolVar(&opts.crlf, "crlf", false, "replace LF with CRLF before setting the clipboard")
	f.BoolVar(&opts.crlfStrict, "crlf-strict", false, "like --crlf, but leave existing CRLF untouched")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug messages to stderr")
	f.BoolVar(&opts.serve, "serve", false, "set clipboard from stdin as-is and serve it until replaced")
	_ = f.MarkHidden("serve")

	cmd.MarkFlagsOneRequired("output", "input")
	cmd.MarkFlagsMutuallyExclusive("output", "input")
	cmd.MarkFlagsMutuallyExclusive("output", "crlf")
	cmd.MarkFlagsMutuallyExclusive("output", "crlf-strict")
	cmd.MarkFlagsMutuallyExclusive("input", "lf")
	cmd.MarkFlagsMutuallyExclusive("output", "serve")
	cmd.MarkFlagsMutuallyExclusive("serve", "crlf")
	cmd.MarkFlagsMutuallyExclusive("serve", "crlf-strict")

	return cmd
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "yank",
		Level:  level,
	})
}

func run(cmd *cobra.Command, cb yank.Clipboard, opts options) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	if opts.output {
		text := yank.Paste(cb, yank.PasteOptions{LF: opts.lf, Logger: logger})
		_, err := io.WriteString(cmd.OutOrStdout(), text)
		return err
	}

	copyOpts := yank.CopyOptions{
		CRLF:   opts.crlf || opts.crlfStrict,
		Logger: logger,
	}
	if opts.crlfStrict {
		copyOpts.Convert = yank.LFToCRLF
	}

	_, err := yank.Copy(cb, cmd.InOrStdin(), copyOpts)
	return err
}

// serve stores stdin unchanged and keeps ownership of the clipboard until
// another application takes it. It runs in the detached process started by
// the handoff.
func serve(cmd *cobra.Command, cb yank.Clipboard, opts options) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	done, err := yank.Copy(cb, cmd.InOrStdin(), yank.CopyOptions{Logger: logger})
	if err != nil {
		return err
	}
	if done != nil {
		logger.Debug("serving clipboard until another application takes it")
		<-done
	}
	return nil
}

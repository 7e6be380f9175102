// Package cli implements the eventlog command.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/adamse/ghc-eventlog/internal/config"
	"github.com/adamse/ghc-eventlog/internal/eventfile"
)

// stdinWait is how long to wait for input on stdin before telling the user.
const stdinWait = time.Second / 2

type app struct {
	configPath string
	logLevel   string
	jobs       int

	cfg config.Config
	log *logrus.Logger
}

// NewCommand returns the root command with every subcommand attached.
func NewCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "eventlog",
		Short: "Inspect the event logs written by the GHC runtime",
		Long: `Inspect the binary event logs a Haskell program writes when run with +RTS -l.

Files are read from the arguments, a missing argument or "-" reads stdin.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	pf.IntVarP(&a.jobs, "jobs", "j", 1, "number of files decoded concurrently")

	root.AddCommand(
		a.catCommand(),
		a.grepCommand(),
		a.schedCommand(),
		a.typesCommand(),
		a.genCommand(),
	)
	return root
}

// Execute runs the eventlog command, exiting non-zero on failure.
func Execute() {
	if err := NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = a.jobs
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Level()
	a.log = logrus.New()
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetLevel(level)
	a.cfg = cfg
	return nil
}

// decodeFunc decodes a single input, writing what it prints to w.
type decodeFunc func(f *eventfile.File, w io.Writer, log logrus.FieldLogger) error

// each runs fn for every input named in args, up to cfg.Jobs at a time. The
// output of each input is buffered and written in argument order once all of
// them finished, a header naming the input precedes it when there are several.
func (a *app) each(cmd *cobra.Command, args []string, fn decodeFunc) error {
	paths := eventfile.Paths(args)
	outs := make([]bytes.Buffer, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(a.cfg.Jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			f, err := a.open(cmd, path)
			if err != nil {
				return err
			}
			defer f.Close()

			log := a.log.WithField("file", f.Name)
			if f.Size < 0 {
				a.waitInput(f, log)
			}
			log.WithField("size", f.Size).Debug("decoding")
			if err = fn(f, &outs[i], log); err != nil {
				return fmt.Errorf("%v: %w", f.Path, err)
			}
			return nil
		})
	}
	err := g.Wait()

	w := cmd.OutOrStdout()
	for i := range outs {
		if len(paths) > 1 {
			fmt.Fprintf(w, "==> %v <==\n", paths[i])
		}
		if _, werr := outs[i].WriteTo(w); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

func (a *app) open(cmd *cobra.Command, path string) (*eventfile.File, error) {
	if path == eventfile.Stdin {
		return eventfile.NewFile(`<stdin>`, cmd.InOrStdin(), -1), nil
	}
	return eventfile.Open(path)
}

// waitInput blocks until f has data or fails, telling the user when that
// takes a while.
func (a *app) waitInput(f *eventfile.File, log logrus.FieldLogger) {
	t := time.AfterFunc(stdinWait, func() {
		log.Info("waiting for stdin...")
	})
	defer t.Stop()
	_, _ = f.Reader().Peek(1)
}

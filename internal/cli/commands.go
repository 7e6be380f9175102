package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/adamse/ghc-eventlog/encoding"
	"github.com/adamse/ghc-eventlog/event"
	"github.com/adamse/ghc-eventlog/internal/eventfile"
	"github.com/adamse/ghc-eventlog/internal/eventgen"
	"github.com/adamse/ghc-eventlog/printer"
	"github.com/adamse/ghc-eventlog/sched"
)

func newDecoder(f *eventfile.File, log logrus.FieldLogger) *encoding.Decoder {
	return encoding.NewDecoder(f.Reader(), encoding.WithLogger(log))
}

// recordStats counts the records of a log by tag.
type recordStats struct {
	event.NopSink
	tags    map[event.Tag]int
	unknown int
}

func newRecordStats() *recordStats {
	return &recordStats{tags: make(map[event.Tag]int)}
}

func (s *recordStats) RecordObserved(tag event.Tag, _ uint64, _ int) error {
	s.tags[tag]++
	if !tag.Known() {
		s.unknown++
	}
	return nil
}

func (s *recordStats) fields() logrus.Fields {
	return logrus.Fields{"kinds": len(s.tags), "unknown": s.unknown}
}

func (a *app) catCommand() *cobra.Command {
	var showUnknown bool
	cmd := &cobra.Command{
		Use:   "cat [files...]",
		Short: "Print every record with the capability that emitted it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("show-unknown") {
				a.cfg.ShowUnknown = showUnknown
			}
			return a.each(cmd, args, func(f *eventfile.File, w io.Writer, log logrus.FieldLogger) error {
				return printLog(f, log, printer.New(w, printer.WithUnknown(a.cfg.ShowUnknown)))
			})
		},
	}
	cmd.Flags().BoolVar(&showUnknown, "show-unknown", true, "print records with an unknown tag")
	return cmd
}

func (a *app) grepCommand() *cobra.Command {
	var (
		pattern string
		invert  bool
	)
	cmd := &cobra.Command{
		Use:   "grep -r REGEXP [files...]",
		Short: "Print the records whose name or text matches a regexp",
		Example: `  # Scheduling of a single thread
  eventlog grep -r 'ti:42\b' main.eventlog

  # Everything except garbage collection
  eventlog grep -vr '^(GC|Heap)' main.eventlog`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := a.cfg.Grep
			if cmd.Flags().Changed("regexp") {
				g.Pattern = pattern
			}
			if cmd.Flags().Changed("invert") {
				g.Invert = invert
			}
			if g.Pattern == "" {
				return errors.New("no pattern given, use -r or grep.pattern in the config")
			}
			re, err := g.Regexp()
			if err != nil {
				return err
			}

			return a.each(cmd, args, func(f *eventfile.File, w io.Writer, log logrus.FieldLogger) error {
				p := printer.New(w,
					printer.WithFilter(re, g.Invert),
					printer.WithUnknown(a.cfg.ShowUnknown))
				return printLog(f, log, p)
			})
		},
	}
	cmd.Flags().StringVarP(&pattern, "regexp", "r", "", "regexp to match against the record name and text")
	cmd.Flags().BoolVarP(&invert, "invert", "v", false, "invert matching, like grep -v")
	return cmd
}

func printLog(f *eventfile.File, log logrus.FieldLogger, p *printer.Printer) error {
	p.Tracker().SetLogger(log)
	stats := newRecordStats()
	d := newDecoder(f, log)
	err := d.Decode(event.Tee(stats, p.Sink()))
	log.WithFields(stats.fields()).WithFields(logrus.Fields{
		"records": d.Count(),
		"lines":   p.Lines(),
		"spans":   p.Tracker().Spans(),
		"resyncs": p.Tracker().Resyncs(),
	}).Debug("decoded")
	return err
}

func (a *app) schedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sched [files...]",
		Short: "Print scheduling events in time order",
		Long: `Print the scheduling events of a log ordered by timestamp, each with the
capability that emitted it. Unlike cat, a record with an unknown tag, an invalid
stop status or a thread label that is not utf8 is an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.each(cmd, args, func(f *eventfile.File, w io.Writer, log logrus.FieldLogger) error {
				return schedule(f, w, log)
			})
		},
	}
}

func schedule(f *eventfile.File, w io.Writer, log logrus.FieldLogger) error {
	agg := sched.New(sched.WithLogger(log))
	stats := newRecordStats()
	d := newDecoder(f, log)
	if err := d.Decode(event.Tee(stats, agg.Sink())); err != nil {
		return err
	}
	tr := agg.Trace()
	log.WithFields(stats.fields()).WithFields(logrus.Fields{
		"records":    d.Count(),
		"events":     tr.Count(),
		"timestamps": tr.Len(),
		"resyncs":    agg.Tracker().Resyncs(),
	}).Debug("decoded")

	var err error
	tr.Ascend(func(ts uint64, entries []sched.Entry) bool {
		for _, e := range entries {
			if _, err = fmt.Fprintln(w, ts, e); err != nil {
				return false
			}
		}
		return true
	})
	return err
}

func (a *app) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types [files...]",
		Short: "Print the event types declared in the header",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.each(cmd, args, func(f *eventfile.File, w io.Writer, log logrus.FieldLogger) error {
				reg, err := newDecoder(f, log).Registry()
				if err != nil {
					return err
				}
				for _, et := range reg.Types() {
					known := "-"
					if et.Tag.Known() {
						known = et.Tag.Name()
					}
					if _, err = fmt.Fprintf(w, "%v\t%v\n", et, known); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func (a *app) genCommand() *cobra.Command {
	var blocks int
	cmd := &cobra.Command{
		Use:    "gen",
		Short:  "Write a synthetic log to stdout",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if blocks < 0 {
				return fmt.Errorf("blocks must not be negative; got %d", blocks)
			}
			_, err := cmd.OutOrStdout().Write(eventgen.Synthetic(blocks))
			return err
		},
	}
	cmd.Flags().IntVarP(&blocks, "blocks", "n", 16, "number of capability blocks")
	return cmd
}

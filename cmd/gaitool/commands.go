package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/urfave/cli/v2"

	gait "github.com/lucasjlepore/gait-analyzer"
	"github.com/lucasjlepore/gait-analyzer/batch"
	"github.com/lucasjlepore/gait-analyzer/cohort"
	"github.com/lucasjlepore/gait-analyzer/pipeline"
)

func fileFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: usage, Required: true}
}

func saveFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "save", Aliases: []string{"s"}, Usage: "output directory", Required: true}
}

func remapFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "remap", Aliases: []string{"r"}, Usage: "rename dictionary (default: dictionary setting)"}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "format", Usage: "csv|parquet (default: format setting)"}
}

func dbFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "db", Usage: "cohort SQLite database (default: cohort_db setting)"}
}

func filterCommand() *cli.Command {
	return &cli.Command{
		Name:  "filter",
		Usage: "segment one recording and write its cycle tables",
		Flags: []cli.Flag{
			fileFlag("recording export"),
			saveFlag(),
			remapFlag(),
			&cli.StringFlag{Name: "web", Aliases: []string{"w"}, Usage: "output dictionary (default: web_dictionary setting)"},
		},
		Action: func(c *cli.Context) error {
			dict, err := dictionary(c.String("remap"), cfg.Dictionary)
			if err != nil {
				return fail("filter", err)
			}
			web, err := optionalDictionary(c.String("web"), cfg.WebDictionary)
			if err != nil {
				return fail("filter", err)
			}
			res, err := pipeline.Filter(pipeline.FilterOptions{
				File:          c.String("file"),
				SaveDir:       c.String("save"),
				Dictionary:    dict,
				WebDictionary: web,
			})
			if err != nil {
				return fail("filter", err)
			}
			return respond(c, res)
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the result row of the selected cycle ranges",
		Flags: []cli.Flag{
			fileFlag("recording export"),
			saveFlag(),
			&cli.StringSliceFlag{Name: "range", Aliases: []string{"r"}, Usage: `cycle index range "i j", repeatable`, Required: true},
			&cli.StringFlag{Name: "dict", Aliases: []string{"d"}, Usage: "rename dictionary (default: dictionary setting)"},
			formatFlag(),
		},
		Action: func(c *cli.Context) error {
			var ranges []pipeline.Range
			for _, s := range c.StringSlice("range") {
				r, err := pipeline.ParseRange(s)
				if err != nil {
					return usage("%v", err)
				}
				ranges = append(ranges, r)
			}
			format, err := outputFormat(c)
			if err != nil {
				return usage("%v", err)
			}
			dict, err := dictionary(c.String("dict"), cfg.Dictionary)
			if err != nil {
				return fail("export", err)
			}
			res, err := pipeline.Export(pipeline.ExportOptions{
				File:       c.String("file"),
				SaveDir:    c.String("save"),
				Ranges:     ranges,
				Dictionary: dict,
				Format:     format,
			})
			if err != nil {
				return fail("export", err)
			}
			return respond(c, res)
		},
	}
}

func swriteCommand() *cli.Command {
	return &cli.Command{
		Name:  "swrite",
		Usage: "store a selection in the header and drop the name fields",
		Flags: []cli.Flag{
			fileFlag("recording export"),
			saveFlag(),
			&cli.StringFlag{Name: "value", Aliases: []string{"v"}, Usage: `selection, e.g. "1.5-4.25 6-9"`, Required: true},
		},
		Action: func(c *cli.Context) error {
			res, err := pipeline.SelectionWrite(pipeline.SelectionWriteOptions{
				File:      c.String("file"),
				SaveDir:   c.String("save"),
				Selection: c.String("value"),
			})
			if err != nil {
				return fail("swrite", err)
			}
			return respond(c, res)
		},
	}
}

func concatCommand() *cli.Command {
	return &cli.Command{
		Name:  "concat",
		Usage: "merge result rows by column name",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "file", Aliases: []string{"f"}, Usage: "result file, repeatable"},
			saveFlag(),
			formatFlag(),
			dbFlag(),
			&cli.BoolFlag{Name: "from-db", Usage: "write the rows stored in the cohort database instead of files"},
		},
		Action: func(c *cli.Context) error {
			files := c.StringSlice("file")
			fromDB := c.Bool("from-db")
			if fromDB == (len(files) > 0) {
				return usage("concat needs either --file or --from-db")
			}
			format, err := outputFormat(c)
			if err != nil {
				return usage("%v", err)
			}
			store, err := openCohort(c)
			if err != nil {
				return fail("concat", err)
			}
			if store != nil {
				defer store.Close()
			}

			var res *pipeline.ConcatResult
			if fromDB {
				if store == nil {
					return usage("--from-db needs --db or cohort_db")
				}
				res, err = pipeline.ConcatStored(store, c.String("save"), format)
			} else {
				opts := pipeline.ConcatOptions{Files: files, SaveDir: c.String("save"), Format: format}
				if store != nil {
					opts.Sink = store
				}
				res, err = pipeline.Concat(opts)
			}
			if err != nil {
				return fail("concat", err)
			}
			return respond(c, res)
		},
	}
}

func splitCommand() *cli.Command {
	return &cli.Command{
		Name:  "split",
		Usage: "select the central cycles of every recording in a directory",
		Flags: []cli.Flag{
			fileFlag("input directory"),
			saveFlag(),
			&cli.IntFlag{Name: "percent", Aliases: []string{"p"}, Usage: "share of cycles to keep (default: percent setting)"},
			remapFlag(),
		},
		Action: func(c *cli.Context) error {
			percent := cfg.Percent
			if c.IsSet("percent") {
				percent = c.Int("percent")
			}
			if percent < 0 || percent > 100 {
				return usage("percent %d outside [0,100]", percent)
			}
			dict, err := dictionary(c.String("remap"), cfg.Dictionary)
			if err != nil {
				return fail("split", err)
			}
			outcomes, err := pipeline.Split(pipeline.SplitOptions{
				Dir:        c.String("file"),
				SaveDir:    c.String("save"),
				Percent:    percent,
				Dictionary: dict,
			})
			if err != nil {
				return fail("split", err)
			}
			return respond(c, outcomes)
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "report header problems and recordings per user and posture",
		Flags: []cli.Flag{fileFlag("input directory"), dbFlag()},
		Action: func(c *cli.Context) error {
			report, err := pipeline.Check(c.String("file"))
			if err != nil {
				return fail("check", err)
			}
			store, err := openCohort(c)
			if err != nil {
				return fail("check", err)
			}
			if store != nil {
				defer store.Close()
				if err := report.AddStored(store); err != nil {
					return fail("check", err)
				}
			}
			return respond(c, report)
		},
	}
}

func cleanCommand() *cli.Command {
	return &cli.Command{
		Name:  "clean",
		Usage: "drop the name fields from every header in a directory",
		Flags: []cli.Flag{fileFlag("input directory"), saveFlag()},
		Action: func(c *cli.Context) error {
			outcomes, err := pipeline.Clean(c.String("file"), c.String("save"))
			if err != nil {
				return fail("clean", err)
			}
			return respond(c, outcomes)
		},
	}
}

func diffCommand() *cli.Command {
	return &cli.Command{
		Name:  "diff",
		Usage: "compare the dictionary's raw columns with a recording header",
		Flags: []cli.Flag{
			fileFlag("recording export"),
			remapFlag(),
			&cli.BoolFlag{Name: "json", Usage: "print the lines as JSON"},
		},
		Action: func(c *cli.Context) error {
			dict, err := dictionary(c.String("remap"), cfg.Dictionary)
			if err != nil {
				return fail("diff", err)
			}
			lines, err := pipeline.Diff(c.String("file"), dict)
			if err != nil {
				return fail("diff", err)
			}
			if c.Bool("json") {
				return respond(c, lines)
			}
			fmt.Fprint(c.App.Writer, pipeline.FormatDiff(lines))
			return nil
		},
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "analyse every recording in a directory and export the results",
		Flags: []cli.Flag{
			fileFlag("input directory"),
			saveFlag(),
			&cli.StringFlag{Name: "dict", Aliases: []string{"d"}, Usage: "rename dictionary (default: dictionary setting)"},
			formatFlag(),
			dbFlag(),
		},
		Action: func(c *cli.Context) error {
			format, err := outputFormat(c)
			if err != nil {
				return usage("%v", err)
			}
			dict, err := dictionary(c.String("dict"), cfg.Dictionary)
			if err != nil {
				return fail("batch", err)
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
			defer stop()

			var mailbox *batch.Mailbox
			mailbox = batch.NewMailbox(func() {
				if msg := mailbox.Latest(); msg.Kind == batch.Running {
					fmt.Fprintf(c.App.ErrWriter, "\r%3.0f%% %s", msg.Progress*100, msg.Label)
				}
			})
			runner := batch.NewRunner(gait.Config{Dictionary: dict}, mailbox)
			if err := runner.Start(ctx, c.String("file")); err != nil {
				return fail("batch", err)
			}
			go func() {
				<-ctx.Done()
				runner.Cancel()
			}()
			runner.Wait()
			fmt.Fprintln(c.App.ErrWriter)

			msg := mailbox.Take()
			if msg.Kind != batch.Done {
				return fail("batch", errors.New(msg.Reason))
			}

			store, err := openCohort(c)
			if err != nil {
				return fail("batch", err)
			}
			opts := pipeline.BatchOptions{SaveDir: c.String("save"), Format: format}
			if store != nil {
				defer store.Close()
				opts.Sink = store
			}
			res, err := pipeline.WriteBatch(runner.RunID(), msg.Results, opts)
			if err != nil {
				return fail("batch", err)
			}
			return respond(c, res)
		},
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "print notes for one recording, or write them with --save",
		Flags: []cli.Flag{
			fileFlag("recording export"),
			&cli.StringFlag{Name: "save", Aliases: []string{"s"}, Usage: "write {stem}-notes.txt and {stem}-analysis.json here"},
			&cli.StringFlag{Name: "dict", Aliases: []string{"d"}, Usage: "rename dictionary (default: dictionary setting)"},
			&cli.BoolFlag{Name: "json", Usage: "print the analysis as JSON"},
		},
		Action: func(c *cli.Context) error {
			dict, err := dictionary(c.String("dict"), cfg.Dictionary)
			if err != nil {
				return fail("analyze", err)
			}
			path := c.String("file")
			if save := c.String("save"); save != "" {
				res, err := pipeline.Analyze(pipeline.AnalyzeOptions{File: path, SaveDir: save, Dictionary: dict})
				if err != nil {
					return fail("analyze", err)
				}
				return respond(c, res)
			}
			raw, err := gait.AnalyzeFile(path, gait.Config{Dictionary: dict})
			if err != nil {
				return fail("analyze", err)
			}
			if c.Bool("json") {
				return respond(c, raw)
			}
			fmt.Fprint(c.App.Writer, gait.BuildNotes(filepath.Base(path), raw))
			return nil
		},
	}
}

// respond prints v as one compact JSON line.
func respond(c *cli.Context, v any) error {
	s, err := pipeline.EncodeResponse(v)
	if err != nil {
		return fail("encode response", err)
	}
	fmt.Fprintln(c.App.Writer, s)
	return nil
}

func dictionary(flagValue, fallback string) (*gait.Dictionary, error) {
	path := flagValue
	if path == "" {
		path = fallback
	}
	if path == "" {
		return nil, fmt.Errorf("rename dictionary is required")
	}
	return gait.LoadDictionary(path)
}

// optionalDictionary returns nil when neither the flag nor the setting names
// a file, or when the configured default is absent.
func optionalDictionary(flagValue, fallback string) (*gait.Dictionary, error) {
	if flagValue != "" {
		return gait.LoadDictionary(flagValue)
	}
	if fallback == "" {
		return nil, nil
	}
	if _, err := os.Stat(fallback); err != nil {
		return nil, nil
	}
	return gait.LoadDictionary(fallback)
}

func outputFormat(c *cli.Context) (pipeline.Format, error) {
	if c.IsSet("format") {
		return pipeline.ParseFormat(c.String("format"))
	}
	return pipeline.ParseFormat(cfg.Format)
}

// openCohort returns nil when no database is configured.
func openCohort(c *cli.Context) (*cohort.Store, error) {
	path := cfg.CohortDB
	if c.IsSet("db") {
		path = c.String("db")
	}
	if path == "" {
		return nil, nil
	}
	return cohort.NewStore(path)
}

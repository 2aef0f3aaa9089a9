package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hyperifyio/reportguard/internal/app"
	"github.com/hyperifyio/reportguard/internal/units"
	"github.com/hyperifyio/reportguard/internal/validate"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, app.SystemClock))
}

// cli carries flag values and I/O for one invocation.
type cli struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	clock          app.Clock

	configPath string
	envFiles   []string
	flags      app.Config
	criteria   string
	required   string
	optional   string
	title      string

	app  *app.App
	code int
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer, clock app.Clock) int {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr, clock: clock}
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		if c.code == 0 {
			c.code = app.ExitCode(err)
		}
	}
	return c.code
}

func (c *cli) rootCommand() *cobra.Command {
	def := app.Defaults()
	root := &cobra.Command{
		Use:           "reportguard",
		Short:         "Validate PB daily report renderings against their source",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "Path to a YAML or JSON config file")
	pf.StringSliceVar(&c.envFiles, "env-file", []string{".env"}, "Dotenv files to load before reading the environment")
	pf.BoolVarP(&c.flags.Verbose, "verbose", "v", false, "Verbose logging")
	pf.BoolVar(&c.flags.JSON, "json", false, "Print machine-readable JSON")
	pf.StringVar(&c.flags.SourcePath, "source", "", "Source report (JSON wrapper or text; - for stdin)")
	pf.StringVar(&c.flags.LongFormPath, "long-form", "", "Long-form page export (Markdown or HTML)")
	pf.StringVar(&c.flags.MessagePath, "message", "", "Short message text")
	pf.StringVar(&c.flags.ExpectedDate, "expected-date", "", "Report date (default: yesterday in --timezone)")
	pf.StringVar(&c.flags.ExpectedDay, "expected-day", "", "Korean weekday label for the report date, e.g. 토요일")
	pf.StringVar(&c.flags.Timezone, "timezone", def.Timezone, "IANA timezone used to derive today and yesterday")
	pf.IntVar(&c.flags.MinBrands, "min-brands", def.MinBrands, "Distinct brands needed for the sufficient_brands section")
	pf.IntVar(&c.flags.MinRanked, "min-ranked", def.MinRanked, "Minimum ranked-list entries in the rendering")
	pf.IntVar(&c.flags.WordLimit, "word-limit", def.WordLimit, "Maximum words per message statement")
	pf.IntVar(&c.flags.Window, "window", def.Window, "Brand/amount adjacency window in characters")
	pf.StringVar(&c.required, "required-brands", "", "Comma-separated required brands")
	pf.StringVar(&c.optional, "optional-brands", "", "Comma-separated optional brands")
	pf.StringVar(&c.criteria, "criteria", "", "Comma-separated criteria to evaluate")

	root.AddCommand(
		c.validateCommand("report", "Check the long-form page against the source", app.ReportCriteria),
		c.validateCommand("message", "Check the short message format", app.MessageCriteria),
		c.validateCommand("date", "Check report dates", app.DateCriteria),
		c.validateCommand("units", "Check message amount units", app.UnitsCriteria),
		c.duplicateCommand(),
		c.envelopeCommand(),
		c.convertCommand(),
		c.todayCommand(),
		c.versionCommand(),
	)
	return root
}

// setup resolves configuration in precedence order: defaults, dotenv files,
// config file, environment, then flags set on the command line.
func (c *cli) setup(cmd *cobra.Command) error {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: c.stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("run_id", uuid.NewString()).Logger()

	cfg := app.Defaults()
	if err := app.LoadEnvFiles(c.envFiles...); err != nil {
		c.code = app.ExitUsage
		return err
	}
	if strings.TrimSpace(c.configPath) != "" {
		fc, err := app.LoadConfigFile(c.configPath)
		if err != nil {
			c.code = app.ExitUsage
			return err
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)
	c.applyFlags(cmd, &cfg)

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	a, err := app.New(cfg, c.clock)
	if err != nil {
		c.code = app.ExitUsage
		return err
	}
	c.app = a
	return nil
}

func (c *cli) applyFlags(cmd *cobra.Command, cfg *app.Config) {
	fl := cmd.Flags()
	set := func(name string, apply func()) {
		if fl.Changed(name) {
			apply()
		}
	}
	f := c.flags
	set("verbose", func() { cfg.Verbose = f.Verbose })
	set("json", func() { cfg.JSON = f.JSON })
	set("source", func() { cfg.SourcePath = f.SourcePath })
	set("long-form", func() { cfg.LongFormPath = f.LongFormPath })
	set("message", func() { cfg.MessagePath = f.MessagePath })
	set("expected-date", func() { cfg.ExpectedDate = f.ExpectedDate })
	set("expected-day", func() { cfg.ExpectedDay = f.ExpectedDay })
	set("timezone", func() { cfg.Timezone = f.Timezone })
	set("min-brands", func() { cfg.MinBrands = f.MinBrands })
	set("min-ranked", func() { cfg.MinRanked = f.MinRanked })
	set("word-limit", func() { cfg.WordLimit = f.WordLimit })
	set("window", func() { cfg.Window = f.Window })
	set("required-brands", func() { cfg.RequiredBrands = app.SplitList(c.required) })
	set("optional-brands", func() { cfg.OptionalBrands = app.SplitList(c.optional) })
	set("criteria", func() { cfg.Criteria = app.SplitList(c.criteria) })
	set("lookup", func() { cfg.LookupProvider = f.LookupProvider })
	set("lookup-file", func() { cfg.LookupFile = f.LookupFile })
	set("lookup-timeout", func() { cfg.LookupTimeout = f.LookupTimeout })
}

func (c *cli) validateCommand(use, short string, defaults []validate.Criterion) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vd, err := c.app.Validate(defaults)
			if err != nil {
				return err
			}
			if c.app.Config().JSON {
				if err := c.printJSON(vd.Flat()); err != nil {
					return err
				}
			} else {
				fmt.Fprint(c.stdout, vd.Report())
			}
			c.code = vd.Status()
			return nil
		},
	}
}

func (c *cli) duplicateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplicate",
		Short: "Check whether a report for the expected date was already published",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := c.app.Duplicate(cmd.Context(), c.title)
			c.code = app.DuplicateExitCode(d, err)
			if err != nil {
				return err
			}
			if c.app.Config().JSON {
				return c.printJSON(d)
			}
			fmt.Fprintln(c.stdout, d.Message)
			if d.Latest != nil && d.Latest.URL != "" {
				fmt.Fprintln(c.stdout, d.Latest.URL)
			}
			return nil
		},
	}
	def := app.Defaults()
	cmd.Flags().StringVar(&c.title, "title", "", "Exact page title to search first (default: canonical title)")
	cmd.Flags().StringVar(&c.flags.LookupProvider, "lookup", def.LookupProvider, "Lookup provider: notion or file")
	cmd.Flags().StringVar(&c.flags.LookupFile, "lookup-file", "", "JSON page list for the file provider")
	cmd.Flags().DurationVar(&c.flags.LookupTimeout, "lookup-timeout", def.LookupTimeout, "Overall lookup timeout")
	return cmd
}

func (c *cli) envelopeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "envelope [file]",
		Short: "Check the publishing agent's result wrapper (stdin when no file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if len(args) == 1 && args[0] != "-" {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(c.stdin)
			}
			if err != nil {
				c.code = app.ExitUnreadable
				return err
			}
			res := c.app.Envelope(raw)
			c.code = res.Status
			if c.app.Config().JSON {
				return c.printJSON(res)
			}
			fmt.Fprintln(c.stdout, res.Reason)
			return nil
		},
	}
}

type conversion struct {
	Won     float64 `json:"won"`
	Display string  `json:"display"`
}

func (c *cli) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [amount...]",
		Short: "Show won amounts in the canonical 백만 scale",
		RunE: func(cmd *cobra.Command, args []string) error {
			amounts := units.Examples
			if len(args) > 0 {
				amounts = make([]float64, 0, len(args))
				for _, a := range args {
					v, err := units.ParseAmount(a)
					if err != nil {
						c.code = app.ExitUsage
						return err
					}
					amounts = append(amounts, v)
				}
			}
			out := make([]conversion, len(amounts))
			for i, v := range amounts {
				out[i] = conversion{Won: v, Display: units.ToDisplay(v) + "백만"}
			}
			if c.app.Config().JSON {
				return c.printJSON(out)
			}
			p := message.NewPrinter(language.Korean)
			for _, cv := range out {
				p.Fprintf(c.stdout, "%d원 → %s\n", int64(cv.Won), cv.Display)
			}
			return nil
		},
	}
}

func (c *cli) todayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Print the expected report date, weekday and title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := c.app.ExpectedDate()
			if err != nil {
				return err
			}
			return c.printJSON(app.NewDateInfo(d))
		},
	}
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(c.stdout, "reportguard %s (%s, %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
			return nil
		},
	}
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/licenseaudit/pkg/audit"
	"github.com/matzehuels/licenseaudit/pkg/config"
	"github.com/matzehuels/licenseaudit/pkg/deps"
	"github.com/matzehuels/licenseaudit/pkg/report"
)

// maxFailureDetails caps the failures listed after a scan.
const maxFailureDetails = 10

// errStrict is returned by scan --strict when the report has failures.
var errStrict = errors.New("scan completed with failures (--strict)")

// scanOpts holds command-line flags for the scan command.
type scanOpts struct {
	format          string
	output          string
	concurrency     int
	includeLockOnly bool
	skipPlatform    bool
	exclude         []string
	noCache         bool
	refresh         bool
	strict          bool
	interactive     bool
}

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	opts := &scanOpts{}

	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Report dependency licenses across all repositories under a root",
		Long: `Scan every repository directory under root, read package.json, composer.json
and composer.lock, resolve each production dependency's license and print
every "<name> (<license>)" with the repositories that declare it.

Lookup failures degrade the affected dependency and are summarized on stderr;
use --strict to turn them into a non-zero exit code.`,
		Example: `  # Text report on stdout
  licenseaudit scan ~/src

  # JSON report, four repositories at a time
  licenseaudit scan ~/src --format json --concurrency 4

  # Dependency graph as SVG (format inferred from extension)
  licenseaudit scan ~/src -o licenses.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				c.Config.Root = args[0]
			}
			opts.applyTo(c.Config, cmd.Flags())
			return c.runScan(cmd.Context(), cmd.Flags(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text, json, dot, svg (default text)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", config.DefaultConcurrency, "repositories scanned in parallel")
	cmd.Flags().BoolVar(&opts.includeLockOnly, "include-lock-only", false, "also report composer.lock entries not required by composer.json")
	cmd.Flags().BoolVar(&opts.skipPlatform, "skip-platform", false, "skip platform requirements (php, ext-*, lib-*)")
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "skip repositories matching glob (repeatable)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the registry response cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached registry responses")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with an error if any lookup or manifest failed")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the report in an interactive table")

	return cmd
}

// applyTo overrides cfg with the flags the user set explicitly, so that
// config file and environment values survive unset flags.
func (o *scanOpts) applyTo(cfg *config.Config, flags *pflag.FlagSet) {
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = o.concurrency
	}
	if flags.Changed("include-lock-only") {
		cfg.IncludeLockOnly = o.includeLockOnly
	}
	if flags.Changed("skip-platform") {
		cfg.SkipPlatform = o.skipPlatform
	}
	if flags.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, o.exclude...)
	}
}

// outputFormat picks the report format. An explicit --format or configured
// format wins; otherwise the output file extension decides.
func (o *scanOpts) outputFormat(cfg *config.Config, flags *pflag.FlagSet) (report.Format, error) {
	f, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return "", err
	}
	if o.output != "" && !flags.Changed("format") && cfg.Format == config.DefaultFormat {
		f = report.FormatFromPath(o.output, f)
	}
	return f, nil
}

func (c *CLI) runScan(ctx context.Context, flags *pflag.FlagSet, opts *scanOpts) error {
	cfg := c.Config
	if err := cfg.Validate(); err != nil {
		return err
	}
	root, err := cfg.ResolveRoot()
	if err != nil {
		return err
	}
	format, err := opts.outputFormat(cfg, flags)
	if err != nil {
		return err
	}

	store, keyer := c.newCache(ctx, opts.noCache)
	defer store.Close()

	auditor, err := c.newAuditor(store, keyer, deps.Options{
		Refresh:         opts.refresh,
		IncludeLockOnly: cfg.IncludeLockOnly,
		SkipPlatform:    cfg.SkipPlatform,
	})
	if err != nil {
		return err
	}

	// The spinner would interleave with debug logs.
	spinner := newSpinnerWithContext(ctx, "Scanning repositories...")
	var progress func(scanned, total int64)
	if !c.verbose {
		progress = scanProgress(spinner)
		spinner.Start()
	}
	stats, restore := installHooks(c.Logger, progress)
	defer restore()

	prog := newProgress(c.Logger)
	rep, err := auditor.Run(ctx, root)
	spinner.Stop()
	if err != nil {
		return err
	}
	c.Logger.Debug("audit finished", "run", rep.RunID, "repositories", len(rep.Repositories))
	prog.done(fmt.Sprintf("Scanned %s", plural(len(rep.Repositories), "repository", "repositories")))

	if opts.interactive {
		if err := browseReport(ctx, rep); err != nil {
			return err
		}
	} else if err := c.writeReport(ctx, rep, format, opts.output); err != nil {
		return err
	}

	printScanSummary(rep, stats.snapshot())

	if opts.strict && rep.HasFailures() {
		return fmt.Errorf("%w: %s", errStrict, plural(len(rep.Failures), "failure", "failures"))
	}
	return nil
}

// writeReport writes rep to path, or to c.Out when path is empty.
func (c *CLI) writeReport(ctx context.Context, rep *audit.Report, f report.Format, path string) error {
	if path == "" {
		return report.Write(ctx, c.Out, rep, f)
	}
	if err := report.Export(ctx, path, rep, f); err != nil {
		return err
	}
	printSuccess("Wrote %s report", f)
	printFile(path)
	return nil
}

// printScanSummary prints run statistics and the first failures.
func printScanSummary(rep *audit.Report, s statsSnapshot) {
	printNewline()
	printStats(len(rep.Repositories), len(rep.Entries), len(rep.Failures), s)
	if !rep.HasFailures() {
		return
	}

	printWarning("%s degraded", plural(len(rep.Failures), "operation", "operations"))
	for i, f := range rep.Failures {
		if i == maxFailureDetails {
			printDetail("... and %d more", len(rep.Failures)-maxFailureDetails)
			printNextStep("Full list", "licenseaudit scan --format json")
			break
		}
		subject := f.Ecosystem
		if f.Dependency != "" {
			subject = f.Dependency
		}
		printDetail("%s: %s [%s] %s", f.Repository, subject, f.Code, f.Message)
	}
}

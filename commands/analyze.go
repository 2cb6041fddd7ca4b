package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/activecm/cowrie-analyzer/config"
	"github.com/activecm/cowrie-analyzer/parser"
	"github.com/activecm/cowrie-analyzer/pkg/chart"
	"github.com/activecm/cowrie-analyzer/pkg/counter"
	"github.com/activecm/cowrie-analyzer/pkg/credential"
	"github.com/activecm/cowrie-analyzer/pkg/geo"
	"github.com/activecm/cowrie-analyzer/pkg/metrics"
	"github.com/activecm/cowrie-analyzer/printing"
	"github.com/activecm/cowrie-analyzer/reporting"
	"github.com/activecm/cowrie-analyzer/resources"
	"github.com/activecm/cowrie-analyzer/util"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

type (
	analyzeOptions struct {
		human      bool
		delimiter  string
		limit      int
		html       bool
		openReport bool
		progress   bool

		out io.Writer
	}
)

func init() {
	analyzeCommand := cli.Command{
		Name:      "analyze",
		Usage:     "Print login statistics for a directory of cowrie JSON logs and chart them",
		ArgsUsage: "[log directory]",
		Flags: []cli.Flag{
			configFlag,
			humanFlag,
			delimFlag,
			limitFlag,
			htmlFlag,
			openFlag,
			noProgressFlag,
		},
		Action: func(c *cli.Context) error {
			res := resources.InitResources(c.String("config"))

			logDir := c.Args().Get(0)
			if logDir == "" {
				logDir = res.Config.S.Paths.DefaultLogDir
			}

			opts := analyzeOptions{
				human:      c.Bool("human-readable"),
				delimiter:  c.String("delimiter"),
				limit:      c.Int("limit"),
				html:       c.Bool("html") || c.Bool("open"),
				openReport: c.Bool("open"),
				progress:   !c.Bool("no-progress"),
				out:        os.Stdout,
			}

			if err := analyze(res, logDir, opts); err != nil {
				res.Logger().WithField("error", err.Error()).Error("Analysis failed")
				return cli.NewExitError(err.Error(), -1)
			}
			return nil
		},
	}

	bootstrapCommands(analyzeCommand)
}

// analyze runs the whole pipeline over logDir. Any failure aborts the run.
func analyze(res *resources.Resources, logDir string, opts analyzeOptions) error {
	start := time.Now()
	logger := res.Logger().WithField("log_dir", logDir)

	importer := parser.NewFSImporter(res)
	var progress io.Writer
	if opts.progress {
		progress = opts.out
	}
	importer.SetOutput(opts.out, progress)

	events, err := importer.Load(logDir)
	if err != nil {
		return err
	}

	agg := credential.NewAggregator(res.Config.R.Filtering.Whitelist, res.Config.S.Buckets.HourWidth)
	if err := agg.AddAll(events); err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"events":      len(events),
		"attempts":    agg.SSHAttempts,
		"whitelisted": agg.Skipped(),
		"non_login":   agg.Ignored(),
	}).Info("Aggregated login attempts")

	printOpts := printing.Options{
		Human:     opts.human,
		Delimiter: opts.delimiter,
		Limits:    rankingLimits(res, opts.limit),
	}
	if err := printing.PrintSummary(opts.out, agg, printOpts); err != nil {
		return err
	}

	charts, err := renderCharts(res, agg, opts.out)
	if err != nil {
		return err
	}

	geoReport, err := attributeCountries(res, agg)
	if err != nil {
		return err
	}
	if geoReport != nil {
		if err := printing.PrintGeo(opts.out, geoReport, printOpts); err != nil {
			return err
		}
	}

	if path := res.Config.S.Metrics.TextfilePath; path != "" {
		exporter := metrics.NewExporter()
		exporter.Observe(agg)
		if geoReport != nil {
			exporter.ObserveGeo(geoReport)
		}
		if err := exporter.Write(res.Config.S.ResolvePath(path), time.Now()); err != nil {
			return err
		}
	}

	if opts.html {
		report := reporting.Report{
			LogDir:     logDir,
			Aggregator: agg,
			Charts:     charts,
			Geo:        geoReport,
			Limits:     printOpts.Limits,
		}
		page, err := reporting.PrintHTML(res, opts.out, res.Config.S.ResolvePath(res.Config.S.Paths.ImageDir), report)
		if err != nil {
			return err
		}
		if opts.openReport {
			if err := reporting.Open(page); err != nil {
				// the report is on disk already
				fmt.Fprintf(opts.out, "[!] Could not open %s: %s\n", page, err.Error())
			}
		}
	}

	logger.WithFields(log.Fields{
		"current_time": time.Now().Format(util.TimeFormat),
		"total_time":   time.Since(start).String(),
	}).Info("Finished analysis")
	return nil
}

// renderCharts draws the time series and the three top 10 bar charts.
// Charts without data are skipped with a notice.
func renderCharts(res *resources.Resources, agg *credential.Aggregator, out io.Writer) ([]reporting.Chart, error) {
	cfg := res.Config.S.Charts
	renderer := chart.NewRenderer(res.Config.S.ResolvePath(res.Config.S.Paths.ImageDir), cfg.Width, cfg.Height, cfg.Bars)
	renderer.SetOutput(out)

	var charts []reporting.Chart
	record := func(spec chart.Spec, path string, err error) error {
		if errors.Is(err, chart.ErrNoData) {
			fmt.Fprintf(out, "[!] Skipping %s: no login attempts to plot\n", spec.Title)
			return nil
		}
		if err != nil {
			return err
		}
		charts = append(charts, reporting.Chart{Title: spec.Title, Path: path})
		return nil
	}

	lineSpec := chart.Spec{Title: "Attack Attempts per Day", XLabel: "Time", YLabel: "SSH Attempts"}
	path, err := renderer.Line(lineSpec, agg.SSHTimes)
	if err = record(lineSpec, path, err); err != nil {
		return nil, err
	}

	bars := []struct {
		spec    chart.Spec
		counter *counter.Counter[string]
	}{
		{chart.Spec{Title: "Top 10 Username Attempts", XLabel: "Count", YLabel: "Username"}, agg.Usernames},
		{chart.Spec{Title: "Top 10 Password Attempts", XLabel: "Count", YLabel: "Password"}, agg.Passwords},
		{chart.Spec{Title: "Top 10 Username-Password Pair", XLabel: "Count", YLabel: "Username-Password"}, agg.Pairs},
	}
	for _, bar := range bars {
		path, err := renderer.Bar(bar.spec, bar.counter)
		if err = record(bar.spec, path, err); err != nil {
			return nil, err
		}
	}
	return charts, nil
}

// attributeCountries resolves every source address when the country
// database exists. A missing database is not an error, the step is skipped.
func attributeCountries(res *resources.Resources, agg *credential.Aggregator) (*geo.Report, error) {
	dbPath := res.Config.S.ResolvePath(res.Config.S.GeoIP.DatabasePath)
	exists, err := util.Exists(dbPath)
	if err != nil {
		return nil, err
	}
	if !exists {
		res.Logger().WithField("path", dbPath).Debug("Country database not found, skipping attribution")
		return nil, nil
	}

	resolver, err := geo.OpenMaxMind(dbPath, res.Config.S.GeoIP.Language)
	if err != nil {
		return nil, err
	}
	defer resolver.Close()

	return attribute(res, resolver, agg)
}

func attribute(res *resources.Resources, resolver geo.Resolver, agg *credential.Aggregator) (*geo.Report, error) {
	report, err := geo.Attribute(resolver, agg.SourceIPs)
	if err != nil {
		return nil, err
	}

	res.Logger().WithFields(log.Fields{
		"ips":       report.UniqueIPs,
		"countries": report.ByIP.Len(),
	}).Info("Attributed source addresses")
	return report, nil
}

// rankingLimits applies a non zero --limit to every ranking
func rankingLimits(res *resources.Resources, limit int) config.RankingStaticCfg {
	limits := res.Config.S.Ranking
	if limit > 0 {
		limits.SourceIPs = limit
		limits.Usernames = limit
		limits.Passwords = limit
		limits.Pairs = limit
		limits.Countries = limit
	}
	return limits
}

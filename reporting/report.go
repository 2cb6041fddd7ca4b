// Package reporting writes a static HTML page summarizing a run
package reporting

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/activecm/cowrie-analyzer/config"
	"github.com/activecm/cowrie-analyzer/pkg/credential"
	"github.com/activecm/cowrie-analyzer/pkg/geo"
	"github.com/activecm/cowrie-analyzer/printing"
	htmlTempl "github.com/activecm/cowrie-analyzer/reporting/templates"
	"github.com/activecm/cowrie-analyzer/resources"
	"github.com/activecm/cowrie-analyzer/util"
	log "github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
)

// IndexFile is the name of the report page
const IndexFile = "index.html"

type (
	// Chart is an image written by the chart renderer
	Chart struct {
		Title string
		Path  string
	}

	// Report is everything a run produced
	Report struct {
		LogDir     string
		Aggregator *credential.Aggregator
		Charts     []Chart
		// Geo is nil when attribution did not run
		Geo *geo.Report
		// Limits caps the ranking tables, matching the console output
		Limits config.RankingStaticCfg
	}
)

// PrintHTML writes index.html and its style sheet into dir, next to the
// chart images, and returns the path of the page. Status lines go to w.
func PrintHTML(res *resources.Resources, w io.Writer, dir string, report Report) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	err := os.WriteFile(filepath.Join(dir, "style.css"), htmlTempl.CSStempl, 0644)
	if err != nil {
		return "", err
	}

	out, err := template.New(IndexFile).Parse(htmlTempl.Hometempl)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, IndexFile)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info := reportingInfo(res, dir, report)
	if err := out.Execute(f, info); err != nil {
		return "", err
	}

	fmt.Fprintf(w, "[-] Wrote report to %s\n", path)
	res.Logger().WithFields(log.Fields{
		"path":   path,
		"charts": len(report.Charts),
	}).Info("Wrote HTML report")
	return path, nil
}

// Open shows the report in the default browser
func Open(path string) error {
	return open.Run(path)
}

func reportingInfo(res *resources.Resources, dir string, report Report) htmlTempl.ReportingInfo {
	limits := report.Limits
	info := htmlTempl.ReportingInfo{
		Title:     "Cowrie Analyzer",
		Generated: time.Now().Format(util.TimeFormat),
		Version:   res.Config.S.Version,
		LogDir:    report.LogDir,
		Attempts:  report.Aggregator.SSHAttempts,
	}

	for _, c := range report.Charts {
		file, err := filepath.Rel(dir, c.Path)
		if err != nil {
			file = filepath.Base(c.Path)
		}
		info.Charts = append(info.Charts, htmlTempl.Chart{Title: c.Title, File: file})
	}

	info.Rankings = tables(printing.SummaryRankings(report.Aggregator, limits))

	if report.Geo != nil {
		geoInfo := &htmlTempl.GeoInfo{
			Rankings: tables(printing.GeoRankings(report.Geo, limits.Countries)),
		}
		for _, stat := range printing.GeoStats(report.Geo) {
			geoInfo.Stats = append(geoInfo.Stats, htmlTempl.Stat{Title: stat.Title, Value: stat.Value})
		}
		info.Geo = geoInfo
	}
	return info
}

func tables(rankings []printing.Ranking) []htmlTempl.Table {
	out := make([]htmlTempl.Table, 0, len(rankings))
	for _, ranking := range rankings {
		out = append(out, htmlTempl.Table{
			Title:   ranking.Title,
			Headers: ranking.Headers,
			Rows:    ranking.Rows(),
		})
	}
	return out
}

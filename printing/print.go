// Package printing writes the console report of a run
package printing

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/activecm/cowrie-analyzer/config"
	"github.com/activecm/cowrie-analyzer/pkg/counter"
	"github.com/activecm/cowrie-analyzer/pkg/credential"
	"github.com/activecm/cowrie-analyzer/pkg/geo"
	"github.com/olekukonko/tablewriter"
)

type (
	// Options controls how the rankings are written
	Options struct {
		// Human renders aligned tables instead of delimited lines
		Human bool
		// Delimiter separates the columns of the delimited output
		Delimiter string
		// Limits caps the length of each ranking
		Limits config.RankingStaticCfg
	}

	// Ranking is a titled, ordered list of counted keys
	Ranking struct {
		Title   string
		Headers []string
		Entries []counter.Entry[string]
	}

	// Stat is a single titled number
	Stat struct {
		Title string
		Value int64
	}
)

// Rows renders the entries as table rows
func (r Ranking) Rows() [][]string {
	rows := make([][]string, 0, len(r.Entries))
	for _, entry := range r.Entries {
		rows = append(rows, []string{entry.Key, i(entry.Count)})
	}
	return rows
}

// SummaryRankings returns the credential rankings in report order
func SummaryRankings(agg *credential.Aggregator, limits config.RankingStaticCfg) []Ranking {
	return []Ranking{
		{
			Title:   "most common source addresses",
			Headers: []string{"Source IP", "Attempts"},
			Entries: agg.SourceIPs.Top(limits.SourceIPs),
		},
		{
			Title:   "most common username attempts",
			Headers: []string{"Username", "Attempts"},
			Entries: agg.Usernames.Top(limits.Usernames),
		},
		{
			Title:   "most common password attempts",
			Headers: []string{"Password", "Attempts"},
			Entries: agg.Passwords.Top(limits.Passwords),
		},
		{
			Title:   "most common username/password combos",
			Headers: []string{"Username:Password", "Attempts"},
			Entries: agg.Pairs.Top(limits.Pairs),
		},
	}
}

// GeoStats returns the unique counts of an attribution pass
func GeoStats(report *geo.Report) []Stat {
	return []Stat{
		{Title: "unique source IPs", Value: int64(report.UniqueIPs)},
		{Title: "unique countries for source IPs", Value: int64(report.ByIP.Len())},
		{Title: "unique countries for overall attacks", Value: int64(report.ByVolume.Len())},
	}
}

// GeoRankings returns the country rankings of an attribution pass
func GeoRankings(report *geo.Report, limit int) []Ranking {
	return []Ranking{
		{
			Title:   "most common countries for source IPs",
			Headers: []string{"Country", "Source IPs"},
			Entries: report.ByIP.Top(limit),
		},
		{
			Title:   "most common countries for overall attacks",
			Headers: []string{"Country", "Attempts"},
			Entries: report.ByVolume.Top(limit),
		},
	}
}

// PrintSummary writes the login attempt totals followed by the credential
// rankings
func PrintSummary(w io.Writer, agg *credential.Aggregator, opts Options) error {
	if _, err := fmt.Fprintf(w, "telnet attempts: %d\n", agg.TelnetAttempts); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "SSH attempts: %d\n", agg.SSHAttempts); err != nil {
		return err
	}
	for _, ranking := range SummaryRankings(agg, opts.Limits) {
		if err := printRanking(w, ranking, opts); err != nil {
			return err
		}
	}
	return nil
}

// PrintGeo writes the country attribution report
func PrintGeo(w io.Writer, report *geo.Report, opts Options) error {
	stats := GeoStats(report)
	rankings := GeoRankings(report, opts.Limits.Countries)

	if err := printStat(w, stats[0]); err != nil {
		return err
	}
	// each country count is followed by its ranking
	for idx, ranking := range rankings {
		if err := printStat(w, stats[idx+1]); err != nil {
			return err
		}
		if err := printRanking(w, ranking, opts); err != nil {
			return err
		}
	}
	return nil
}

func printStat(w io.Writer, stat Stat) error {
	_, err := fmt.Fprintf(w, "%s: %d\n", stat.Title, stat.Value)
	return err
}

func printRanking(w io.Writer, ranking Ranking, opts Options) error {
	if _, err := fmt.Fprintf(w, "%s:\n", ranking.Title); err != nil {
		return err
	}
	if opts.Human {
		return showRankingHuman(w, ranking)
	}
	delim := opts.Delimiter
	if delim == "" {
		delim = ","
	}
	return showRanking(w, ranking, delim)
}

func showRanking(w io.Writer, ranking Ranking, delim string) error {
	// Print the headers and values, separated by a delimiter
	if _, err := fmt.Fprintln(w, strings.Join(ranking.Headers, delim)); err != nil {
		return err
	}
	for _, row := range ranking.Rows() {
		if _, err := fmt.Fprintln(w, strings.Join(row, delim)); err != nil {
			return err
		}
	}
	return nil
}

func showRankingHuman(w io.Writer, ranking Ranking) error {
	table := tablewriter.NewWriter(w)
	table.SetColWidth(100)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(ranking.Headers)
	table.AppendBulk(ranking.Rows())
	table.Render()
	return nil
}

func i(i int64) string {
	return strconv.FormatInt(i, 10)
}

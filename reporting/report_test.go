package reporting

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/activecm/cowrie-analyzer/config"
	"github.com/activecm/cowrie-analyzer/parser/parsetypes"
	"github.com/activecm/cowrie-analyzer/pkg/counter"
	"github.com/activecm/cowrie-analyzer/pkg/credential"
	"github.com/activecm/cowrie-analyzer/pkg/geo"
	"github.com/activecm/cowrie-analyzer/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAggregator(t *testing.T) *credential.Aggregator {
	t.Helper()
	agg := credential.NewAggregator(nil, 24)
	require.NoError(t, agg.AddAll([]parsetypes.Event{
		parsetypes.NewLoginEvent(parsetypes.LoginFailed, "2023-03-24T10:15:00Z", "1.2.3.4", "root", "<script>alert(1)</script>"),
		parsetypes.NewLoginEvent(parsetypes.LoginFailed, "2023-03-24T10:16:00Z", "1.2.3.4", "admin", "admin"),
	}))
	return agg
}

func TestPrintHTML(t *testing.T) {
	res := resources.InitTestResources(t)
	dir := filepath.Join(t.TempDir(), "img")

	report := Report{
		LogDir:     "log",
		Aggregator: testAggregator(t),
		Charts: []Chart{
			{Title: "Attack Attempts per Day", Path: filepath.Join(dir, "Attack_Attempts_per_Day.png")},
		},
		Limits: res.Config.S.Ranking,
	}

	out := &bytes.Buffer{}
	path, err := PrintHTML(res, out, dir, report)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, IndexFile), path)
	assert.Equal(t, "[-] Wrote report to "+path+"\n", out.String())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(contents)

	assert.Contains(t, page, "2 SSH login attempts in log")
	assert.Contains(t, page, `src="Attack_Attempts_per_Day.png"`)
	assert.Contains(t, page, "most common username/password combos")
	assert.Contains(t, page, "<td>1.2.3.4</td><td>2</td>")
	assert.NotContains(t, page, "<script>")
	assert.Contains(t, page, "&lt;script&gt;")
	assert.NotContains(t, page, `id="countries"`)

	assert.FileExists(t, filepath.Join(dir, "style.css"))
}

func TestPrintHTMLGeo(t *testing.T) {
	res := resources.InitTestResources(t)
	dir := t.TempDir()

	report := &geo.Report{UniqueIPs: 1, ByIP: counter.New[string](), ByVolume: counter.New[string]()}
	report.ByIP.Increment("Brazil")
	report.ByVolume.Add("Brazil", 2)

	path, err := PrintHTML(res, &bytes.Buffer{}, dir, Report{
		LogDir:     "log",
		Aggregator: testAggregator(t),
		Geo:        report,
		Limits:     res.Config.S.Ranking,
	})
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(contents)

	assert.Contains(t, page, `id="countries"`)
	assert.Contains(t, page, "unique source IPs: 1")
	assert.Contains(t, page, "<td>Brazil</td><td>2</td>")
	assert.Contains(t, page, "No charts were rendered.")
}

func TestPrintHTMLLimits(t *testing.T) {
	res := resources.InitTestResources(t)
	dir := t.TempDir()

	report := Report{
		LogDir:     "log",
		Aggregator: testAggregator(t),
		Limits:     config.RankingStaticCfg{SourceIPs: 1, Usernames: 1, Passwords: 1, Pairs: 1, Countries: 1},
	}
	path, err := PrintHTML(res, &bytes.Buffer{}, dir, report)
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(contents)

	// root and admin each tried once, only the first seen makes the cut
	assert.Contains(t, page, "<td>root</td><td>1</td>")
	assert.NotContains(t, page, "<td>admin</td>")
}

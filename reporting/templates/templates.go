package templates

//ReportingInfo fills the report template
type ReportingInfo struct {
	Title     string
	Generated string
	Version   string
	LogDir    string
	Attempts  int64
	Charts    []Chart
	Rankings  []Table
	Geo       *GeoInfo
}

//Chart is a rendered image next to the report
type Chart struct {
	Title string
	File  string
}

//Table is a titled ranking
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

//Stat is a titled number
type Stat struct {
	Title string
	Value int64
}

//GeoInfo holds the country attribution section
type GeoInfo struct {
	Stats    []Stat
	Rankings []Table
}

var header = `
<head>
<meta content="text/html;charset=utf-8" http-equiv="Content-Type">
<meta content="utf-8" http-equiv="encoding">
<title>{{.Title}}</title>
<link rel="stylesheet" type="text/css" href="./style.css">
</head>
<ul>
  <li><a href="./index.html">{{.Title}}</a></li>
  <li><a href="#charts">Charts</a></li>
  <li><a href="#rankings">Rankings</a></li>
  {{if .Geo}}<li><a href="#countries">Countries</a></li>{{end}}
  <li style="float:right"><a>{{.Version}}</a></li>
</ul>
`

// The ranking tables are written as sub templates so that every cell
// goes through html/template escaping. Usernames and passwords are
// attacker controlled.
var tables = `
{{define "table"}}
<h2>{{.Title}}</h2>
<div class="container">
  <table>
    <tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
    {{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
    {{end}}
  </table>
</div>
{{end}}
`

// Hometempl is the single page report
var Hometempl = tables + header + `
<p>
  <div class="info">
    {{.Attempts}} SSH login attempts in {{.LogDir}}, generated {{.Generated}}
  </div>
</p>
<h1 id="charts">Charts</h1>
{{if .Charts}}
<div class="charts">
  {{range .Charts}}<figure><img src="{{.File}}" alt="{{.Title}}"><figcaption>{{.Title}}</figcaption></figure>
  {{end}}
</div>
{{else}}
<div class="info">No charts were rendered.</div>
{{end}}
<h1 id="rankings">Rankings</h1>
{{range .Rankings}}{{template "table" .}}{{end}}
{{with .Geo}}
<h1 id="countries">Countries</h1>
<div class="info">
  {{range .Stats}}{{.Title}}: {{.Value}}<br>{{end}}
</div>
{{range .Rankings}}{{template "table" .}}{{end}}
{{end}}
`

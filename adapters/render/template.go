package render

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Result.Startup.DisplayName}} | Evaluation Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 0; color: #1a202c; }
.container { max-width: 900px; margin: 0 auto; padding: 2rem; }
header { background: #1a365d; color: #fff; padding: 2rem; }
header h1 { margin: 0 0 .25rem; }
header .meta { opacity: .8; font-size: .9rem; }
h2 { border-bottom: 2px solid #e2e8f0; padding-bottom: .35rem; margin-top: 2.25rem; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #e2e8f0; padding: .5rem .75rem; text-align: left; }
th { background: #f7fafc; }
.overall { font-size: 2.25rem; font-weight: 700; color: #2b6cb0; }
.flag { border-left: 4px solid #e53e3e; background: #fff5f5; padding: .5rem .75rem; margin: .5rem 0; }
.flag.low { border-color: #d69e2e; background: #fffff0; }
.flag.medium { border-color: #dd6b20; background: #fffaf0; }
.tagline { font-style: italic; font-size: 1.15rem; color: #4a5568; }
.badge { display: inline-block; padding: .15rem .6rem; border-radius: 999px; background: #edf2f7; font-size: .85rem; }
footer { color: #718096; font-size: .8rem; margin-top: 3rem; }
</style>
</head>
<body>
<header>
<div class="container">
<h1>{{.Result.Startup.DisplayName}}</h1>
<div class="meta">{{.Result.Startup.SectorOrDefault}} &middot; {{.Result.Startup.StageOrDefault}} &middot; generated {{.Result.CompletedAt.Format "2 Jan 2006 15:04 MST"}}</div>
</div>
</header>
<div class="container">

{{with .Commentary}}
<h2>Executive Summary</h2>
{{markdown .ExecutiveSummary}}
{{if .KeyHighlights}}
<ul>
{{range .KeyHighlights}}<li>{{.}}</li>
{{end}}
</ul>
{{end}}
{{end}}

{{with .Result.Score}}
<h2>Scoring</h2>
<p class="overall">{{printf "%.2f" .Overall}} / 10</p>
<table>
<tr><th>Dimension</th><th>Score</th><th>Weight</th><th>Reasoning</th></tr>
{{$s := .}}
{{range $dim, $ds := .Breakdown}}
<tr><td>{{$dim}}</td><td>{{score10 $ds.Score}}</td><td>{{pct (index $s.Weights $dim)}}</td><td>{{$ds.Reasoning}}</td></tr>
{{end}}
</table>
{{end}}

{{with .Result.Critique}}
<h2>Risk Assessment</h2>
<p>Overall risk: <span class="badge">{{.RiskLevel}}</span>{{if .RuleBased}} <span class="badge">rule-based</span>{{end}}</p>
{{range .RedFlags}}
<div class="flag {{.Severity | lower}}"><strong>{{.Issue}}</strong> ({{.Severity}})<br>{{.Reason}}</div>
{{end}}
<p>{{.Summary}}</p>
{{end}}

{{with .Result.Narrative}}
<h2>Narrative</h2>
<p class="tagline">&ldquo;{{.Tagline}}&rdquo;</p>
<p><strong>Vision.</strong> {{.Vision}}</p>
<p><strong>Differentiation.</strong> {{.Differentiation}}</p>
<p><strong>Why now.</strong> {{.Timing}}</p>
{{end}}

{{with .Result.Benchmark}}
<h2>Benchmarks &mdash; {{.Industry}}</h2>
<p>Overall position: <span class="badge">{{.OverallPosition}}</span></p>
<table>
<tr><th>Metric</th><th>Startup</th><th>Sector Average</th><th>Percentile</th><th>Insight</th></tr>
{{range .Comparisons}}
<tr><td>{{.Metric}}</td><td>{{.StartupValue}}</td><td>{{.SectorAvg}}</td><td>{{.Percentile}}</td><td>{{.Insight}}</td></tr>
{{end}}
</table>
<p>{{.Summary}}</p>
{{end}}

{{with .Commentary}}
<h2>Investment Thesis</h2>
{{markdown .InvestmentThesis}}
<h2>Risk Summary</h2>
{{markdown .RiskSummary}}
<h2>Recommendation</h2>
<p><span class="badge">{{.Recommendation}}</span></p>
{{end}}

<footer>Report ID {{with .Result.Artifact}}{{.ReportID}}{{end}} &middot; Evaluation {{.Result.EvaluationID}}</footer>
</div>
</body>
</html>`

package report

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/CameronDeb/meta-aria-2/internal/metrics"
	"github.com/CameronDeb/meta-aria-2/internal/models"
)

func tremorChart(tremorPerFrame []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Hand Tremor Over Session",
			Subtitle: "High-frequency acceleration component per frame",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frame"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Scale: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	frames := make([]int, len(tremorPerFrame))
	items := make([]opts.LineData, 0, len(tremorPerFrame))
	for i, v := range tremorPerFrame {
		frames[i] = i
		items = append(items, opts.LineData{Value: v})
	}

	line.SetXAxis(frames).AddSeries("Tremor", items).
		SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}

func performanceChart(perf models.PerformanceMetrics) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Performance Components",
			Subtitle: fmt.Sprintf("Overall score: %.1f/100", perf.OverallScore),
		}),
		charts.WithYAxisOpts(opts.YAxis{Max: 10}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	bar.SetXAxis([]string{"Technical Skill", "Stress Management", "Consistency"}).
		AddSeries("Score", []opts.BarData{
			{Value: perf.TechnicalSkill},
			{Value: perf.StressManagement},
			{Value: perf.Consistency},
		})
	return bar
}

// benchmarkChart compares the session's benchmark metrics against the
// expert reference values, side by side.
func benchmarkChart(recs []metrics.TrainingRecommendation) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Gaps vs Expert Benchmark",
			Subtitle: "Priority training areas",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	names := make([]string, 0, len(recs))
	session := make([]opts.BarData, 0, len(recs))
	expert := make([]opts.BarData, 0, len(recs))
	for _, rec := range recs {
		names = append(names, rec.Metric)
		session = append(session, opts.BarData{Value: rec.Value})
		expert = append(expert, opts.BarData{Value: rec.Expert})
	}

	bar.SetXAxis(names).
		AddSeries("Session", session).
		AddSeries("Expert", expert)
	return bar
}

func overallGauge(score float64) *charts.Gauge {
	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Overall Performance"}),
	)
	gauge.AddSeries("Performance", []opts.GaugeData{{Name: "Score", Value: score}})
	return gauge
}

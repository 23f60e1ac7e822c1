package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samber/lo"
)

// RenderChart 绘制学习曲线
// 功能：横轴为试验序号，纵轴为每轮累计奖励、负奖励之和与步数
func RenderChart(w io.Writer, records []TrialRecord) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "smartcab learning curve",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)
	line.SetXAxis(lo.Map(records, func(r TrialRecord, _ int) string {
		return fmt.Sprint(r.Trial)
	}))
	line.AddSeries("reward", lo.Map(records, func(r TrialRecord, _ int) opts.LineData {
		return opts.LineData{Value: r.Reward}
	}))
	line.AddSeries("errors", lo.Map(records, func(r TrialRecord, _ int) opts.LineData {
		return opts.LineData{Value: r.Errors}
	}))
	line.AddSeries("steps", lo.Map(records, func(r TrialRecord, _ int) opts.LineData {
		return opts.LineData{Value: r.Steps}
	}))

	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(w)
}

// WriteChart 将学习曲线写入html文件
func WriteChart(path string, records []TrialRecord) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("output: chart: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: chart: %w", err)
	}
	defer f.Close()
	if err := RenderChart(f, records); err != nil {
		return fmt.Errorf("output: chart: %w", err)
	}
	log.Infof("learning curve saved to %s", path)
	return nil
}

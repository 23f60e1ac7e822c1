package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const (
	trialSheet   = "Trials"
	summarySheet = "Summary"
)

// WriteExcel 将试验明细与汇总写入xlsx文件
// 功能：Trials表每轮一行，Summary表为汇总的键值对
// 参数：path-文件路径（目录不存在时创建），records-试验记录
func WriteExcel(path string, records []TrialRecord) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("close excel file err: %v", err)
		}
	}()

	if _, err := f.NewSheet(trialSheet); err != nil {
		return fmt.Errorf("output: excel: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("output: excel: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("output: excel: %w", err)
	}

	headers := []string{"trial", "start", "destination", "initial_deadline", "remaining_deadline", "steps", "reward", "errors", "outcome", "q_table_size"}
	if err := f.SetSheetRow(trialSheet, "A1", &headers); err != nil {
		return fmt.Errorf("output: excel: %w", err)
	}
	for i, r := range records {
		row := []any{
			r.Trial,
			r.Start.String(),
			r.Destination.String(),
			r.InitialDeadline,
			r.RemainingDeadline,
			r.Steps,
			r.Reward,
			r.Errors,
			r.Outcome.String(),
			r.QTableSize,
		}
		if err := f.SetSheetRow(trialSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("output: excel: %w", err)
		}
	}

	s := Summarize(records)
	summary := [][]any{
		{"trials", s.Trials},
		{"reached", s.Reached},
		{"late", s.Late},
		{"aborted", s.Aborted},
		{"unfinished", s.Unfinished},
		{"success_rate", s.SuccessRate},
		{"total_reward", s.TotalReward},
		{"total_errors", s.TotalErrors},
		{"mean_reward", s.MeanReward},
		{"std_reward", s.StdReward},
	}
	for i, row := range summary {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("output: excel: %w", err)
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("output: excel: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("output: excel: %w", err)
	}
	log.Infof("trial report saved to %s", path)
	return nil
}

package dailylog

import "wisefido-carelog/internal/models"

// NormalizeForSheet 将全部类别转换为打印摘要
//
// 每个有记录的类别恰好一行，按 DailyRecords 的顺序输出；
// 没有记录的类别不输出任何行，调用方不能假设输出长度固定。
func NormalizeForSheet(daily DailyRecords) []models.SummaryLine {
	lines := make([]models.SummaryLine, 0, len(daily))
	for _, c := range daily {
		if line, ok := NormalizerFor(c.Category).ToSummaryLine(c.Items); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

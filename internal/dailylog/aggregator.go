package dailylog

import (
	"context"

	"wisefido-carelog/internal/models"

	"go.uber.org/zap"
)

// CategoryItems 单个类别的记录
type CategoryItems struct {
	Category models.CategoryID
	Items    []models.RawRecord
}

// DailyRecords 按 models.AllCategories 顺序排列的全部类别（包括空类别）
type DailyRecords []CategoryItems

// Items 返回某类别的记录，不存在时返回空列表
func (d DailyRecords) Items(category models.CategoryID) []models.RawRecord {
	for _, c := range d {
		if c.Category == category {
			return c.Items
		}
	}
	return []models.RawRecord{}
}

// CategoryAggregator 类别聚合器
type CategoryAggregator struct {
	reader *RecordReader
	logger *zap.Logger
}

// NewCategoryAggregator 创建类别聚合器
func NewCategoryAggregator(reader *RecordReader, logger *zap.Logger) *CategoryAggregator {
	return &CategoryAggregator{reader: reader, logger: logger}
}

// ReadCategory 读取某住户某日某类别的记录
//
// 按候选键顺序读取并过滤，第一个过滤后非空的键胜出（不合并后续键）。
// 含日期的键中没有日期字段的记录视为当日记录，带日期的记录仍须完全相等；
// 旧版全局键严格按 date/record_date 过滤。
// 全部候选键都没有数据时返回空列表。
func (a *CategoryAggregator) ReadCategory(ctx context.Context, category models.CategoryID, subjectID, day string) []models.RawRecord {
	for _, key := range CandidateKeys(category, day) {
		res := a.reader.ReadKey(ctx, key.Key)
		if !res.OK() {
			continue
		}

		var items []models.RawRecord
		if key.DayScoped {
			items = FilterDayScoped(res.Records, subjectID, day)
		} else {
			items = FilterRecords(res.Records, subjectID, day)
		}
		if len(items) > 0 {
			a.logger.Debug("Resolved category records",
				zap.String("category", string(category)),
				zap.String("key", key.Key),
				zap.Int("count", len(items)),
			)
			return items
		}
	}
	return []models.RawRecord{}
}

// GetDailyLogs 读取全部类别（空类别也包含在结果中）
func (a *CategoryAggregator) GetDailyLogs(ctx context.Context, subjectID, day string) DailyRecords {
	out := make(DailyRecords, 0, len(models.AllCategories))
	for _, c := range models.AllCategories {
		out = append(out, CategoryItems{
			Category: c,
			Items:    a.ReadCategory(ctx, c, subjectID, day),
		})
	}
	return out
}

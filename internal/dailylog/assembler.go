package dailylog

import (
	"wisefido-carelog/internal/models"

	"go.uber.org/zap"
)

// createdAtFields 判断记录归属日期时使用的创建时间字段（依次回退到事件时间）
var createdAtFields = append([]string{"created_at", "createdAt"}, models.TimestampFields...)

// DailyLogAssembler 由住户的完整事件历史生成 NormalizedDailyLog
type DailyLogAssembler struct {
	logger *zap.Logger
}

// NewDailyLogAssembler 创建日誌组装器
func NewDailyLogAssembler(logger *zap.Logger) *DailyLogAssembler {
	return &DailyLogAssembler{logger: logger}
}

// GenerateDailyLog 生成单个住户单日的规范化日誌
//
// 任一输入缺失（空字符串或 history 为 nil）时返回 nil。
// 仅处理属于该住户（没有住户 ID 或 ID 相同）且创建时间落在 day 的记录，按记录自身的类别标签分派：
//   - vital：覆盖单值的 Vitals（最后一条胜出）
//   - hydration/excretion/seizure/activity：追加到对应列表
//   - 其他：追加到 Care
//
// 单条记录处理失败时跳过该记录，继续处理其余记录。
func (a *DailyLogAssembler) GenerateDailyLog(subjectID, subjectName, day string, history []models.RawRecord) *models.NormalizedDailyLog {
	if subjectID == "" || subjectName == "" || day == "" || history == nil {
		return nil
	}

	log := models.NewNormalizedDailyLog(subjectID, subjectName, day)
	for _, rec := range history {
		if !belongsTo(rec, subjectID, day) {
			continue
		}

		n := NormalizerFor(models.CategoryOther)
		if c, ok := models.ParseCategoryTag(rec.Category); ok {
			n = NormalizerFor(c)
		}
		if err := n.ToStructuredEntry(log, rec); err != nil {
			a.logger.Warn("Skipping record that failed to normalize",
				zap.String("user_id", subjectID),
				zap.String("category", rec.Category),
				zap.String("timestamp", rec.Timestamp),
				zap.Error(err),
			)
		}
	}
	return log
}

// belongsTo 历史已是该住户的记录，只排除带有其他住户 ID 的记录
func belongsTo(rec models.RawRecord, subjectID, day string) bool {
	return OwnedBy(rec, subjectID) && models.DayOf(rec.Text(createdAtFields...)) == day
}

// VitalsSeries 收集某住户某日的全部生命体征（按历史顺序，不去重）
func VitalsSeries(subjectID, day string, history []models.RawRecord) []models.VitalsEntry {
	series := make([]models.VitalsEntry, 0)
	for _, rec := range history {
		if !belongsTo(rec, subjectID, day) {
			continue
		}
		if c, ok := models.ParseCategoryTag(rec.Category); ok && c == models.CategoryVital {
			series = append(series, vitalsEntry(rec))
		}
	}
	return series
}

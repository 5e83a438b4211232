// Package dailylog 日誌聚合/规范化引擎
//
// 读取流程：KeyResolver 给出候选键 → RecordReader 解码 → FilterRecords 按住户/日期过滤
// → CategoryAggregator 首个非空候选键胜出 → NormalizeForSheet 生成打印摘要。
// 另一条路径由住户的完整事件历史经 DailyLogAssembler 生成 NormalizedDailyLog。
// 读取路径上的所有操作均为同步、无副作用，且不返回错误。
package dailylog

import (
	"strings"

	"wisefido-carelog/internal/models"
)

const dayPlaceholder = "{day}"

// candidateKeyTable 各类别的候选键（按尝试顺序）
// 第一个为当前规范 {category}_records_{day}，其后为旧版键
var candidateKeyTable = map[models.CategoryID][]string{
	models.CategorySeizure:       {"seizure_records_{day}", "seizure_records"},
	models.CategoryExpression:    {"expression_records_{day}"},
	models.CategoryHydration:     {"hydration_records_{day}", "hydration_records"},
	models.CategoryPositioning:   {"positioning_records_{day}"},
	models.CategoryActivity:      {"activity_records_{day}"},
	models.CategoryExcretion:     {"excretion_records_{day}", "excretion_records"},
	models.CategorySkinOralCare:  {"skin_oral_care_records_{day}"},
	models.CategoryCondition:     {"condition_records_{day}"},
	models.CategorySleep:         {"sleep_records_{day}"},
	models.CategoryCoughChoke:    {"cough_choke_records_{day}"},
	models.CategoryTubeFeeding:   {"tube_feeding_records_{day}"},
	models.CategoryMedication:    {"medication_records_{day}", "medication_records"},
	models.CategoryVital:         {"vital_records_{day}", "vitals_records_{day}", "vital_records"},
	models.CategoryBehavior:      {"behavior_records_{day}"},
	models.CategoryCommunication: {"communication_records_{day}"},
	models.CategoryRehab:         {"rehab_records_{day}"},
	models.CategoryOther:         {"other_records_{day}"},
}

// CandidateKeys 返回类别在某日的候选存储键，最具体的在前
//
// 调用方必须按顺序尝试，并在第一个可用结果处停止。
// day 为空时跳过含日期的键；未知类别返回 nil。
func CandidateKeys(category models.CategoryID, day string) []models.StorageKey {
	templates := candidateKeyTable[category]
	keys := make([]models.StorageKey, 0, len(templates))
	for _, tpl := range templates {
		if strings.Contains(tpl, dayPlaceholder) {
			if day == "" {
				continue
			}
			keys = append(keys, models.StorageKey{
				Key:       strings.ReplaceAll(tpl, dayPlaceholder, day),
				DayScoped: true,
			})
			continue
		}
		keys = append(keys, models.StorageKey{Key: tpl})
	}
	if len(keys) == 0 {
		return nil
	}
	return keys
}

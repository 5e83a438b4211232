package dailylog

import "wisefido-carelog/internal/models"

// MatchesSubject 任一住户 ID 别名等于目标即匹配
// subjectID 为空时不限制；记录没有任何住户 ID 字段时不匹配
func MatchesSubject(rec models.RawRecord, subjectID string) bool {
	if subjectID == "" {
		return true
	}
	for _, id := range rec.Texts(models.SubjectIDFields...) {
		if id == subjectID {
			return true
		}
	}
	return false
}

// MatchesDay 任一日期别名与 day 完全相等即匹配（不做日期格式归一化）
// day 为空时不限制
func MatchesDay(rec models.RawRecord, day string) bool {
	if day == "" {
		return true
	}
	for _, d := range rec.Texts(models.DayFields...) {
		if d == day {
			return true
		}
	}
	return false
}

// OwnedBy 用于已按住户划分的键（如 events_{id}）：
// 没有住户 ID 字段的记录属于该住户，带有其他住户 ID 的记录不属于
func OwnedBy(rec models.RawRecord, subjectID string) bool {
	if len(rec.Texts(models.SubjectIDFields...)) == 0 {
		return true
	}
	return MatchesSubject(rec, subjectID)
}

// DatedOn 用于已按日期划分的键（如 {category}_records_{day}）：
// 没有日期字段的记录属于该日，带有日期的记录仍须完全相等
func DatedOn(rec models.RawRecord, day string) bool {
	if len(rec.Texts(models.DayFields...)) == 0 {
		return true
	}
	return MatchesDay(rec, day)
}

// FilterRecords 按住户和日期过滤，结果始终非 nil
func FilterRecords(records []models.RawRecord, subjectID, day string) []models.RawRecord {
	return filterWith(records, func(rec models.RawRecord) bool {
		return MatchesSubject(rec, subjectID) && MatchesDay(rec, day)
	})
}

// FilterDayScoped 过滤按日期划分的键中的记录：住户严格匹配，缺少日期的记录保留
func FilterDayScoped(records []models.RawRecord, subjectID, day string) []models.RawRecord {
	return filterWith(records, func(rec models.RawRecord) bool {
		return MatchesSubject(rec, subjectID) && DatedOn(rec, day)
	})
}

// FilterSubjectScoped 过滤按住户划分的键中的记录：缺少住户 ID 的记录保留
func FilterSubjectScoped(records []models.RawRecord, subjectID string) []models.RawRecord {
	return filterWith(records, func(rec models.RawRecord) bool {
		return OwnedBy(rec, subjectID)
	})
}

func filterWith(records []models.RawRecord, keep func(models.RawRecord) bool) []models.RawRecord {
	out := make([]models.RawRecord, 0, len(records))
	for _, rec := range records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

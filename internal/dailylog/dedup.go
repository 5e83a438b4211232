package dailylog

import (
	"sort"

	"wisefido-carelog/internal/models"
)

// DedupeByMinute 按 HH:MM 去重，同一分钟内后出现的读数覆盖先前的，结果按时间升序
func DedupeByMinute(readings []models.VitalsEntry) []models.VitalsEntry {
	byMinute := make(map[string]models.VitalsEntry, len(readings))
	for _, r := range readings {
		byMinute[models.ClockOf(r.Timestamp)] = r
	}

	minutes := make([]string, 0, len(byMinute))
	for m := range byMinute {
		minutes = append(minutes, m)
	}
	sort.Strings(minutes)

	out := make([]models.VitalsEntry, 0, len(minutes))
	for _, m := range minutes {
		out = append(out, byMinute[m])
	}
	return out
}

// PrintVitals 打印用的生命体征序列（每分钟一条）
func PrintVitals(subjectID, day string, history []models.RawRecord) []models.VitalsEntry {
	return DedupeByMinute(VitalsSeries(subjectID, day, history))
}

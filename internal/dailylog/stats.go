package dailylog

import "wisefido-carelog/internal/models"

// ComputeStats 计算启发式分析所需的单日统计（只读取输入，不修改）
//
// daily 提供各类别记录数；log 提供发作与水分合计；vitals 应为去重后的序列。
func ComputeStats(daily DailyRecords, log *models.NormalizedDailyLog, vitals []models.VitalsEntry) models.DailyStats {
	stats := models.DailyStats{Counts: make(map[models.CategoryID]int)}
	for _, c := range daily {
		if len(c.Items) > 0 {
			stats.Counts[c.Category] = len(c.Items)
		}
	}

	if log != nil {
		stats.SubjectID = log.SubjectID
		stats.Date = log.Date
		stats.SeizureCount = len(log.Seizure)
		for _, s := range log.Seizure {
			if s.DurationSeconds != nil {
				stats.SeizureTotalSeconds += *s.DurationSeconds
			}
		}
		for _, h := range log.Hydration {
			stats.HydrationTotalML += h.Amount
		}
	}

	stats.VitalsReadings = len(vitals)
	var pulseSum float64
	var pulseN int
	for _, v := range vitals {
		stats.TemperatureMin = minOf(stats.TemperatureMin, v.Temperature)
		stats.TemperatureMax = maxOf(stats.TemperatureMax, v.Temperature)
		stats.SpO2Min = minOf(stats.SpO2Min, v.SpO2)
		if v.Pulse != nil {
			pulseSum += *v.Pulse
			pulseN++
		}
	}
	if pulseN > 0 {
		avg := pulseSum / float64(pulseN)
		stats.PulseAvg = &avg
	}
	return stats
}

func minOf(cur, v *float64) *float64 {
	if v == nil {
		return cur
	}
	if cur == nil || *v < *cur {
		x := *v
		return &x
	}
	return cur
}

func maxOf(cur, v *float64) *float64 {
	if v == nil {
		return cur
	}
	if cur == nil || *v > *cur {
		x := *v
		return &x
	}
	return cur
}

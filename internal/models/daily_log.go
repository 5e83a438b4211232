package models

// StorageKey 一个候选存储键
type StorageKey struct {
	Key string

	// DayScoped 为 true 表示键名中已包含日期（{category}_records_{day}），
	// 没有 date 字段的记录视为当日记录，带 date 的记录仍须完全相等
	DayScoped bool
}

// Subject 住户（名册条目）
type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SummaryLine 打印用的单行类别摘要
type SummaryLine struct {
	Category CategoryID `json:"category"`
	Label    string     `json:"label"`
	Text     string     `json:"text"`
}

// VitalsEntry 生命体征（数值字段无法识别时为 null）
type VitalsEntry struct {
	Temperature     *float64 `json:"temperature"`
	Pulse           *float64 `json:"pulse"`
	SpO2            *float64 `json:"spo2"`
	Systolic        *float64 `json:"blood_pressure_systolic"`
	Diastolic       *float64 `json:"blood_pressure_diastolic"`
	RespiratoryRate *float64 `json:"respiratory_rate"`
	Timestamp       string   `json:"timestamp"`
}

// HydrationEntry 水分补给
type HydrationEntry struct {
	Time       string  `json:"time"`
	IntakeType string  `json:"intake_type"`
	Amount     float64 `json:"amount"`
	Note       string  `json:"note"`
}

// ExcretionEntry 排泄
type ExcretionEntry struct {
	Time          string `json:"time"`
	ExcretionType string `json:"excretion_type"`
	Amount        string `json:"amount"`
	Consistency   string `json:"consistency"`
	Note          string `json:"note"`
}

// SeizureEntry 发作
type SeizureEntry struct {
	Time            string   `json:"time"`
	SeizureType     string   `json:"seizure_type"`
	DurationSeconds *float64 `json:"duration_seconds"`
	Severity        string   `json:"severity"`
	Note            string   `json:"note"`
}

// ActivityEntry 活动
type ActivityEntry struct {
	Time            string   `json:"time"`
	Activity        string   `json:"activity"`
	DurationMinutes *float64 `json:"duration_minutes"`
	Participation   string   `json:"participation"`
	Note            string   `json:"note"`
}

// CareEntry 其他类别的护理记录
type CareEntry struct {
	ID       string `json:"id"`
	Time     string `json:"time"`
	Category string `json:"category"`
	Detail   string `json:"detail"`
}

// NormalizedDailyLog 单个住户单日的规范化日誌
//
// 列表字段始终非 nil（无记录时为空列表），Vitals 无记录时为 null。
type NormalizedDailyLog struct {
	SubjectID   string           `json:"user_id"`
	SubjectName string           `json:"user_name"`
	Date        string           `json:"date"`
	Vitals      *VitalsEntry     `json:"vitals"`
	Hydration   []HydrationEntry `json:"hydration"`
	Excretion   []ExcretionEntry `json:"excretion"`
	Seizure     []SeizureEntry   `json:"seizure"`
	Activity    []ActivityEntry  `json:"activity"`
	Care        []CareEntry      `json:"care"`
	Notes       string           `json:"notes"`
}

// NewNormalizedDailyLog 创建空日誌
func NewNormalizedDailyLog(subjectID, subjectName, date string) *NormalizedDailyLog {
	return &NormalizedDailyLog{
		SubjectID:   subjectID,
		SubjectName: subjectName,
		Date:        date,
		Hydration:   []HydrationEntry{},
		Excretion:   []ExcretionEntry{},
		Seizure:     []SeizureEntry{},
		Activity:    []ActivityEntry{},
		Care:        []CareEntry{},
	}
}

// DailyStats 供启发式分析使用的单日统计
type DailyStats struct {
	SubjectID           string             `json:"user_id"`
	Date                string             `json:"date"`
	Counts              map[CategoryID]int `json:"counts"`
	SeizureCount        int                `json:"seizure_count"`
	SeizureTotalSeconds float64            `json:"seizure_total_seconds"`
	HydrationTotalML    float64            `json:"hydration_total_ml"`
	VitalsReadings      int                `json:"vitals_readings"`
	TemperatureMin      *float64           `json:"temperature_min"`
	TemperatureMax      *float64           `json:"temperature_max"`
	PulseAvg            *float64           `json:"pulse_avg"`
	SpO2Min             *float64           `json:"spo2_min"`
}

// SubjectReport 单个住户的完整日报（批量分析的输出单元）
type SubjectReport struct {
	Subject Subject             `json:"subject"`
	Log     *NormalizedDailyLog `json:"log"`
	Lines   []SummaryLine       `json:"lines"`
	Vitals  []VitalsEntry       `json:"vitals"`
	Stats   DailyStats          `json:"stats"`
}

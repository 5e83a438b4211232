package dailylog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"wisefido-carelog/internal/models"

	"github.com/google/uuid"
)

// Normalizer 单个类别的字段解释
//
// ToSummaryLine 供打印摘要使用，ToStructuredEntry 把一条记录并入 NormalizedDailyLog。
// 两条路径共用同一份字段别名规则。
type Normalizer interface {
	Category() models.CategoryID
	ToSummaryLine(items []models.RawRecord) (models.SummaryLine, bool)
	ToStructuredEntry(log *models.NormalizedDailyLog, rec models.RawRecord) error
}

type categoryNormalizer struct {
	category models.CategoryID
	summary  func(rec models.RawRecord) string
	entry    func(log *models.NormalizedDailyLog, rec models.RawRecord) error
}

func (n categoryNormalizer) Category() models.CategoryID { return n.category }

// ToSummaryLine 每条记录一行，以换行连接；没有记录时返回 false
func (n categoryNormalizer) ToSummaryLine(items []models.RawRecord) (models.SummaryLine, bool) {
	if len(items) == 0 {
		return models.SummaryLine{}, false
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		if s := n.summary(it); s != "" {
			lines = append(lines, s)
		}
	}
	return models.SummaryLine{
		Category: n.category,
		Label:    n.category.Label(),
		Text:     strings.Join(lines, "\n"),
	}, true
}

func (n categoryNormalizer) ToStructuredEntry(log *models.NormalizedDailyLog, rec models.RawRecord) error {
	return n.entry(log, rec)
}

// 各类别的字段别名
var (
	seizureTypeFields     = []string{"seizure_type", "type"}
	seizureDurationFields = []string{"duration_seconds", "duration"}
	intakeTypeFields      = []string{"intake_type", "type", "method"}
	amountFields          = []string{"amount", "amount_ml"}
	positionFields        = []string{"position", "posture"}
	assistanceFields      = []string{"assistance", "assistance_note"}
	drugNameFields        = []string{"medication_name", "drug_name", "name"}
	doseFields            = []string{"dose", "dosage"}
	routeFields           = []string{"route"}
	temperatureFields     = []string{"temperature"}
	pulseFields           = []string{"pulse", "heart_rate"}
	spo2Fields            = []string{"spo2", "SpO2"}
	systolicFields        = []string{"blood_pressure_systolic", "systolic"}
	diastolicFields       = []string{"blood_pressure_diastolic", "diastolic"}
	respirationFields     = []string{"respiratory_rate", "respiration"}
	excretionTypeFields   = []string{"excretion_type", "type"}
	consistencyFields     = []string{"consistency", "character"}
	activityFields        = []string{"activity", "activity_type", "type"}
	activityMinuteFields  = []string{"duration_minutes", "duration"}
	genericTextFields     = []string{"note", "notes", "free_text", "details", "text", "value"}

	// 水分量允许带的单位（"120ml"、"120 cc"）
	volumeUnits = []string{"ml", "cc"}
)

var normalizers = map[models.CategoryID]categoryNormalizer{
	models.CategorySeizure:     {category: models.CategorySeizure, summary: seizureSummary, entry: appendSeizure},
	models.CategoryHydration:   {category: models.CategoryHydration, summary: hydrationSummary, entry: appendHydration},
	models.CategoryPositioning: {category: models.CategoryPositioning, summary: positioningSummary, entry: appendCare},
	models.CategoryMedication:  {category: models.CategoryMedication, summary: medicationSummary, entry: appendCare},
	models.CategoryVital:       {category: models.CategoryVital, summary: vitalSummary, entry: setVitals},
	models.CategoryExcretion:   {category: models.CategoryExcretion, summary: genericSummary, entry: appendExcretion},
	models.CategoryActivity:    {category: models.CategoryActivity, summary: genericSummary, entry: appendActivity},
}

// NormalizerFor 返回类别的 Normalizer；没有专用规则的类别使用通用规则
func NormalizerFor(category models.CategoryID) Normalizer {
	if n, ok := normalizers[category]; ok {
		return n
	}
	return categoryNormalizer{category: category, summary: genericSummary, entry: appendCare}
}

func joinPieces(pieces ...string) string {
	kept := pieces[:0]
	for _, p := range pieces {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func withUnit(v, unit string) string {
	if v == "" {
		return ""
	}
	return v + unit
}

func labeled(label, v, unit string) string {
	if v == "" {
		return ""
	}
	return label + v + unit
}

// --- 打印摘要 ---

func seizureSummary(rec models.RawRecord) string {
	duration := rec.Text(seizureDurationFields...)
	if _, err := models.NumberOf(duration); err == nil {
		duration = withUnit(duration, "秒")
	}
	return joinPieces(rec.Clock(), rec.Text(seizureTypeFields...), duration, rec.Text(models.NoteFields...))
}

func hydrationSummary(rec models.RawRecord) string {
	amount := rec.Text(amountFields...)
	if n, err := rec.Quantity(volumeUnits, amountFields...); err == nil && n != nil {
		amount = strconv.FormatFloat(*n, 'f', -1, 64) + "ml"
	}
	return joinPieces(rec.Clock(), rec.Text(intakeTypeFields...), amount)
}

func positioningSummary(rec models.RawRecord) string {
	return joinPieces(rec.Clock(), rec.Text(positionFields...), rec.Text(assistanceFields...))
}

func medicationSummary(rec models.RawRecord) string {
	return joinPieces(rec.Clock(), rec.Text(drugNameFields...), rec.Text(doseFields...), rec.Text(routeFields...))
}

func vitalSummary(rec models.RawRecord) string {
	return joinPieces(
		rec.Clock(),
		labeled("体温", rec.Text(temperatureFields...), "℃"),
		labeled("脈拍", rec.Text(pulseFields...), "回/分"),
		labeled("SpO2 ", rec.Text(spo2Fields...), "%"),
		bloodPressureSummary(rec),
	)
}

// bloodPressureSummary 上下都有时为 S/D，只有一个时标明上或下
func bloodPressureSummary(rec models.RawRecord) string {
	sys, dia := rec.Text(systolicFields...), rec.Text(diastolicFields...)
	switch {
	case sys != "" && dia != "":
		return "血圧" + sys + "/" + dia + "mmHg"
	case sys != "":
		return "血圧(上)" + sys + "mmHg"
	case dia != "":
		return "血圧(下)" + dia + "mmHg"
	}
	return labeled("血圧", rec.Text("blood_pressure"), "mmHg")
}

func genericSummary(rec models.RawRecord) string {
	return rec.Text(genericTextFields...)
}

// --- 结构化条目 ---

func setVitals(log *models.NormalizedDailyLog, rec models.RawRecord) error {
	v := vitalsEntry(rec)
	log.Vitals = &v
	return nil
}

func vitalsEntry(rec models.RawRecord) models.VitalsEntry {
	return models.VitalsEntry{
		Temperature:     rec.LooseNumber(temperatureFields...),
		Pulse:           rec.LooseNumber(pulseFields...),
		SpO2:            rec.LooseNumber(spo2Fields...),
		Systolic:        rec.LooseNumber(systolicFields...),
		Diastolic:       rec.LooseNumber(diastolicFields...),
		RespiratoryRate: rec.LooseNumber(respirationFields...),
		Timestamp:       rec.Timestamp,
	}
}

func appendHydration(log *models.NormalizedDailyLog, rec models.RawRecord) error {
	amount, err := rec.Quantity(volumeUnits, amountFields...)
	if err != nil {
		return err
	}
	e := models.HydrationEntry{
		Time:       rec.Clock(),
		IntakeType: rec.Text(intakeTypeFields...),
		Note:       rec.Text(models.NoteFields...),
	}
	if amount != nil {
		e.Amount = *amount
	}
	log.Hydration = append(log.Hydration, e)
	return nil
}

func appendExcretion(log *models.NormalizedDailyLog, rec models.RawRecord) error {
	log.Excretion = append(log.Excretion, models.ExcretionEntry{
		Time:          rec.Clock(),
		ExcretionType: rec.Text(excretionTypeFields...),
		Amount:        rec.Text(amountFields...),
		Consistency:   rec.Text(consistencyFields...),
		Note:          rec.Text(models.NoteFields...),
	})
	return nil
}

func appendSeizure(log *models.NormalizedDailyLog, rec models.RawRecord) error {
	duration, err := rec.Number(seizureDurationFields...)
	if err != nil {
		return err
	}
	log.Seizure = append(log.Seizure, models.SeizureEntry{
		Time:            rec.Clock(),
		SeizureType:     rec.Text(seizureTypeFields...),
		DurationSeconds: duration,
		Severity:        rec.Text("severity", "intensity"),
		Note:            rec.Text(models.NoteFields...),
	})
	return nil
}

func appendActivity(log *models.NormalizedDailyLog, rec models.RawRecord) error {
	minutes, err := rec.Number(activityMinuteFields...)
	if err != nil {
		return err
	}
	log.Activity = append(log.Activity, models.ActivityEntry{
		Time:            rec.Clock(),
		Activity:        rec.Text(activityFields...),
		DurationMinutes: minutes,
		Participation:   rec.Text("participation", "engagement"),
		Note:            rec.Text(models.NoteFields...),
	})
	return nil
}

// careNamespace CareEntry ID 的 uuid v5 命名空间
var careNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("wisefido-carelog/care"))

// appendCare 其他类别：detail 取备注，没有备注时为整条记录的 JSON
func appendCare(log *models.NormalizedDailyLog, rec models.RawRecord) error {
	detail := rec.Text(models.NoteFields...)
	if detail == "" {
		dump, err := json.Marshal(rec.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		detail = string(dump)
	}

	id := rec.Text("id")
	if id == "" {
		id = uuid.NewSHA1(careNamespace, []byte(rec.Category+"\x00"+rec.Timestamp+"\x00"+detail)).String()
	}

	log.Care = append(log.Care, models.CareEntry{
		ID:       id,
		Time:     rec.Clock(),
		Category: rec.Category,
		Detail:   detail,
	})
	return nil
}

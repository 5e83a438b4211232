package dailylog

import (
	"context"

	"wisefido-carelog/internal/models"

	"go.uber.org/zap"
)

// HistoryKeys 事件历史与名册所在的键
type HistoryKeys struct {
	Subjects        string // 名册，如 "users"
	EventsPrefix    string // 住户事件历史，如 "events_" + 住户 ID
	LegacyEventsKey string // 旧版全局事件，如 "care_events"
}

// HistoryLoader 读取住户的完整事件历史和名册
type HistoryLoader struct {
	reader *RecordReader
	keys   HistoryKeys
	logger *zap.Logger
}

// NewHistoryLoader 创建历史读取器
func NewHistoryLoader(reader *RecordReader, keys HistoryKeys, logger *zap.Logger) *HistoryLoader {
	return &HistoryLoader{reader: reader, keys: keys, logger: logger}
}

// LoadHistory 读取住户的事件历史
//
// 先读 {EventsPrefix}{subjectID}，没有该住户的记录时回退到旧版全局键。
// 住户自己的键中没有住户 ID 的记录也属于该住户；旧版全局键严格匹配。
// 与 ReadCategory 相同，第一个过滤后非空的键胜出。结果始终非 nil。
func (h *HistoryLoader) LoadHistory(ctx context.Context, subjectID string) []models.RawRecord {
	if subjectID == "" {
		return []models.RawRecord{}
	}

	candidates := []string{h.keys.EventsPrefix + subjectID}
	if h.keys.LegacyEventsKey != "" {
		candidates = append(candidates, h.keys.LegacyEventsKey)
	}

	for i, key := range candidates {
		res := h.reader.ReadKey(ctx, key)
		if !res.OK() {
			continue
		}
		var items []models.RawRecord
		if i == 0 {
			items = FilterSubjectScoped(res.Records, subjectID)
		} else {
			items = FilterRecords(res.Records, subjectID, "")
		}
		if len(items) > 0 {
			h.logger.Debug("Loaded event history",
				zap.String("user_id", subjectID),
				zap.String("key", key),
				zap.Int("count", len(items)),
			)
			return items
		}
	}
	return []models.RawRecord{}
}

// LoadSubjects 读取名册；缺少 ID 的条目被忽略，名称缺失时用 ID 代替
func (h *HistoryLoader) LoadSubjects(ctx context.Context) []models.Subject {
	res := h.reader.ReadKey(ctx, h.keys.Subjects)
	if !res.OK() {
		return []models.Subject{}
	}

	subjects := make([]models.Subject, 0, len(res.Records))
	for _, rec := range res.Records {
		id := rec.Text(append([]string{"id"}, models.SubjectIDFields...)...)
		if id == "" {
			continue
		}
		name := rec.Text("name", "user_name", "display_name")
		if name == "" {
			name = id
		}
		subjects = append(subjects, models.Subject{ID: id, Name: name})
	}
	return subjects
}

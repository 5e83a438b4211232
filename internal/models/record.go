package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// 字段别名（历史上各录入表单使用的写法不一致）
var (
	SubjectIDFields = []string{"user_id", "userId", "uid"}
	DayFields       = []string{"date", "record_date"}
	TimestampFields = []string{"event_timestamp", "timestamp", "created_at", "recorded_at", "time"}
	CategoryFields  = []string{"category", "event_type", "record_type"}
	NoteFields      = []string{"note", "notes"}
)

// RawRecord 一条原样保存的护理记录
//
// Category/Timestamp/SubjectID 是解码时从别名字段中取出的最小信封，
// Payload 保存完整的原始对象（数字为 json.Number）。
// 字段的具体含义只在各类别的 Normalizer 中解释。
type RawRecord struct {
	Category  string
	Timestamp string
	SubjectID string
	Payload   map[string]any
}

// NewRawRecord 由解码后的对象构建记录
func NewRawRecord(payload map[string]any) RawRecord {
	if payload == nil {
		payload = map[string]any{}
	}
	r := RawRecord{Payload: payload}
	r.Category = r.Text(CategoryFields...)
	r.Timestamp = r.Text(TimestampFields...)
	r.SubjectID = r.Text(SubjectIDFields...)
	return r
}

// Text 返回第一个非空别名字段的文本值
func (r RawRecord) Text(fields ...string) string {
	for _, f := range fields {
		if s := TextOf(r.Payload[f]); s != "" {
			return s
		}
	}
	return ""
}

// Texts 返回所有非空别名字段的文本值
func (r RawRecord) Texts(fields ...string) []string {
	var out []string
	for _, f := range fields {
		if s := TextOf(r.Payload[f]); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Number 返回第一个存在的别名字段的数值
//
// 字段不存在（或为 null/空串）时返回 nil, nil；
// 字段存在但不是数字时返回错误。
func (r RawRecord) Number(fields ...string) (*float64, error) {
	return r.Quantity(nil, fields...)
}

// Quantity 同 Number，字符串值允许带 units 中的单位后缀（不区分大小写）
func (r RawRecord) Quantity(units []string, fields ...string) (*float64, error) {
	for _, f := range fields {
		v, ok := r.Payload[f]
		if !ok || v == nil {
			continue
		}
		if s, isText := v.(string); isText {
			v = TrimUnit(s, units...)
		}
		n, err := NumberOf(v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f, err)
		}
		if n == nil {
			continue
		}
		return n, nil
	}
	return nil, nil
}

// LooseNumber 同 Number，但非数字按 null 处理
func (r RawRecord) LooseNumber(fields ...string) *float64 {
	for _, f := range fields {
		if n, err := NumberOf(r.Payload[f]); err == nil && n != nil {
			return n
		}
	}
	return nil
}

// Day 返回时间戳的日历日（YYYY-MM-DD 前缀），无法识别时返回空串
func (r RawRecord) Day() string {
	return DayOf(r.Timestamp)
}

// Clock 返回时间戳的 HH:MM 部分
func (r RawRecord) Clock() string {
	return ClockOf(r.Timestamp)
}

// TextOf 标量值转文本；对象、数组返回空串
func TextOf(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// NumberOf 数值或数字字符串转 float64
// nil 与空串返回 nil, nil
func NumberOf(v any) (*float64, error) {
	var s string
	switch t := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return &t, nil
	case int:
		f := float64(t)
		return &f, nil
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
		if s == "" {
			return nil, nil
		}
	default:
		return nil, fmt.Errorf("not a number: %T", v)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	return &f, nil
}

// TrimUnit 去掉首个匹配的单位后缀，如 "120ml" → "120"
func TrimUnit(s string, units ...string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, u := range units {
		if u != "" && strings.HasSuffix(lower, strings.ToLower(u)) {
			return strings.TrimSpace(s[:len(s)-len(u)])
		}
	}
	return s
}

// DayOf 取 YYYY-MM-DD 前缀
func DayOf(ts string) string {
	if len(ts) < 10 {
		return ""
	}
	d := ts[:10]
	if d[4] != '-' || d[7] != '-' || !isDigits(d[:4]) || !isDigits(d[5:7]) || !isDigits(d[8:10]) {
		return ""
	}
	return d
}

// ClockOf 取 HH:MM
// 支持 "YYYY-MM-DDTHH:MM..."、"YYYY-MM-DD HH:MM..." 和 "HH:MM..."，其余原样返回
func ClockOf(ts string) string {
	if DayOf(ts) != "" && len(ts) >= 16 && (ts[10] == 'T' || ts[10] == ' ') && isClock(ts[11:16]) {
		return ts[11:16]
	}
	if len(ts) >= 5 && isClock(ts[:5]) {
		return ts[:5]
	}
	return ts
}

func isClock(s string) bool {
	return len(s) == 5 && s[2] == ':' && isDigits(s[:2]) && isDigits(s[3:])
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

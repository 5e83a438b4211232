package dailylog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"wisefido-carelog/internal/models"
	"wisefido-carelog/internal/store"

	"go.uber.org/zap"
)

// ReadStatus 单个键的读取结果
type ReadStatus int

const (
	ReadOK          ReadStatus = iota
	ReadAbsent                 // 键不存在或值为 null
	ReadCorrupt                // 值存在但无法解码
	ReadUnavailable            // 存储本身出错（如 Redis 不可达）
)

func (s ReadStatus) String() string {
	switch s {
	case ReadOK:
		return "ok"
	case ReadAbsent:
		return "absent"
	case ReadCorrupt:
		return "corrupt"
	case ReadUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("ReadStatus(%d)", int(s))
	}
}

// ReadResult 读取结果，Records 仅在 ReadOK 时有值
//
// 调用方目前把非 ReadOK 一律视为“没有数据”，状态仅用于区分日志级别。
type ReadResult struct {
	Status  ReadStatus
	Records []models.RawRecord
}

// OK 是否读到了数据
func (r ReadResult) OK() bool { return r.Status == ReadOK }

// RecordReader 从 Store 读取并解码记录
type RecordReader struct {
	store  store.Store
	logger *zap.Logger
}

// NewRecordReader 创建记录读取器
func NewRecordReader(s store.Store, logger *zap.Logger) *RecordReader {
	return &RecordReader{store: s, logger: logger}
}

// ReadKey 读取单个键，从不返回错误
func (r *RecordReader) ReadKey(ctx context.Context, key string) ReadResult {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			r.logger.Debug("Key absent", zap.String("key", key))
			return ReadResult{Status: ReadAbsent}
		}
		r.logger.Warn("Store read failed, treating key as absent",
			zap.String("key", key),
			zap.Error(err),
		)
		return ReadResult{Status: ReadUnavailable}
	}

	records, err := DecodeRecords(raw)
	if err != nil {
		if errors.Is(err, errNullValue) {
			return ReadResult{Status: ReadAbsent}
		}
		r.logger.Warn("Corrupt record collection, treating key as absent",
			zap.String("key", key),
			zap.Error(err),
		)
		return ReadResult{Status: ReadCorrupt}
	}
	return ReadResult{Status: ReadOK, Records: records}
}

var errNullValue = errors.New("null value")

// DecodeRecords 解码序列化的记录集合
//
// 单个对象包装为单元素集合；数组中的非对象元素被忽略；
// 顶层为其他标量或 JSON 非法时返回错误。
func DecodeRecords(raw string) ([]models.RawRecord, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to decode records: trailing data")
	}

	switch t := v.(type) {
	case nil:
		return nil, errNullValue
	case map[string]any:
		return []models.RawRecord{models.NewRawRecord(t)}, nil
	case []any:
		records := make([]models.RawRecord, 0, len(t))
		for _, item := range t {
			if obj, ok := item.(map[string]any); ok {
				records = append(records, models.NewRawRecord(obj))
			}
		}
		return records, nil
	default:
		return nil, fmt.Errorf("failed to decode records: unexpected %T", v)
	}
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

// MemoryStore 线程安全的内存键值存储
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	val, ok := m.data[key]
	if !ok {
		return "", ErrMiss
	}
	return val, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value
	return nil
}

// Keys 返回按字典序排列的全部键
func (m *MemoryStore) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// LoadSnapshot 从快照加载数据
//
// 快照是一个 JSON 对象 {key: value}。浏览器 localStorage 导出的值本身就是字符串，
// 原样保存；其他 JSON 值（对象、数组、数字）重新序列化后保存。
// 返回加载的键数量。
func (m *MemoryStore) LoadSnapshot(r io.Reader) (int, error) {
	var snapshot map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return 0, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, raw := range snapshot {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			m.data[key] = s
			continue
		}
		m.data[key] = string(raw)
	}
	return len(snapshot), nil
}

// LoadSnapshotFile 从文件加载快照
func (m *MemoryStore) LoadSnapshotFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	return m.LoadSnapshot(f)
}

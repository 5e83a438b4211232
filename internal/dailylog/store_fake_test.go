package dailylog_test

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"

	"wisefido-carelog/internal/dailylog"
	"wisefido-carelog/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore 仅用于单元测试（内存 KV，可为指定键注入错误）
type fakeStore struct {
	mu    sync.Mutex
	data  map[string]string
	errs  map[string]error
	reads []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		data: make(map[string]string),
		errs: make(map[string]error),
	}
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reads = append(f.reads, key)
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	v, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeStore) Set(ctx context.Context, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data[key] = value
	return nil
}

func (f *fakeStore) Keys(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// putJSON 序列化后写入
func (f *fakeStore) putJSON(t *testing.T, key string, v any) {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, f.Set(context.Background(), key, string(b)))
}

func newTestAggregator(s store.Store) *dailylog.CategoryAggregator {
	logger := zap.NewNop()
	return dailylog.NewCategoryAggregator(dailylog.NewRecordReader(s, logger), logger)
}

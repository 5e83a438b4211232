// Package store 提供日誌记录所在的键值存储抽象
//
// 当前实现：
//   - MemoryStore：内存存储，可从 localStorage 导出的 JSON 快照加载
//   - RedisStore：基于 go-redis
//   - PostgresStore：基于 lib/pq 的键值表
package store

import (
	"context"
	"errors"
)

// ErrMiss 表示键不存在
var ErrMiss = errors.New("key not found")

// Store 抽象的键值存储（值均为序列化后的字符串）
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Keys(ctx context.Context) ([]string, error)
}

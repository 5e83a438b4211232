package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"wisefido-carelog/internal/config"
	"wisefido-carelog/internal/export"
	"wisefido-carelog/internal/models"
	"wisefido-carelog/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const testDay = "2025-07-25"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Store.Backend = config.BackendMemory
	cfg.Keys.Subjects = "users"
	cfg.Keys.EventsPrefix = "events_"
	cfg.Keys.LegacyEventsKey = "care_events"
	return cfg
}

func seedStore(t *testing.T) *store.MemoryStore {
	ctx := context.Background()
	m := store.NewMemoryStore()
	seed := map[string]string{
		"users": `[{"id":"u1","name":"Taro"},{"id":"u2","name":"Hanako"}]`,
		"hydration_records_2025-07-25": `[
			{"event_timestamp":"2025-07-25T08:10","user_id":"u1","amount":"120","intake_type":"oral"},
			{"event_timestamp":"2025-07-25T09:00","user_id":"u2","amount":"80","intake_type":"tube"}
		]`,
		"vital_records_2025-07-25": `{not json`,
		"vital_records":            `[{"user_id":"u1","date":"2025-07-25","timestamp":"2025-07-25T08:10","temperature":36.8}]`,
		"events_u1": `[
			{"category":"vitals","user_id":"u1","created_at":"2025-07-25T08:10:00","temperature":36.5},
			{"category":"vitals","user_id":"u1","created_at":"2025-07-25T08:10:40","temperature":36.8},
			{"category":"hydration","user_id":"u1","created_at":"2025-07-25T08:10:00","amount":"120"},
			{"category":"seizure","user_id":"u1","created_at":"2025-07-25T09:00:00","duration":30}
		]`,
		"care_events": `[{"category":"excretion","user_id":"u2","created_at":"2025-07-25T07:00:00","excretion_type":"urine"}]`,
	}
	for k, v := range seed {
		require.NoError(t, m.Set(ctx, k, v))
	}
	return m
}

func TestDailyLogService_SheetLines(t *testing.T) {
	svc := NewDailyLogServiceWithStore(testConfig(), seedStore(t), zap.NewNop())

	lines := svc.SheetLines(context.Background(), "u1", testDay)
	require.Len(t, lines, 2)
	assert.Equal(t, models.CategoryHydration, lines[0].Category)
	assert.Equal(t, "08:10 oral 120ml", lines[0].Text)
	assert.Equal(t, models.CategoryVital, lines[1].Category)
	assert.Equal(t, "08:10 体温36.8℃", lines[1].Text)
}

func TestDailyLogService_ReportAndAnalyzeFacility(t *testing.T) {
	svc := NewDailyLogServiceWithStore(testConfig(), seedStore(t), zap.NewNop())

	reports, err := svc.AnalyzeFacility(context.Background(), testDay)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	taro := reports[0]
	assert.Equal(t, "Taro", taro.Subject.Name)
	require.NotNil(t, taro.Log)
	require.NotNil(t, taro.Log.Vitals)
	assert.Equal(t, 36.8, *taro.Log.Vitals.Temperature)
	assert.Len(t, taro.Log.Hydration, 1)
	assert.Len(t, taro.Log.Seizure, 1)
	require.Len(t, taro.Vitals, 1)
	assert.Equal(t, 30.0, taro.Stats.SeizureTotalSeconds)
	assert.Equal(t, 1, taro.Stats.Counts[models.CategoryHydration])

	hanako := reports[1]
	require.Len(t, hanako.Log.Excretion, 1)
	assert.Equal(t, "urine", hanako.Log.Excretion[0].ExcretionType)
	assert.Nil(t, hanako.Log.Vitals)
	assert.Empty(t, hanako.Vitals)
}

func TestDailyLogService_AnalyzeFacility_Canceled(t *testing.T) {
	svc := NewDailyLogServiceWithStore(testConfig(), seedStore(t), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports, err := svc.AnalyzeFacility(ctx, testDay)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, reports)
}

func TestDailyLogService_ExportSheet(t *testing.T) {
	svc := NewDailyLogServiceWithStore(testConfig(), seedStore(t), zap.NewNop())

	data, err := svc.ExportSheet(context.Background(), testDay, "u1")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.LogSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Taro", rows[1][2])
}

func TestOpenStore_MemoryWithSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users":"[{\"id\":\"u1\",\"name\":\"Taro\"}]"}`), 0o600))

	cfg := testConfig()
	cfg.Store.SnapshotPath = path

	svc, err := NewDailyLogService(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, []models.Subject{{ID: "u1", Name: "Taro"}}, svc.Subjects(context.Background()))
}

func TestOpenStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("a:users", `[{"id":"u9","name":"Jiro"}]`))

	cfg := testConfig()
	cfg.Store.Backend = config.BackendRedis
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.KeyPrefix = "a:"

	svc, err := NewDailyLogService(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, []models.Subject{{ID: "u9", Name: "Jiro"}}, svc.Subjects(context.Background()))
}

func TestOpenStore_UnsupportedBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Store.Backend = "indexeddb"

	_, _, err := OpenStore(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
}

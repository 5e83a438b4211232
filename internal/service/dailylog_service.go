package service

import (
	"context"
	"fmt"
	"io"

	"wisefido-carelog/internal/config"
	"wisefido-carelog/internal/dailylog"
	"wisefido-carelog/internal/export"
	"wisefido-carelog/internal/models"
	"wisefido-carelog/internal/store"

	"go.uber.org/zap"
)

// DailyLogService 日誌服务（组装存储与聚合引擎）
type DailyLogService struct {
	config     *config.Config
	logger     *zap.Logger
	store      store.Store
	closer     io.Closer
	aggregator *dailylog.CategoryAggregator
	assembler  *dailylog.DailyLogAssembler
	history    *dailylog.HistoryLoader
}

// NewDailyLogService 按配置打开存储后端并创建服务
func NewDailyLogService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*DailyLogService, error) {
	s, closer, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	svc := NewDailyLogServiceWithStore(cfg, s, logger)
	svc.closer = closer
	return svc, nil
}

// NewDailyLogServiceWithStore 使用已有的存储创建服务
func NewDailyLogServiceWithStore(cfg *config.Config, s store.Store, logger *zap.Logger) *DailyLogService {
	reader := dailylog.NewRecordReader(s, logger)
	return &DailyLogService{
		config:     cfg,
		logger:     logger,
		store:      s,
		aggregator: dailylog.NewCategoryAggregator(reader, logger),
		assembler:  dailylog.NewDailyLogAssembler(logger),
		history: dailylog.NewHistoryLoader(reader, dailylog.HistoryKeys{
			Subjects:        cfg.Keys.Subjects,
			EventsPrefix:    cfg.Keys.EventsPrefix,
			LegacyEventsKey: cfg.Keys.LegacyEventsKey,
		}, logger),
	}
}

// OpenStore 按 Store.Backend 打开存储
// 返回的 io.Closer 可能为 nil（内存后端）
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, io.Closer, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		m := store.NewMemoryStore()
		if cfg.Store.SnapshotPath != "" {
			n, err := m.LoadSnapshotFile(cfg.Store.SnapshotPath)
			if err != nil {
				return nil, nil, err
			}
			logger.Info("Loaded snapshot",
				zap.String("path", cfg.Store.SnapshotPath),
				zap.Int("key_count", n),
			)
		}
		return m, nil, nil

	case config.BackendRedis:
		r := store.NewRedisStore(store.NewRedisClient(&cfg.Redis), cfg.Redis.KeyPrefix)
		if err := r.Ping(ctx); err != nil {
			r.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return r, r, nil

	case config.BackendPostgres:
		db, err := store.OpenPostgres(&cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		p := store.NewPostgresStore(db, cfg.Database.Table)
		if err := p.EnsureTable(ctx); err != nil {
			p.Close()
			return nil, nil, err
		}
		return p, p, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}

// Store 返回底层存储
func (s *DailyLogService) Store() store.Store { return s.store }

// Close 关闭存储连接
func (s *DailyLogService) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Subjects 读取住户名册
func (s *DailyLogService) Subjects(ctx context.Context) []models.Subject {
	return s.history.LoadSubjects(ctx)
}

// SheetLines 某住户某日的打印摘要
func (s *DailyLogService) SheetLines(ctx context.Context, subjectID, day string) []models.SummaryLine {
	return dailylog.NormalizeForSheet(s.aggregator.GetDailyLogs(ctx, subjectID, day))
}

// DailyLog 某住户某日的规范化日誌；输入缺失时返回 nil
func (s *DailyLogService) DailyLog(ctx context.Context, subject models.Subject, day string) *models.NormalizedDailyLog {
	history := s.history.LoadHistory(ctx, subject.ID)
	return s.assembler.GenerateDailyLog(subject.ID, subject.Name, day, history)
}

// PrintVitals 某住户某日每分钟去重后的生命体征
func (s *DailyLogService) PrintVitals(ctx context.Context, subjectID, day string) []models.VitalsEntry {
	return dailylog.PrintVitals(subjectID, day, s.history.LoadHistory(ctx, subjectID))
}

// Report 单个住户的完整日报
func (s *DailyLogService) Report(ctx context.Context, subject models.Subject, day string) models.SubjectReport {
	daily := s.aggregator.GetDailyLogs(ctx, subject.ID, day)
	history := s.history.LoadHistory(ctx, subject.ID)

	log := s.assembler.GenerateDailyLog(subject.ID, subject.Name, day, history)
	vitals := dailylog.PrintVitals(subject.ID, day, history)
	stats := dailylog.ComputeStats(daily, log, vitals)
	stats.SubjectID = subject.ID
	stats.Date = day

	return models.SubjectReport{
		Subject: subject,
		Log:     log,
		Lines:   dailylog.NormalizeForSheet(daily),
		Vitals:  vitals,
		Stats:   stats,
	}
}

// AnalyzeFacility 对名册中的每个住户依次生成日报
//
// 逐个住户顺序处理，不并发，以限制内存与存储访问压力。
// ctx 被取消时返回已完成的部分结果与 ctx.Err()。
func (s *DailyLogService) AnalyzeFacility(ctx context.Context, day string) ([]models.SubjectReport, error) {
	subjects := s.history.LoadSubjects(ctx)
	reports := make([]models.SubjectReport, 0, len(subjects))
	for _, subject := range subjects {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		reports = append(reports, s.Report(ctx, subject, day))
	}

	s.logger.Info("Analyzed facility",
		zap.String("date", day),
		zap.Int("subject_count", len(reports)),
	)
	return reports, nil
}

// ExportSheet 生成日誌表格
// subjectID 为空时导出整个名册
func (s *DailyLogService) ExportSheet(ctx context.Context, day, subjectID string) ([]byte, error) {
	var reports []models.SubjectReport
	if subjectID == "" {
		var err error
		if reports, err = s.AnalyzeFacility(ctx, day); err != nil {
			return nil, err
		}
	} else {
		reports = []models.SubjectReport{s.Report(ctx, s.lookupSubject(ctx, subjectID), day)}
	}

	data, err := export.GenerateDailySheet(day, reports)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sheet: %w", err)
	}
	return data, nil
}

// lookupSubject 名册中找不到时以 ID 作为名称
func (s *DailyLogService) lookupSubject(ctx context.Context, subjectID string) models.Subject {
	for _, sub := range s.history.LoadSubjects(ctx) {
		if sub.ID == subjectID {
			return sub
		}
	}
	return models.Subject{ID: subjectID, Name: subjectID}
}

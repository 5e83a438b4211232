package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"wisefido-carelog/internal/config"
	logpkg "wisefido-carelog/internal/logger"
	"wisefido-carelog/internal/models"
	"wisefido-carelog/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app 命令共享的服务与日志
type app struct {
	svc    *service.DailyLogService
	logger *zap.Logger
	out    io.Writer
}

// execute 构建命令树并执行；无论命令成功与否都关闭存储连接
func execute(out io.Writer, args []string) error {
	root, a := newRootCmd(out)
	defer a.close()
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd(out io.Writer) (*cobra.Command, *app) {
	a := &app{out: out}
	var day string

	root := &cobra.Command{
		Use:           "wisefido-carelog",
		Short:         "Aggregate daily care records into print sheets and daily logs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&day, "day", "d", time.Now().Format("2006-01-02"), "calendar day (YYYY-MM-DD)")

	root.AddCommand(
		newSheetCmd(a, &day),
		newDailyCmd(a, &day),
		newVitalsCmd(a, &day),
		newAnalyzeCmd(a, &day),
		newExportCmd(a, &day),
		newKeysCmd(a),
	)
	return root, a
}

func newSheetCmd(a *app, day *string) *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Print one summary line per category for a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				return fmt.Errorf("--subject is required")
			}
			lines := a.svc.SheetLines(cmd.Context(), subject, *day)
			if len(lines) == 0 {
				fmt.Fprintln(a.out, "記録なし")
				return nil
			}
			for _, l := range lines {
				fmt.Fprintf(a.out, "[%s]\n%s\n", l.Label, l.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "subject id")
	return cmd
}

func newDailyCmd(a *app, day *string) *cobra.Command {
	var subject, name string
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Print the normalized daily log of a subject as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				return fmt.Errorf("--subject is required")
			}
			if name == "" {
				name = a.subjectName(cmd.Context(), subject)
			}
			return a.printJSON(a.svc.DailyLog(cmd.Context(), models.Subject{ID: subject, Name: name}, *day))
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "subject id")
	cmd.Flags().StringVarP(&name, "name", "n", "", "subject name (defaults to the roster entry)")
	return cmd
}

func newVitalsCmd(a *app, day *string) *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "vitals",
		Short: "Print per-minute deduplicated vitals of a subject as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				return fmt.Errorf("--subject is required")
			}
			return a.printJSON(a.svc.PrintVitals(cmd.Context(), subject, *day))
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "subject id")
	return cmd
}

func newAnalyzeCmd(a *app, day *string) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Build daily statistics for every subject in the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := a.svc.AnalyzeFacility(cmd.Context(), *day)
			if err != nil {
				return err
			}
			stats := make([]models.DailyStats, 0, len(reports))
			for _, r := range reports {
				stats = append(stats, r.Stats)
			}
			return a.printJSON(stats)
		},
	}
}

func newExportCmd(a *app, day *string) *cobra.Command {
	var subject, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the daily print sheet as an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.svc.ExportSheet(cmd.Context(), *day, subject)
			if err != nil {
				return err
			}
			path := output
			if path == "" {
				path = fmt.Sprintf("carelog_%s.xlsx", *day)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			a.logger.Info("Exported sheet", zap.String("path", path), zap.Int("bytes", len(data)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "subject id (empty exports the whole roster)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path")
	return cmd
}

func newKeysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List keys present in the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := a.svc.Store().Keys(cmd.Context())
			if err != nil {
				return err
			}
			for _, k := range ks {
				fmt.Fprintln(a.out, k)
			}
			return nil
		},
	}
}

func (a *app) init(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logpkg.NewLoggerTo(cfg.Log.Level, cfg.Log.Format, "wisefido-carelog", cfg.Log.Output)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = log

	svc, err := service.NewDailyLogService(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create daily log service: %w", err)
	}
	a.svc = svc
	return nil
}

// close 可重复调用
func (a *app) close() error {
	if a.logger != nil {
		defer a.logger.Sync()
	}
	if a.svc == nil {
		return nil
	}
	svc := a.svc
	a.svc = nil
	return svc.Close()
}

func (a *app) subjectName(ctx context.Context, subjectID string) string {
	for _, s := range a.svc.Subjects(ctx) {
		if s.ID == subjectID {
			return s.Name
		}
	}
	return subjectID
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

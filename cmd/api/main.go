package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/johangly/gpu/internal/config"
	appHTTP "github.com/johangly/gpu/internal/handler/http"
	"github.com/johangly/gpu/internal/pkg/cron"
	"github.com/johangly/gpu/internal/pkg/database"
	"github.com/johangly/gpu/internal/pkg/jwt"
	"github.com/johangly/gpu/internal/pkg/sse"
	"github.com/johangly/gpu/internal/pkg/storage"
	"github.com/johangly/gpu/internal/repository/postgresql"
	attendanceService "github.com/johangly/gpu/internal/service/attendance"
	serviceAuth "github.com/johangly/gpu/internal/service/auth"
	employeeService "github.com/johangly/gpu/internal/service/employee"
	groupService "github.com/johangly/gpu/internal/service/group"
	reportService "github.com/johangly/gpu/internal/service/report"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := appHTTP.NewLogger(cfg.App.Env, cfg.LogLevel())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	weekday, err := reportService.WeekdayConvention(cfg.Report.WeekdayConvention)
	if err != nil {
		return err
	}
	loc := cfg.Location()

	var revoked jwt.RevocationStore
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("error connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		revoked = jwt.NewRedisRevocationStore(client)
		slog.Info("token revocation backed by redis", "addr", cfg.Redis.Addr)
	} else {
		slog.Warn("REDIS_ADDR not set, revoked tokens are kept in memory")
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, revoked)
	if err != nil {
		return err
	}

	archive, err := storage.NewLocalStorage(cfg.Report.StoragePath)
	if err != nil {
		return fmt.Errorf("failed to initialize report storage: %w", err)
	}

	feed := sse.NewHub()
	transactor := postgresql.NewTransactor(db)
	groupRepo := postgresql.NewGroupRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	reportSource := postgresql.NewReportRepository(employeeRepo, groupRepo, attendanceRepo)

	authService := serviceAuth.NewAuthService(employeeRepo, JWTService)
	groupSvc := groupService.NewGroupService(transactor, groupRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, groupRepo)
	attendanceSvc := attendanceService.NewAttendanceService(transactor, attendanceRepo, employeeRepo, feed, loc)
	reportSvc := reportService.NewReportService(reportSource, archive, loc, weekday)

	scheduler := cron.NewScheduler()
	cron.NewReportJobs(reportSvc, archive, loc).RegisterJobs(scheduler, cfg.Report.ExportInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(logger, cfg.App.AllowedOrigins, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Group:      appHTTP.NewGroupHandler(groupSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, feed),
		Report:     appHTTP.NewReportHandler(reportSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

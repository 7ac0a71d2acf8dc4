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

	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/hris-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/policy"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-payroll-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hris-payroll-go/internal/service/dashboard"
	leaveService "github.com/cmlabs-hris/hris-payroll-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/hris-payroll-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/hris-payroll-go/internal/service/report"
)

type repositories struct {
	employees   employee.EmployeeRepository
	attendances attendance.AttendanceRepository
	leaves      leave.LeaveRequestRepository
	payrolls    payroll.PayrollRepository
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewRequestLogger(&slog.HandlerOptions{Level: cfg.SlogLevel()}, os.Stdout,
		slog.String("app", "hris-payroll"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	attendancePolicy := policy.NewDefaultPolicy()
	if cfg.Policy.File != "" {
		attendancePolicy, err = policy.LoadFile(cfg.Policy.File)
		if err != nil {
			return fmt.Errorf("load attendance policy: %w", err)
		}
	}
	clock := policy.SystemClock{}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	reportSvc := reportService.NewReportService(repos.attendances, repos.leaves, repos.employees, attendancePolicy)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendances, repos.employees, attendancePolicy, clock)
	leaveSvc := leaveService.NewLeaveService(repos.leaves, repos.employees, clock)
	payrollSvc := payrollService.NewPayrollService(repos.payrolls, repos.employees, reportSvc, clock)
	dashboardSvc := dashboardService.NewDashboardService(repos.employees, repos.attendances, repos.leaves, attendancePolicy, clock)

	scheduler := cron.NewScheduler()
	if cfg.Cron.StatsDigestInterval > 0 {
		cron.NewStatisticsJobs(dashboardSvc, clock, attendancePolicy.Location(), logger).
			RegisterJobs(scheduler, cfg.Cron.StatsDigestInterval)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		JWTService:     JWTService,
		Logger:         logger,
		LogLevel:       slog.LevelDebug,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		Attendance:     appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:          appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:        appHTTP.NewPayrollHandler(payrollSvc),
		Report:         appHTTP.NewReportHandler(reportSvc),
		Dashboard:      appHTTP.NewDashboardHandler(dashboardSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "storage", cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		employees := memory.NewEmployeeRepository()
		if cfg.Storage.SeedEmployeesFile != "" {
			n, err := memory.SeedEmployees(ctx, employees, cfg.Storage.SeedEmployeesFile)
			if err != nil {
				return nil, fmt.Errorf("seed employees: %w", err)
			}
			slog.Info("seeded employees", "count", n)
		}
		return &repositories{
			employees:   employees,
			attendances: memory.NewAttendanceRepository(),
			leaves:      memory.NewLeaveRequestRepository(),
			payrolls:    memory.NewPayrollRepository(employees),
			close:       func() {},
		}, nil

	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if cfg.Database.RunMigrations {
			if err := db.Migrate(ctx); err != nil {
				db.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		return &repositories{
			employees:   postgresql.NewEmployeeRepository(db),
			attendances: postgresql.NewAttendanceRepository(db),
			leaves:      postgresql.NewLeaveRequestRepository(db),
			payrolls:    postgresql.NewPayrollRepository(db),
			close:       db.Close,
		}, nil
	}
}

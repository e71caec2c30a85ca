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

	"github.com/cmlabs-hris/rfid-attendance-go/internal/config"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/checkin"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/rfid"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/room"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/workhour"
	appHTTP "github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/email"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/kafka"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/sse"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/repository/memory"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/repository/postgresql"
	authService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/auth"
	checkinService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/checkin"
	dayOffService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/dayoff"
	employeeService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/employee"
	payrollService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/payroll"
	rfidService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/rfid"
	roomService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/room"
	workHourService "github.com/cmlabs-hris/rfid-attendance-go/internal/service/workhour"
	"github.com/go-chi/httplog/v3"
)

type repositories struct {
	transactor    database.Transactor
	employees     employee.Repository
	rooms         room.Repository
	machines      rfid.MachineRepository
	cards         rfid.CardRepository
	checkins      checkin.Repository
	daysOff       dayoff.Repository
	refreshTokens auth.RefreshTokenRepository
	close         func()
}

func newRepositories(ctx context.Context, cfg *config.Config, clk clock.Clock) (repositories, error) {
	if cfg.Database.Driver == "memory" {
		store := memory.NewStore(clk)
		return repositories{
			transactor:    store,
			employees:     store.Employees(),
			rooms:         store.Rooms(),
			machines:      store.Machines(),
			cards:         store.Cards(),
			checkins:      store.Checkins(),
			daysOff:       store.DaysOff(),
			refreshTokens: store.RefreshTokens(),
			close:         func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		return repositories{}, fmt.Errorf("failed to connect to database: %w", err)
	}
	return repositories{
		transactor:    postgresql.NewTransactor(db),
		employees:     postgresql.NewEmployeeRepository(db),
		rooms:         postgresql.NewRoomRepository(db),
		machines:      postgresql.NewMachineRepository(db),
		cards:         postgresql.NewCardRepository(db),
		checkins:      postgresql.NewCheckinRepository(db),
		daysOff:       postgresql.NewDayOffRepository(db),
		refreshTokens: postgresql.NewRefreshTokenRepository(db),
		close:         db.Close,
	}, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "rfid-attendance"),
		slog.String("env", cfg.App.Env),
	)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clock.New(cfg.Location())

	schedule, err := workhour.ParseSchedule(cfg.Schedule.WorkStart, cfg.Schedule.WorkEnd, cfg.Schedule.LunchStart, cfg.Schedule.LunchEnd)
	if err != nil {
		return err
	}

	repos, err := newRepositories(ctx, cfg, clk)
	if err != nil {
		return err
	}
	defer repos.close()

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return err
	}

	publisher := kafka.NewNoopPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		writer := kafka.NewWriter(cfg.Kafka.Brokers)
		defer writer.Close()
		publisher = kafka.NewPayslipPublisher(writer, cfg.Kafka.PayslipTopic)
	}

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(repos.employees, repos.refreshTokens, JWTService, clk)
	employeeSvc := employeeService.NewEmployeeService(repos.transactor, repos.employees, repos.rooms, repos.cards, repos.checkins)
	roomSvc := roomService.NewRoomService(repos.rooms, repos.employees, repos.machines)
	machineSvc := rfidService.NewMachineService(repos.machines)
	cardSvc := rfidService.NewCardService(repos.cards)
	checkinSvc := checkinService.NewCheckinService(repos.checkins, repos.cards, repos.machines, repos.rooms, sse.NewCheckinFeed(hub), clk)
	dayOffSvc := dayOffService.NewDayOffService(repos.transactor, repos.daysOff, repos.employees, emailService, clk)
	workHourSvc := workHourService.NewWorkHourService(repos.employees, repos.checkins, repos.daysOff, schedule, clk)
	payrollSvc := payrollService.NewPayrollService(repos.employees, workHourSvc, emailService, publisher, clk)

	handlers := appHTTP.Handlers{
		Auth:     appHTTP.NewAuthHandler(JWTService, authSvc),
		Employee: appHTTP.NewEmployeeHandler(employeeSvc),
		WorkHour: appHTTP.NewWorkHourHandler(workHourSvc, employeeSvc),
		Room:     appHTTP.NewRoomHandler(roomSvc),
		RFID:     appHTTP.NewRFIDHandler(machineSvc, cardSvc),
		Checkin:  appHTTP.NewCheckinHandler(checkinSvc, hub),
		DayOff:   appHTTP.NewDayOffHandler(dayOffSvc),
		Payroll:  appHTTP.NewPayrollHandler(payrollSvc, clk),
	}

	router := appHTTP.NewRouter(JWTService, handlers, appHTTP.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.App.AllowedOrigins,
		CheckinLimiter: middleware.NewRateLimiter(cfg.RateLimit.CheckinPerSecond, cfg.RateLimit.CheckinBurst),
	})

	scheduler := cron.NewScheduler(ctx)
	if cfg.Payroll.SalaryEmailInterval > 0 {
		cron.NewPayrollJobs(payrollSvc, clk).RegisterJobs(scheduler, cfg.Payroll.SalaryEmailInterval)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "driver", cfg.Database.Driver, "timezone", cfg.App.Timezone)
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

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

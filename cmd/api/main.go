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

	"github.com/dayflow-hr/dayflow-backend-go/internal/config"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	appHTTP "github.com/dayflow-hr/dayflow-backend-go/internal/handler/http"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/cron"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/email"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/lock"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/metrics"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/oauth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/queue"
	"github.com/dayflow-hr/dayflow-backend-go/internal/repository/memory"
	"github.com/dayflow-hr/dayflow-backend-go/internal/repository/postgresql"
	attendanceService "github.com/dayflow-hr/dayflow-backend-go/internal/service/attendance"
	serviceAuth "github.com/dayflow-hr/dayflow-backend-go/internal/service/auth"
	leaveService "github.com/dayflow-hr/dayflow-backend-go/internal/service/leave"
	payrollService "github.com/dayflow-hr/dayflow-backend-go/internal/service/payroll"
	profileService "github.com/dayflow-hr/dayflow-backend-go/internal/service/profile"
	userService "github.com/dayflow-hr/dayflow-backend-go/internal/service/user"
	"github.com/go-chi/httplog/v3"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const mailQueueKey = "dayflow:mail"

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

// repositories is the storage backend selected by STORE_DRIVER.
type repositories struct {
	users         user.UserRepository
	attendance    attendance.AttendanceRepository
	leaves        leave.LeaveRequestRepository
	payroll       payroll.PayrollConfigRepository
	refreshTokens auth.RefreshTokenRepository
	tx            database.Transactor
	healthy       appHTTP.HealthCheck
	close         func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func newLogger(app config.AppConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(app.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(!app.IsProduction())
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "dayflow-api"),
		slog.String("version", version),
		slog.String("env", app.Env),
	)
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	systemClock := clock.SystemClock{}
	calendar := clock.NewCalendar(systemClock, cfg.App.Location)
	m := metrics.New()

	repos, err := openStore(ctx, cfg, systemClock)
	if err != nil {
		return err
	}
	defer repos.close()

	// Redis is optional; without it the mail queue and day-close lock stay in process.
	var (
		redisClient *redis.Client
		mailQueue   queue.Queue = queue.NewInMemory(256)
		locker      lock.Locker = lock.NewMemoryLocker()
		redisHealth appHTTP.HealthCheck
	)
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()

		mailQueue = queue.NewRedisQueue(redisClient, mailQueueKey)
		locker = lock.NewRedisLocker(redisClient)
		redisHealth = func(ctx context.Context) bool { return database.RedisHealthy(ctx, redisClient) }
		slog.Info("Redis connected", "addr", cfg.Redis.Addr)
	} else {
		slog.Warn("REDIS_ADDR not set, using in-process queue and lock")
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("init email service: %w", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.IsProduction())

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	authSvc := serviceAuth.NewAuthService(repos.users, repos.refreshTokens, jwtService, repos.tx, mailQueue, systemClock, cfg.App.BaseURL)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, calendar, m)
	leaveSvc := leaveService.NewLeaveService(repos.leaves, attendanceSvc, repos.tx, systemClock, m)
	payrollSvc := payrollService.NewPayrollService(repos.payroll, repos.users)
	userSvc := userService.NewUserService(repos.users)
	profileSvc := profileService.NewProfileService(repos.users, repos.attendance, repos.leaves, repos.payroll)

	dayClose := cron.NewDayCloseJob(repos.attendance, repos.leaves, repos.users, calendar, locker, m, cfg.DayClose.Workers)
	schedule, err := cron.ParseRRule(cfg.DayClose.RRule, cfg.App.Location, systemClock.Now())
	if err != nil {
		return err
	}
	scheduler := cron.NewScheduler(systemClock)
	dayClose.RegisterJobs(scheduler, schedule)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:            logger,
		CORSOrigins:       cfg.App.CORSOrigins,
		JWTService:        jwtService,
		Metrics:           m.Handler(),
		AuthHandler:       appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL, cfg.App.IsProduction()),
		AttendanceHandler: appHTTP.NewAttendanceHandler(attendanceSvc),
		LeaveHandler:      appHTTP.NewLeaveHandler(leaveSvc),
		PayrollHandler:    appHTTP.NewPayrollHandler(payrollSvc),
		UserHandler:       appHTTP.NewUserHandler(userSvc, profileSvc),
		AdminHandler:      appHTTP.NewAdminHandler(profileSvc, dayClose, calendar),
		HealthHandler:     appHTTP.NewHealthHandler(repos.healthy, redisHealth),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return email.NewWorker(mailQueue, emailService).Run(gctx)
	})
	g.Go(func() error {
		scheduler.Start()
		<-gctx.Done()
		scheduler.Stop()
		return nil
	})
	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.Database.Driver, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		slog.Info("Shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config, c clock.Clock) (*repositories, error) {
	if cfg.Database.Driver == config.StoreDriverMemory {
		slog.Warn("STORE_DRIVER=memory, data is lost on restart")
		store := memory.NewStore(c)
		return &repositories{
			users:         memory.NewUserRepository(store),
			attendance:    memory.NewAttendanceRepository(store),
			leaves:        memory.NewLeaveRequestRepository(store),
			payroll:       memory.NewPayrollConfigRepository(store),
			refreshTokens: memory.NewRefreshTokenRepository(store),
			tx:            store,
			healthy:       func(context.Context) bool { return true },
			close:         func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := postgresql.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	slog.Info("Database connected", "host", cfg.Database.Host, "name", cfg.Database.Name)

	return &repositories{
		users:         postgresql.NewUserRepository(db),
		attendance:    postgresql.NewAttendanceRepository(db),
		leaves:        postgresql.NewLeaveRequestRepository(db),
		payroll:       postgresql.NewPayrollConfigRepository(db),
		refreshTokens: postgresql.NewRefreshTokenRepository(db),
		tx:            postgresql.NewTransactor(db),
		healthy:       db.Healthy,
		close:         db.Close,
	}, nil
}

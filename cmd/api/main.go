package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/plannerhq/planner-go/internal/config"
	"github.com/plannerhq/planner-go/internal/handler"
	"github.com/plannerhq/planner-go/internal/middleware"
	"github.com/plannerhq/planner-go/internal/notify"
	"github.com/plannerhq/planner-go/internal/repository"
	"github.com/plannerhq/planner-go/internal/scheduler"
	"github.com/plannerhq/planner-go/internal/seed"
	"github.com/plannerhq/planner-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	notifier, err := buildNotifier(cfg.Notify)
	if err != nil {
		slog.Error("notification sink setup failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	taskService := service.NewTaskService(taskRepo)
	scheduleService := service.NewScheduleService(scheduleRepo)
	reminderService := service.NewReminderService(reminderRepo, userRepo, notifier)
	dashboardService := service.NewDashboardService(taskService, scheduleService, reminderService)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	reminderHandler := handler.NewReminderHandler(reminderService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	if cfg.Seed.Enabled {
		if err := seed.New(db, cfg.Seed).Run(context.Background()); err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/v1/auth/register", authHandler.HandleRegister)
		r.Post("/api/v1/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/api/v1/auth/me", authHandler.HandleMe)

		r.Route("/api/v1/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.HandleList)
			r.Post("/", taskHandler.HandleCreate)
			r.Get("/today", taskHandler.HandleListToday)
			r.Get("/week", taskHandler.HandleListWeek)
			r.Get("/due-date", taskHandler.HandleListByDueDate)
			r.Get("/stats", taskHandler.HandleStats)
			r.Get("/status/{status}", taskHandler.HandleListByStatus)
			r.Get("/priority/{priority}", taskHandler.HandleListByPriority)
			r.Get("/{task_id}", taskHandler.HandleGet)
			r.Put("/{task_id}", taskHandler.HandleUpdate)
			r.Patch("/{task_id}/status", taskHandler.HandleUpdateStatus)
			r.Delete("/{task_id}", taskHandler.HandleDelete)
		})

		r.Route("/api/v1/schedules", func(r chi.Router) {
			r.Get("/", scheduleHandler.HandleList)
			r.Post("/", scheduleHandler.HandleCreate)
			r.Get("/today", scheduleHandler.HandleListToday)
			r.Get("/week", scheduleHandler.HandleListWeek)
			r.Get("/range", scheduleHandler.HandleListByDateRange)
			r.Get("/{schedule_id}", scheduleHandler.HandleGet)
			r.Put("/{schedule_id}", scheduleHandler.HandleUpdate)
			r.Delete("/{schedule_id}", scheduleHandler.HandleDelete)
		})

		r.Route("/api/v1/reminders", func(r chi.Router) {
			r.Get("/", reminderHandler.HandleList)
			r.Post("/", reminderHandler.HandleCreate)
			r.Get("/pending", reminderHandler.HandleListPending)
			r.Get("/delivered", reminderHandler.HandleListDelivered)
			r.Get("/upcoming", reminderHandler.HandleListUpcoming)
			r.Get("/today", reminderHandler.HandleListToday)
			r.Get("/stats", reminderHandler.HandleStats)
			r.Get("/{reminder_id}", reminderHandler.HandleGet)
			r.Put("/{reminder_id}", reminderHandler.HandleUpdate)
			r.Patch("/{reminder_id}/deliver", reminderHandler.HandleMarkDelivered)
			r.Post("/{reminder_id}/send-now", reminderHandler.HandleSendNow)
			r.Delete("/{reminder_id}", reminderHandler.HandleDelete)
		})

		r.Route("/api/v1/dashboard", func(r chi.Router) {
			r.Get("/today", dashboardHandler.HandleToday)
			r.Get("/week", dashboardHandler.HandleWeek)
			r.Get("/stats", dashboardHandler.HandleStats)
		})
	})

	sweeper := scheduler.NewSweeper(reminderRepo, userRepo, notifier, cfg.SweepInterval, cfg.SweepBatchSize)
	if err := sweeper.Start(); err != nil {
		slog.Error("reminder sweep start failed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// buildNotifier assembles the notification channels from config. The console
// channel is free; the email channel needs a reachable SMTP host.
func buildNotifier(cfg config.NotifyConfig) (*notify.Notifier, error) {
	var channels []notify.Channel

	if cfg.ConsoleEnabled {
		channels = append(channels, notify.NewConsoleChannel(nil))
	}
	if cfg.EmailEnabled {
		email, err := notify.NewEmailChannel(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
		if err != nil {
			return nil, err
		}
		channels = append(channels, email)
	}
	if len(channels) == 0 {
		slog.Warn("no notification channels enabled, reminders will not be delivered")
	}

	return notify.NewNotifier(channels...), nil
}

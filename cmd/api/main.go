package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/iza-pos/pos-backend-go/internal/config"
	appHTTP "github.com/iza-pos/pos-backend-go/internal/handler/http"
	"github.com/iza-pos/pos-backend-go/internal/pkg/cron"
	"github.com/iza-pos/pos-backend-go/internal/pkg/database"
	"github.com/iza-pos/pos-backend-go/internal/pkg/jwt"
	"github.com/iza-pos/pos-backend-go/internal/pkg/reminder"
	"github.com/iza-pos/pos-backend-go/internal/pkg/storage"
	"github.com/iza-pos/pos-backend-go/internal/repository/postgresql"
	archiveService "github.com/iza-pos/pos-backend-go/internal/service/archive"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	archiveRepo := postgresql.NewArchiveRepository(db)
	activityRepo := postgresql.NewActivityLogRepository(db)
	orderRepo := postgresql.NewOrderRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	reminderStore := reminder.NewStore(cfg.Reminder.StatePath)

	archiveSvc := archiveService.NewArchiveService(
		archiveRepo,
		activityRepo,
		orderRepo,
		attendanceRepo,
		fileStorage,
		reminderStore,
	)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("archive-reminder", cfg.Reminder.CheckInterval,
		cron.NewArchiveReminderJob(archiveRepo, reminderStore))
	scheduler.Start()
	defer scheduler.Stop()

	archiveHandler := appHTTP.NewArchiveHandler(archiveSvc)

	router := appHTTP.NewRouter(
		JWTService,
		archiveHandler,
		cfg.Storage.BasePath,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

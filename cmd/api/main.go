package main

import (
	"fmt"
	"net/http"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/config"
	appHTTP "github.com/johnOlanoDev/ability-assistance-back-sub000/internal/handler/http"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/cron"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/database"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/jwt"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/oauth"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/repository/postgresql"
	attendanceService "github.com/johnOlanoDev/ability-assistance-back-sub000/internal/service/attendance"
	serviceAuth "github.com/johnOlanoDev/ability-assistance-back-sub000/internal/service/auth"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/service/master"
	overrideService "github.com/johnOlanoDev/ability-assistance-back-sub000/internal/service/override"
	scheduleService "github.com/johnOlanoDev/ability-assistance-back-sub000/internal/service/schedule"
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

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	workplaceRepo := postgresql.NewWorkplaceRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	rangeRepo := postgresql.NewScheduleRangeRepository(db)
	changeRepo := postgresql.NewScheduleChangeRepository(db)
	exceptionRepo := postgresql.NewScheduleExceptionRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	scheduleSvc := scheduleService.NewScheduleService(db, scheduleRepo, rangeRepo)
	resolver := overrideService.NewResolver(changeRepo, exceptionRepo, scheduleSvc)
	coordinator := attendanceService.NewCoordinator(attendanceRepo, userRepo, scheduleRepo, companyRepo, resolver)
	overrideSvc := overrideService.NewOverrideService(
		db,
		changeRepo,
		exceptionRepo,
		coordinator,
		scheduleRepo,
		userRepo,
		workplaceRepo,
		positionRepo,
		companyRepo,
	)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, userRepo, scheduleRepo, companyRepo, resolver)
	authService := serviceAuth.NewAuthService(db, userRepo, JWTService)
	masterService := master.NewMasterService(companyRepo, workplaceRepo, positionRepo, userRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.App.FrontendURL)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	overrideHandler := appHTTP.NewOverrideHandler(overrideSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	masterHandler := appHTTP.NewMasterHandler(masterService)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, userRepo, companyRepo, resolver)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		scheduleHandler,
		overrideHandler,
		attendanceHandler,
		masterHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

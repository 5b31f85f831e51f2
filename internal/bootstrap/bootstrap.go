package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/atakan/campusadmin/internal/app/controllers"
	"github.com/atakan/campusadmin/internal/app/migrations"
	"github.com/atakan/campusadmin/internal/app/repositories"
	"github.com/atakan/campusadmin/internal/app/routes"
	"github.com/atakan/campusadmin/internal/app/services"
	"github.com/atakan/campusadmin/internal/config"
	"github.com/atakan/campusadmin/internal/db"
	"github.com/atakan/campusadmin/internal/middleware"
	"github.com/atakan/campusadmin/internal/pkg/auth"
	"github.com/atakan/campusadmin/internal/pkg/logger"
	"github.com/atakan/campusadmin/internal/seed"
)

// Dependencies holds the wired application components.
type Dependencies struct {
	Config         *config.Config
	DB             *db.PostgresDB
	JWTService     *auth.JWTService
	AuthMiddleware *middleware.AuthMiddleware
	Controllers    routes.Controllers
}

// LoadConfigAndSetupLogger loads the application configuration and
// configures the global logger from it.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "console",
	})

	return cfg, nil
}

// SetupDatabase connects to PostgreSQL, runs pending migrations and
// seeds the default admin account.
func SetupDatabase(ctx context.Context, cfg *config.Config) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seed.SeedDefaultAdmin(ctx, database.Pool, cfg); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	return database, nil
}

// BuildDependencies wires repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) *Dependencies {
	repos := repositories.NewRepositories(database.Pool)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    cfg.TokenExpiration(),
		TokenIssuer: cfg.JWT.Issuer,
	})

	studentService := services.NewStudentService(repos.StudentRepository, repos.EnrollmentRepository)
	courseService := services.NewCourseService(repos.CourseRepository)
	authService := services.NewAuthService(repos.UserRepository, jwtService)

	return &Dependencies{
		Config:         cfg,
		DB:             database,
		JWTService:     jwtService,
		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),
		Controllers: routes.Controllers{
			Auth:    controllers.NewAuthController(authService),
			Student: controllers.NewStudentController(studentService),
			Course:  controllers.NewCourseController(courseService),
		},
	}
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(deps *Dependencies) *gin.Engine {
	if deps.Config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())

	routes.RegisterRoutes(router, deps.Controllers, deps.AuthMiddleware)

	return router
}

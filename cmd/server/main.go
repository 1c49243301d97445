package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"clubmanager_backend/internal/handlers"
	appmw "clubmanager_backend/internal/middleware"
	"clubmanager_backend/internal/models"
	"clubmanager_backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize Database
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := services.InitDB(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Redis backs the revoked-token list; without it logout is a
	// client-side discard only.
	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer cache.Close()
	} else {
		log.Println("Warning: REDIS_URL not set, token revocation disabled")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	ttl := time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("Invalid TOKEN_TTL: %v", err)
		}
		ttl = parsed
	}
	tokens := services.NewTokenService(secret, "clubmanager", ttl, cache)

	// Domain services
	roles := services.NewRoleService(db)
	allUsers := services.NewUserService(db, roles, "")
	baseUsers := services.NewUserService(db, roles, models.UserKindBase)
	clubAdmins := services.NewUserService(db, roles, models.UserKindClubAdmin)
	coaches := services.NewUserService(db, roles, models.UserKindCoach)
	players := services.NewUserService(db, roles, models.UserKindPlayer)
	clubs := services.NewClubService(db)
	tournaments := services.NewEventService(db, models.EventKindTournament)
	trainings := services.NewEventService(db, models.EventKindTraining)

	// Handlers
	authHandler := handlers.NewAuthHandler(allUsers, tokens)
	userHandler := handlers.NewUserHandler(baseUsers)
	clubAdminHandler := handlers.NewUserHandler(clubAdmins)
	coachHandler := handlers.NewUserHandler(coaches)
	playerHandler := handlers.NewPlayerHandler(players, tournaments, trainings)
	clubHandler := handlers.NewClubHandler(clubs)
	tournamentHandler := handlers.NewEventHandler(tournaments)
	trainingHandler := handlers.NewEventHandler(trainings)

	// Create Echo instance
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.HTTPErrorHandler = appmw.CustomErrorHandler

	auth := appmw.RequireAuth(tokens)
	adminOnly := appmw.RequireRoles(models.RoleAdmin)
	clubStaff := appmw.RequireRoles(models.RoleClubAdmin, models.RoleAdmin)
	playerUpdate := appmw.RequireRoles(models.RoleClubAdmin, models.RoleCoach, models.RoleAdmin)
	playerSelf := appmw.RequireRoles(models.RolePlayer, models.RoleAdmin)
	member := appmw.RequireRoles(models.RoleClubAdmin, models.RoleCoach, models.RolePlayer, models.RoleAdmin)

	// Auth
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout)

	// Generic users: registration is public, management is admin-only.
	e.POST("/api/users", userHandler.Create)
	users := e.Group("/api/users", auth, adminOnly)
	users.GET("/:id", userHandler.GetByID)
	users.GET("/username/:username", userHandler.GetByUsername)
	users.GET("", userHandler.GetAll)
	users.GET("/page/:page", userHandler.GetPage)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	users.PATCH("/:id/affiliation-status", userHandler.UpdateAffiliationStatus)

	// Club administrators
	e.POST("/api/club-administrators", clubAdminHandler.Create)
	admins := e.Group("/api/club-administrators", auth)
	admins.GET("/:id", clubAdminHandler.GetByID, adminOnly)
	admins.GET("/username/:username", clubAdminHandler.GetByUsername, adminOnly)
	admins.GET("", clubAdminHandler.GetAll, adminOnly)
	admins.GET("/page/:page", clubAdminHandler.GetPage, adminOnly)
	admins.PUT("/:id", clubAdminHandler.Update, adminOnly)
	admins.DELETE("/:id", clubAdminHandler.Delete, adminOnly)
	admins.PATCH("/:id/affiliation-status", clubAdminHandler.UpdateAffiliationStatus, adminOnly)
	admins.PATCH("/clubs/:clubId/players/:playerId", clubHandler.LinkPlayerToClub, clubStaff)

	// Coaches
	e.POST("/api/coaches", coachHandler.Create)
	coachGroup := e.Group("/api/coaches", auth, clubStaff)
	coachGroup.GET("/:id", coachHandler.GetByID)
	coachGroup.GET("/username/:username", coachHandler.GetByUsername)
	coachGroup.GET("", coachHandler.GetAll)
	coachGroup.GET("/page/:page", coachHandler.GetPage)
	coachGroup.PUT("/:id", coachHandler.Update)
	coachGroup.DELETE("/:id", coachHandler.Delete)
	coachGroup.PATCH("/:id/affiliation-status", coachHandler.UpdateAffiliationStatus)

	// Players
	e.POST("/api/players", playerHandler.Create)
	playerGroup := e.Group("/api/players", auth)
	playerGroup.GET("/:id", playerHandler.GetByID, clubStaff)
	playerGroup.GET("/username/:username", playerHandler.GetByUsername, clubStaff)
	playerGroup.GET("", playerHandler.GetAll, clubStaff)
	playerGroup.GET("/page/:page", playerHandler.GetPage, clubStaff)
	playerGroup.PUT("/:id", playerHandler.Update, playerUpdate)
	playerGroup.DELETE("/:id", playerHandler.Delete, clubStaff)
	playerGroup.PATCH("/:id/affiliation-status", playerHandler.UpdateAffiliationStatus, clubStaff)
	playerGroup.PATCH("/:playerId/register-in-tournament-event/:tournamentEventId", playerHandler.RegisterInTournamentEvent, playerSelf)
	playerGroup.PATCH("/:playerId/register-in-training-event/:trainingEventId", playerHandler.RegisterInTrainingEvent, playerSelf)

	// Clubs
	clubGroup := e.Group("/api/clubs", auth, clubStaff)
	clubGroup.POST("/club-administrator/:clubAdminId", clubHandler.Create)
	clubGroup.GET("/:id", clubHandler.GetByID)
	clubGroup.GET("/name/:name", clubHandler.GetByName)
	clubGroup.GET("", clubHandler.GetAll)
	clubGroup.GET("/page/:page", clubHandler.GetPage)
	clubGroup.PUT("/:id", clubHandler.Update)
	clubGroup.DELETE("/:id", clubHandler.Delete)

	// Events
	tournamentGroup := e.Group("/api/tournament-events", auth, clubStaff)
	tournamentGroup.POST("", tournamentHandler.Create)
	tournamentGroup.GET("/:id", tournamentHandler.GetByID)
	tournamentGroup.GET("", tournamentHandler.GetAll)
	tournamentGroup.GET("/page/:page", tournamentHandler.GetPage)
	tournamentGroup.PUT("/:id", tournamentHandler.Update)
	tournamentGroup.DELETE("/:id", tournamentHandler.Delete)

	trainingGroup := e.Group("/api/training-events", auth)
	trainingGroup.POST("", trainingHandler.Create, clubStaff)
	trainingGroup.GET("/:id", trainingHandler.GetByID, clubStaff)
	trainingGroup.GET("", trainingHandler.GetAll, clubStaff)
	trainingGroup.GET("/page/:page", trainingHandler.GetPage, clubStaff)
	trainingGroup.PUT("/:id", trainingHandler.Update, clubStaff)
	trainingGroup.DELETE("/:id", trainingHandler.Delete, clubStaff)
	trainingGroup.GET("/:id/schedule", trainingHandler.GetSchedule, member)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}

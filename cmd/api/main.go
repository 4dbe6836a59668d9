package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"userboard/internal/config"
	"userboard/internal/database"
	"userboard/internal/domain"
	"userboard/internal/middleware"
	"userboard/internal/modules/auth"
	"userboard/internal/modules/users"
	"userboard/internal/pkg/authcookie"
	"userboard/internal/pkg/token"
	"userboard/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	tokens := token.New(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	cookies := authcookie.NewSetter(cfg.CookieSecure)

	authService := auth.NewService(userRepo, tokens)
	authHandler := auth.NewHandler(authService, cookies, tokens)

	usersService := users.NewService(userRepo)
	usersHandler := users.NewHandler(usersService)

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "./web/public")

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login")
	})

	authHandler.RegisterRoutes(r)

	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.RequireAuth(tokens, cookies))
	{
		dashboard.GET("", authHandler.Dashboard)

		admin := dashboard.Group("/users")
		admin.Use(middleware.AdminOnly())
		usersHandler.RegisterRoutes(admin)
	}

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"message": "Page not found",
			"user":    nil,
		})
	})

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}

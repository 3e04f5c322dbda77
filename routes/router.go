package routes

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitquest/fitquest/config"
	"github.com/fitquest/fitquest/controllers"
	"github.com/fitquest/fitquest/middleware"
	"github.com/fitquest/fitquest/utils"
)

// SetupRouter builds the gin engine: logging, CORS, templates, static assets
// and the full route table.
func SetupRouter(db *gorm.DB, sessions *utils.SessionStore) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Record page views after each request
	r.Use(middleware.PageViewRecorder(db))

	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int { return a + b },
	})
	r.LoadHTMLGlob("views/*.html")
	r.Static("/static", "./static")

	Register(r, db, sessions)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/dashboard")
	})

	return r
}

// Register wires the route table onto an engine. Split from SetupRouter so
// tests can mount the same routes on a bare engine.
func Register(r *gin.Engine, db *gorm.DB, sessions *utils.SessionStore) {
	authController := controllers.NewAuthController(db, sessions)
	dashboardController := controllers.NewDashboardController(db)
	challengeController := controllers.NewChallengeController(db)
	progressController := controllers.NewProgressController(db)
	leaderboardController := controllers.NewLeaderboardController(db)
	rewardController := controllers.NewRewardController(db)
	chatController := controllers.NewChatController(db)

	r.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/dashboard")
	})

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	r.GET("/login", authController.LoginPage)
	r.POST("/login", middleware.RateLimitMiddleware(), authController.Login)
	r.GET("/signup", authController.SignupPage)
	r.POST("/signup", middleware.RateLimitMiddleware(), authController.Signup)
	r.GET("/logout", authController.Logout)

	protected := r.Group("")
	protected.Use(middleware.SessionRequired(sessions))
	protected.GET("/dashboard", dashboardController.Show)
	protected.GET("/challenges", challengeController.List)
	protected.POST("/challenges/join", challengeController.Join)
	protected.GET("/progress", progressController.List)
	protected.POST("/progress", progressController.Append)
	protected.GET("/leaderboard", leaderboardController.List)
	protected.GET("/rewards", rewardController.List)
	protected.POST("/rewards/claim", rewardController.Claim)
	protected.GET("/chat", chatController.List)
	protected.POST("/chat", chatController.Post)
	protected.POST("/chat/clear", chatController.Clear)
	protected.GET("/profile", authController.ProfilePage)
	protected.POST("/profile", authController.UpdateProfile)
	protected.GET("/settings", authController.SettingsPage)
	protected.POST("/settings", authController.UpdateSettings)
}

package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"taskflow/internal/config"
	"taskflow/internal/handler"
	"taskflow/internal/middleware"
)

type Server struct {
	Engine *gin.Engine
	App    *App
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	ConfigureLogging(cfg)
	gin.SetMode(cfg.GinMode)

	app, err := Bootstrap(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	return &Server{
		Engine: NewRouter(app),
		App:    app,
		Config: cfg,
	}, nil
}

// NewRouter registers every route on a fresh engine.
func NewRouter(app *App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(), middleware.RequestID(), middleware.Logger())

	boardHandler := handler.NewBoardHandler(app.Board)
	scheduleHandler := handler.NewScheduleHandler(app.Calendar, app.Navigator, app.Indicator, app.Location)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Board routes
	r.GET("/board", boardHandler.GetBoard)
	r.POST("/board/drop", boardHandler.Drop)

	// Column routes
	r.POST("/columns", boardHandler.CreateColumn)
	r.PUT("/columns/:id", boardHandler.RenameColumn)
	r.DELETE("/columns/:id", boardHandler.DeleteColumn)

	// Task routes
	r.POST("/columns/:id/tasks", boardHandler.CreateTask)
	r.PATCH("/columns/:id/tasks/:task_id", boardHandler.UpdateTask)
	r.DELETE("/columns/:id/tasks/:task_id", boardHandler.DeleteTask)

	// Schedule routes
	sched := r.Group("/schedule")
	{
		sched.GET("", scheduleHandler.GetSchedule)
		sched.POST("/navigate", scheduleHandler.Navigate)
		sched.GET("/now", scheduleHandler.Now)
		sched.POST("/slots", scheduleHandler.SelectSlot)
		sched.DELETE("/slots", scheduleHandler.ClearSelection)
		sched.POST("/events", scheduleHandler.CreateEvent)
		sched.GET("/events/:id", scheduleHandler.GetEvent)
		sched.PUT("/events/:id", scheduleHandler.UpdateEvent)
		sched.DELETE("/events/:id", scheduleHandler.DeleteEvent)
	}
	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	ctx, stopTicker := context.WithCancel(context.Background())
	go s.App.Indicator.Run(ctx)

	go func() {
		log.Infof("server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")
	stopTicker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %s", err)
	}
	if err := s.App.Close(); err != nil {
		log.WithError(err).Error("failed to close store")
	}

	log.Info("server exited properly")
}

// ConfigureLogging applies the level and format from cfg to the standard
// logrus logger.
func ConfigureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	switch cfg.LogFormat {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func closeQuietly(c interface{ Close() error }, what string) {
	if err := c.Close(); err != nil {
		log.WithError(err).Warnf("failed to close %s", what)
	}
}

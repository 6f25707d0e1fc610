package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"xiangqi/internal/record"
	"xiangqi/internal/server/game"
)

type Options struct {
	WebDir    string // 为空就不挂静态页面
	MobileDir string
}

// NewRouter 装好中间件、/api/* 和静态页面
func NewRouter(log zerolog.Logger, games *game.Manager, records record.Store, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(log))

	h := NewHandler(games, records, log)
	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	api.POST("/new_game", h.NewGame)
	api.POST("/state", h.State)
	api.POST("/play", h.Play)
	api.POST("/candidates", h.Candidates)
	api.POST("/save", h.Save)
	api.POST("/load", h.Load)
	api.POST("/records", h.Records)
	api.POST("/visibility", h.Visibility)

	if opts.WebDir != "" {
		RegisterStaticRoutes(r, opts.WebDir, opts.MobileDir)
	}
	return r
}

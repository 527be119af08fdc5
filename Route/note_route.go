package Route

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mintmemo/Config"
	NoteRoute "mintmemo/Route/Note"
	Markdown "mintmemo/service/Markdown"
	NoteService "mintmemo/service/Note"
)

// SetupRouter 组装 gin 引擎：中间件 + 笔记 API + 导出/健康检查
// 返回引擎而不直接 Run，方便测试用 httptest 驱动
func SetupRouter(service NoteService.NoteServiceInterface, renderer *Markdown.Renderer, cfg *Config.Config) *gin.Engine {
	r := gin.Default()

	// 配置CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(RequestIDMiddleware())
	r.Use(BasicAuthMiddleware(cfg.AuthUser, cfg.AuthPass))

	h := NoteRoute.NewNoteHandler(service, renderer)

	// API 路由
	api := r.Group("/api")
	{
		api.GET("/notes", h.GetNotes)
		api.GET("/notes/:id", h.GetNoteByID)
		api.POST("/notes", h.CreateNote)
		api.PUT("/notes/:id", h.UpdateNote)
		api.DELETE("/notes/:id", h.DeleteNote)
		api.POST("/notes/:id/pin", h.TogglePin)
		api.GET("/search", h.SearchNotes)
		api.GET("/tags", h.GetTags)
	}

	// 备份导出
	r.GET("/export.json", h.ExportJSON)

	// 健康检查
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok": true,
			"db": cfg.DBPath,
		})
	})

	return r
}

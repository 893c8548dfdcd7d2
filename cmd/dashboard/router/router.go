package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"post-dashboard/cmd/dashboard/editor"
	"post-dashboard/cmd/dashboard/handlers"
	"post-dashboard/cmd/dashboard/middleware"
	"post-dashboard/cmd/dashboard/services"
	"post-dashboard/cmd/dashboard/workspace"
	_ "post-dashboard/docs"
)

// Deps 는 라우터가 묶는 서비스들이다.
type Deps struct {
	Auth       *services.AuthService
	Posts      *services.PostService
	Charts     *services.ChartService
	Workspaces *workspace.Registry
	Guard      *editor.Guard
	Cookie     handlers.CookieConfig
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.POST("/auth/login", handlers.LoginHandler(d.Auth, d.Cookie))

	// 로그인 이후 라우트
	authed := api.Group("", middleware.SessionAuth(d.Auth, d.Cookie.Name))
	{
		authed.POST("/auth/logout", handlers.LogoutHandler(d.Workspaces, d.Cookie))
		authed.GET("/auth/session", handlers.SessionHandler())

		authed.GET("/board", handlers.GetBoardHandler(d.Workspaces))
		authed.PUT("/board/filter", handlers.SetFilterHandler(d.Workspaces))
		authed.POST("/board/sentinel", handlers.SentinelHandler(d.Workspaces))
		authed.PATCH("/board/columns/:column", handlers.UpdateColumnHandler(d.Workspaces))

		authed.GET("/posts/:id", handlers.GetPostHandler(d.Posts))
		authed.POST("/posts", handlers.CreatePostHandler(d.Posts, d.Guard))
		authed.PATCH("/posts/:id", handlers.UpdatePostHandler(d.Posts, d.Guard))
		authed.POST("/editor/tags", handlers.TagPreviewHandler())

		authed.GET("/charts/:type", handlers.GetChartHandler(d.Charts, d.Workspaces))
	}

	return r
}

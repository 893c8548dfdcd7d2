package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"post-dashboard/cmd/mockapi/handlers"
	"post-dashboard/cmd/mockapi/middleware"
)

type Deps struct {
	Posts  handlers.PostStore
	Users  handlers.UserStore
	Tokens handlers.TokenIssuer
}

// New 는 대시보드가 호출하는 REST 계약을 그대로 노출한다. 로그인만 토큰 없이 열려 있다.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.AccessLog())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", handlers.LoginHandler(d.Users, d.Tokens))

	authed := r.Group("", handlers.RequireBearer(d.Tokens))
	{
		authed.GET("/posts", handlers.ListPostsHandler(d.Posts))
		authed.POST("/posts", handlers.CreatePostHandler(d.Posts))
		authed.GET("/posts/:id", handlers.GetPostHandler(d.Posts))
		authed.PATCH("/posts/:id", handlers.UpdatePostHandler(d.Posts))

		handlers.RegisterFixtures(authed.Group("/mock"))
	}
	return r
}

package api

import (
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, revocations middleware.RevocationChecker, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(allowedOrigins))
	logger.SetupGin(r)

	auth := middleware.AuthMiddleware(revocations)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.UserHandler.Register)
			authGroup.POST("/login", group.UserHandler.Login)
			authGroup.GET("/me", auth, group.UserHandler.GetUserInfo)
			authGroup.POST("/logout", auth, group.UserHandler.Logout)
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.GET("/search", group.PostHandler.SearchPosts)
			postGroup.GET("/:id", group.PostHandler.GetPost)

			protected := postGroup.Group("")
			protected.Use(auth)
			{
				protected.POST("", group.PostHandler.CreatePost)
				protected.POST("/upload", group.MediaHandler.Upload)
				protected.PUT("/:id", group.PostHandler.UpdatePost)
				protected.DELETE("/:id", group.PostHandler.DeletePost)
				protected.POST("/:id/comments", group.PostHandler.AddComment)
			}
		}

		categoryGroup := apiGroup.Group("/categories")
		{
			categoryGroup.GET("", group.CategoryHandler.ListCategories)
			categoryGroup.GET("/:id", group.CategoryHandler.GetCategory)
			categoryGroup.POST("", auth, group.CategoryHandler.CreateCategory)

			// 需要登录 & 拥有 admin 角色
			adminGroup := categoryGroup.Group("")
			adminGroup.Use(auth, middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.PUT("/:id", group.CategoryHandler.UpdateCategory)
				adminGroup.DELETE("/:id", group.CategoryHandler.DeleteCategory)
			}
		}
	}

	return r
}

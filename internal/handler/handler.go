package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"abyss-server/internal/models"
	"abyss-server/internal/service"
)

// Handler wires the HTTP surface to the services.
type Handler struct {
	authService    service.AuthService
	postService    service.PostService
	contactService service.ContactService
	userService    service.AdminUserService
	logger         *zap.Logger
}

func NewHandler(
	authService service.AuthService,
	postService service.PostService,
	contactService service.ContactService,
	userService service.AdminUserService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		authService:    authService,
		postService:    postService,
		contactService: contactService,
		userService:    userService,
		logger:         logger.Named("Handler"),
	}
}

// RegisterRoutes mounts all routes. rateLimit guards the credential
// endpoints and the public contact form; pass nil to disable it.
func (h *Handler) RegisterRoutes(router *gin.Engine, rateLimit gin.HandlerFunc) {
	if rateLimit == nil {
		rateLimit = func(c *gin.Context) { c.Next() }
	}

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", rateLimit, h.register)
		authGroup.POST("/login", rateLimit, h.login)
		authGroup.POST("/logout", h.logout)
		authGroup.GET("/verify", h.verify)
	}

	postsGroup := router.Group("/posts")
	{
		postsGroup.GET("", h.listPosts)
		postsGroup.POST("", h.RequireAuth(models.RolePoster, models.RoleAdmin), h.createPost)
		postsGroup.PUT("", h.RequireAuth(models.RolePoster, models.RoleAdmin), h.updatePost)
		postsGroup.DELETE("", h.RequireAuth(models.RolePoster, models.RoleAdmin), h.deletePost)
	}

	contactGroup := router.Group("/contact")
	{
		contactGroup.POST("", rateLimit, h.submitContact)
		contactGroup.GET("", h.RequireAuth(models.RoleAdmin), h.listContacts)
		contactGroup.PATCH("", h.RequireAuth(models.RoleAdmin), h.updateContactStatus)
	}

	usersGroup := router.Group("/users")
	usersGroup.Use(h.RequireAuth(models.RoleAdmin))
	{
		usersGroup.GET("", h.listUsers)
		usersGroup.GET("/:username", h.getUser)
		usersGroup.POST("/:username/approve", h.approveUser)
		usersGroup.POST("/:username/reject", h.rejectUser)
		usersGroup.DELETE("/:username", h.deleteUser)
	}
}

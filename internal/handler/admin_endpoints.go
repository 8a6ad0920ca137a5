package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listUsers(c *gin.Context) {
	overview, err := h.userService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":    user.Username,
		"email":       user.Email,
		"role":        user.Role,
		"approved":    user.Approved,
		"displayName": user.Name(),
		"avatar":      user.Avatar,
		"bio":         user.Bio,
		"xp":          user.XP,
		"level":       user.Level(),
		"streakDays":  user.StreakDays,
		"lastLogin":   user.LastLogin,
		"createdAt":   user.CreatedAt,
	})
}

func (h *Handler) approveUser(c *gin.Context) {
	username := c.Param("username")
	if err := h.userService.Approve(c.Request.Context(), username); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User approved", "username": username})
}

func (h *Handler) rejectUser(c *gin.Context) {
	username := c.Param("username")
	if err := h.userService.Reject(c.Request.Context(), username); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration rejected", "username": username})
}

func (h *Handler) deleteUser(c *gin.Context) {
	username := c.Param("username")
	if err := h.userService.Delete(c.Request.Context(), username); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted", "username": username})
}

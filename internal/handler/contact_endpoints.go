package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"abyss-server/internal/models"
)

func (h *Handler) submitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body"})
		return
	}

	contact, err := h.contactService.Submit(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	contactMessagesTotal.Inc()

	c.JSON(http.StatusCreated, gin.H{
		"id":      contact.ID.String(),
		"message": "Message received",
	})
}

func (h *Handler) listContacts(c *gin.Context) {
	contacts, err := h.contactService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

func (h *Handler) updateContactStatus(c *gin.Context) {
	var req contactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body"})
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid contact id"})
		return
	}

	if err := h.contactService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

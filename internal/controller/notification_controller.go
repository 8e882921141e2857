package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hmtri1011/surveyhub/internal/dto"
	"github.com/hmtri1011/surveyhub/internal/middleware"
	"github.com/hmtri1011/surveyhub/internal/service"
	"github.com/rs/zerolog/log"
)

// NotificationController serves the recipient-scoped notification endpoints.
// It is mounted under every role group; the principal decides whose
// notifications are visible.
type NotificationController struct {
	notificationService service.NotificationService
}

func NewNotificationController(notificationService service.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List godoc
// @Summary List the caller's notifications
// @Tags Notifications
// @Produce json
// @Success 200 {array} dto.NotificationResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)

	notifications, err := c.notificationService.List(principal.ID)
	if err != nil {
		log.Error().Err(err).Uint("recipientID", principal.ID).Msg("List notifications: service error")
		RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, notifications)
}

// MarkRead godoc
// @Summary Mark one notification as read
// @Description Sets read_at on first call; calling again is a no-op that still succeeds.
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} dto.NotificationResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown notification or not the recipient"
// @Router /notifications/{id}/read [patch]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	principal, _ := middleware.PrincipalFrom(ctx)
	notificationID := ctx.Param("id")
	if notificationID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid notification id"})
		return
	}

	notification, err := c.notificationService.MarkRead(principal.ID, notificationID)
	if err != nil {
		RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, notification)
}

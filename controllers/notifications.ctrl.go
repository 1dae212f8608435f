package controllers

import (
	"net/http"

	"github.com/givehub/givehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// NotificationsController : NotificationsController struct
type NotificationsController struct {
	svc *service.LedgerService
}

func NewNotificationsController(svc *service.LedgerService) *NotificationsController {
	return &NotificationsController{svc: svc}
}

// GetNotifications : List the calling user's notifications
func (controller *NotificationsController) GetNotifications(c echo.Context) error {
	userID := c.Get("UserID").(int64)
	notifications, err := controller.svc.NotificationsFor(c.Request().Context(), userID)
	if err != nil {
		return svcErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, notifications)
}

package service

import (
	"context"

	"github.com/givehub/givehub.go/db/models"
	"github.com/uptrace/bun"
)

// createNotification writes a bilingual notification row inside the
// caller's unit, alongside the money movement it announces. Push delivery
// happens elsewhere; losing a push must never roll back a ledger effect.
func (svc *LedgerService) createNotification(ctx context.Context, idb bun.IDB, title, body, titleAr, bodyAr string, userID, transactionID int64) (*models.Notification, error) {
	notification := &models.Notification{
		Title:         title,
		Body:          body,
		TitleAr:       titleAr,
		BodyAr:        bodyAr,
		UserID:        userID,
		TransactionID: transactionID,
	}
	if _, err := idb.NewInsert().Model(notification).Exec(ctx); err != nil {
		return nil, err
	}
	return notification, nil
}

func (svc *LedgerService) NotificationsFor(ctx context.Context, userID int64) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := svc.DB.NewSelect().Model(&notifications).Where("user_id = ?", userID).OrderExpr("id DESC").Limit(100).Scan(ctx)
	return notifications, err
}

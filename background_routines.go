package main

import (
	"context"
	"time"

	"github.com/givehub/givehub.go/lib/service"
)

// StartDepositCheckRoutine polls pending deposits against the payment
// gateway until the context is cancelled.
func StartDepositCheckRoutine(svc *service.LedgerService, backGroundCtx context.Context) error {
	if svc.DepositVerifier == nil {
		svc.Logger.Info("No payment gateway configured, deposit check routine disabled")
		return nil
	}

	interval := time.Duration(svc.Config.DepositCheckInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-backGroundCtx.Done():
			return nil
		case <-ticker.C:
			if err := svc.CheckPendingDeposits(backGroundCtx); err != nil {
				svc.Logger.Errorf("Pending deposit sweep failed: %v", err)
			}
		}
	}
}

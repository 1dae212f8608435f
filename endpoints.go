package main

import (
	"github.com/givehub/givehub.go/controllers"
	"github.com/givehub/givehub.go/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterEndpoints(svc *service.LedgerService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	// Public endpoints for account creation and authentication
	e.POST("/auth", controllers.NewAuthController(svc).Auth, logMw)
	if svc.Config.AllowAccountCreation {
		e.POST("/create", controllers.NewCreateUserController(svc).CreateUser, strictRateLimitMiddleware, adminMw, logMw)
	}

	// Secured endpoints which require a Authorization token (JWT)
	secured.GET("/balance", controllers.NewBalanceController(svc).Balance)
	secured.GET("/notifications", controllers.NewNotificationsController(svc).GetNotifications)

	donationCtrl := controllers.NewDonationController(svc)
	securedWithStrictRateLimit.POST("/donate", donationCtrl.Donate)
	secured.GET("/donations", donationCtrl.GetDonations)
	secured.GET("/donations/:id/distributions", donationCtrl.GetDonationDistributions)

	campaignCtrl := controllers.NewCampaignController(svc)
	secured.POST("/campaigns", campaignCtrl.CreateCampaign)
	secured.GET("/campaigns/:id", campaignCtrl.GetCampaign)
	secured.POST("/campaigns/:id/beneficiaries", campaignCtrl.AddBeneficiary, adminMw)

	transferCtrl := controllers.NewTransferController(svc)
	securedWithStrictRateLimit.POST("/transfer", transferCtrl.Transfer)
	secured.GET("/transfers", transferCtrl.GetTransfers)

	depositCtrl := controllers.NewDepositController(svc)
	securedWithStrictRateLimit.POST("/deposit", depositCtrl.CreateDeposit)
	secured.GET("/deposits", depositCtrl.GetDeposits)

	withdrawCtrl := controllers.NewWithdrawController(svc)
	securedWithStrictRateLimit.POST("/withdraw", withdrawCtrl.Withdraw)
	secured.GET("/withdrawals", withdrawCtrl.GetWithdraws)

	distributionCtrl := controllers.NewDistributionController(svc)
	secured.GET("/distributions", distributionCtrl.GetMyDistributions)

	// Admin endpoints for the ledger engine itself
	transactionCtrl := controllers.NewTransactionController(svc)
	secured.POST("/admin/transactions", transactionCtrl.CreateTransaction, adminMw)
	secured.GET("/admin/transactions/:id", transactionCtrl.GetTransaction, adminMw)
	secured.POST("/admin/transactions/:id/post", transactionCtrl.PostTransaction, adminMw)
	secured.POST("/admin/transactions/:id/void", transactionCtrl.VoidTransaction, adminMw)
	secured.POST("/admin/campaigns/:campaign_id/distribute", distributionCtrl.Distribute, adminMw)
	secured.POST("/admin/deposits/:id/confirm", depositCtrl.ConfirmDeposit, adminMw)
	secured.POST("/admin/reconcile", controllers.NewReconcileController(svc).Reconcile, adminMw)
}

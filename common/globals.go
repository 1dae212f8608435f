package common

const (
	AccountTypeAsset     = "asset"
	AccountTypeLiability = "liability"
	AccountTypeEquity    = "equity"
	AccountTypeRevenue   = "revenue"
	AccountTypeExpense   = "expense"

	NormalBalanceCredit = "credit"
	NormalBalanceDebit  = "debit"

	AccountStatusActive   = "active"
	AccountStatusArchived = "archived"

	SystemRoleCash        = "cash"
	SystemRoleDepositFee  = "deposit_fee"
	SystemRoleWithdrawFee = "withdraw_fee"
	SystemRoleTransferFee = "transfer_fee"

	TransactionStatusPending = "pending"
	TransactionStatusPosted  = "posted"
	TransactionStatusVoided  = "voided"

	EntryTypeDebit  = "debit"
	EntryTypeCredit = "credit"

	DonationStatusPending = "pending"
	DonationStatusSuccess = "success"
	DonationStatusFailed  = "failed"

	DistributionStatusCompleted = "completed"

	TransferStatusSuccess = "success"

	DepositStatusPending = "pending"
	DepositStatusSuccess = "success"
	DepositStatusFailed  = "failed"

	WithdrawStatusPending = "pending"
	WithdrawStatusSuccess = "success"

	FeeTypeDeposit  = "deposit_fee_percentage"
	FeeTypeWithdraw = "withdraw_fee_percentage"
	FeeTypeTransfer = "transfer_fee_percentage"
)

package migrations

import (
	"context"

	"github.com/givehub/givehub.go/db/models"
	"github.com/uptrace/bun"
)

/* Since this init will reflect the latest model fields when run on fresh db
make sure that when you add/remove columns in subsequent migrations IfNotExists/IfExists is used
otherwise it's going to result in errors.
*/
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		tables := []interface{}{
			(*models.User)(nil),
			(*models.Campaign)(nil),
			(*models.Account)(nil),
			(*models.Transaction)(nil),
			(*models.Entry)(nil),
			(*models.Donation)(nil),
			(*models.BeneficiaryCampaign)(nil),
			(*models.BeneficiaryDistribution)(nil),
			(*models.Transfer)(nil),
			(*models.Deposit)(nil),
			(*models.Withdraw)(nil),
			(*models.FeePercentage)(nil),
			(*models.Notification)(nil),
		}
		for _, table := range tables {
			if _, err := db.NewCreateTable().Model(table).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}, nil)
}

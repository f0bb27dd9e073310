package fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/shak0x90/steadygainsinvestments-sub000/config"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/account"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/payout"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/plan"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/subscription"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/transaction"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/infrastructure"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newAccountRepository,
		newTransactionRepository,
		newSubscriptionRepository,
		newPlanRepository,
		newInvoiceRepository,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newAccountRepository(db *gorm.DB) account.Repository {
	return infrastructure.NewAccountRepository(db)
}

func newTransactionRepository(db *gorm.DB) transaction.Repository {
	return infrastructure.NewTransactionRepository(db)
}

func newSubscriptionRepository(db *gorm.DB) subscription.Repository {
	return infrastructure.NewSubscriptionRepository(db)
}

func newPlanRepository(db *gorm.DB) plan.Repository {
	return infrastructure.NewPlanRepository(db)
}

func newInvoiceRepository(db *gorm.DB) payout.Repository {
	return infrastructure.NewInvoiceRepository(db)
}

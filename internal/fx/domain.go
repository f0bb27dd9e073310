package fx

import (
	"go.uber.org/fx"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/account"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/ledger"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/payout"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/plan"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/subscription"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/transaction"
)

// DomainModule provides the engines and the facade in front of them.
var DomainModule = fx.Module("domain",
	fx.Provide(
		newPlanService,
		newTransactionService,
		newSubscriptionService,
		newPayoutService,
		newLedgerFacade,
	),
)

func newPlanService(repo plan.Repository) *plan.Service {
	return plan.NewService(repo)
}

func newTransactionService(
	repo transaction.Repository,
	accounts account.Repository,
	subscriptions subscription.Repository,
) *transaction.Service {
	return transaction.NewService(repo, accounts, subscriptions)
}

func newSubscriptionService(
	repo subscription.Repository,
	accounts account.Repository,
	plans plan.Repository,
	transactions *transaction.Service,
) *subscription.Service {
	return subscription.NewService(repo, accounts, plans, transactions)
}

func newPayoutService(
	repo payout.Repository,
	accounts account.Repository,
	plans plan.Repository,
	subscriptions subscription.Repository,
	subscriptionSvc *subscription.Service,
	transactions *transaction.Service,
) *payout.Service {
	return payout.NewService(repo, accounts, plans, subscriptions, subscriptionSvc, transactions)
}

func newLedgerFacade(
	accounts account.Repository,
	transactions *transaction.Service,
	subscriptions *subscription.Service,
	payouts *payout.Service,
	subscriptionRepo subscription.Repository,
) *ledger.Facade {
	return ledger.NewFacade(accounts, transactions, subscriptions, payouts, subscriptionRepo)
}

package ledger

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/account"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/payout"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/subscription"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/transaction"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

// AllocationReader reports the capital currently allocated to plan
// subscriptions, outside any transaction.
type AllocationReader interface {
	SumAmountsByUser(ctx context.Context, userID ulid.ULID) (float64, error)
}

// PortfolioSummary is the read model backing the account dashboard.
// UsableFunds and RoiPercentage are derived on every read, never stored.
type PortfolioSummary struct {
	TotalInvested float64  `json:"totalInvested"`
	CurrentValue  float64  `json:"currentValue"`
	UsableFunds   float64  `json:"usableFunds"`
	RoiPercentage float64  `json:"roiPercentage"`
	LastPaidRoi   *float64 `json:"lastPaidRoi,omitempty"`
}

// Facade is the single entry point for external callers. It dispatches
// every intent onto the engines behind it and computes the portfolio
// summary.
type Facade struct {
	Accounts      account.Repository
	Transactions  *transaction.Service
	Subscriptions *subscription.Service
	Payouts       *payout.Service
	Allocations   AllocationReader
}

func NewFacade(accounts account.Repository, transactions *transaction.Service, subscriptions *subscription.Service, payouts *payout.Service, allocations AllocationReader) *Facade {
	return &Facade{
		Accounts:      accounts,
		Transactions:  transactions,
		Subscriptions: subscriptions,
		Payouts:       payouts,
		Allocations:   allocations,
	}
}

// Summary computes the portfolio read model for one account. An account
// that has never transacted reads as all zeroes.
func (f *Facade) Summary(ctx context.Context, userID ulid.ULID) (*PortfolioSummary, error) {
	acct, err := f.Accounts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &PortfolioSummary{}
	if acct != nil {
		allocated, err := f.Allocations.SumAmountsByUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		summary.TotalInvested = acct.TotalInvested
		summary.CurrentValue = acct.CurrentValue
		summary.UsableFunds = pkg.Round2(acct.CurrentValue - allocated)
		if acct.TotalInvested > 0 {
			summary.RoiPercentage = pkg.Round2((acct.CurrentValue - acct.TotalInvested) / acct.TotalInvested * 100)
		}
	}

	latest, err := f.Payouts.LatestPaid(ctx, userID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		roi := latest.RoiPercentage
		summary.LastPaidRoi = &roi
	}

	return summary, nil
}

// Deposit and withdrawal intents.

func (f *Facade) RequestDeposit(ctx context.Context, userID ulid.ULID, amount float64, method, details string) (*transaction.Transaction, error) {
	return f.Transactions.RequestDeposit(ctx, userID, amount, method, details)
}

func (f *Facade) ApproveDeposit(ctx context.Context, transactionID ulid.ULID) (*transaction.Transaction, error) {
	return f.Transactions.ApproveDeposit(ctx, transactionID)
}

func (f *Facade) RequestWithdrawal(ctx context.Context, userID ulid.ULID, amount float64, method, details string) (*transaction.Transaction, error) {
	return f.Transactions.RequestWithdrawal(ctx, userID, amount, method, details)
}

func (f *Facade) ResolveWithdrawal(ctx context.Context, transactionID ulid.ULID, decision transaction.Status) (*transaction.Transaction, error) {
	return f.Transactions.ResolveWithdrawal(ctx, transactionID, decision)
}

func (f *Facade) GetTransaction(ctx context.Context, transactionID ulid.ULID) (*transaction.Transaction, error) {
	return f.Transactions.GetTransaction(ctx, transactionID)
}

func (f *Facade) ListTransactions(ctx context.Context, userID ulid.ULID, filters *transaction.ListFilters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	return f.Transactions.ListTransactions(ctx, userID, filters, pagination)
}

func (f *Facade) ListAllTransactions(ctx context.Context, filters *transaction.ListFilters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	return f.Transactions.ListAllTransactions(ctx, filters, pagination)
}

// Subscription intents.

func (f *Facade) Subscribe(ctx context.Context, userID ulid.ULID, planName string, amount float64, riskLevel subscription.RiskLevel) (*subscription.Subscription, error) {
	return f.Subscriptions.Subscribe(ctx, userID, planName, amount, riskLevel)
}

func (f *Facade) RequestModification(ctx context.Context, userID ulid.ULID, planName string, change subscription.PendingChange) (*subscription.Subscription, error) {
	return f.Subscriptions.RequestModification(ctx, userID, planName, change)
}

func (f *Facade) CancelModification(ctx context.Context, userID ulid.ULID, planName string) (*subscription.Subscription, error) {
	return f.Subscriptions.CancelModification(ctx, userID, planName)
}

func (f *Facade) ApproveModification(ctx context.Context, subscriptionID ulid.ULID) (*subscription.Subscription, error) {
	return f.Subscriptions.ApproveModification(ctx, subscriptionID)
}

func (f *Facade) RejectModification(ctx context.Context, subscriptionID ulid.ULID) (*subscription.Subscription, error) {
	return f.Subscriptions.RejectModification(ctx, subscriptionID)
}

func (f *Facade) ListSubscriptions(ctx context.Context, userID ulid.ULID) ([]*subscription.Subscription, error) {
	return f.Subscriptions.ListSubscriptions(ctx, userID)
}

// Payout intents.

func (f *Facade) IssueReturn(ctx context.Context, userID ulid.ULID, planName string, roiPercentage float64, month, year int, note string) (*payout.Invoice, error) {
	return f.Payouts.IssueReturn(ctx, userID, planName, roiPercentage, month, year, note)
}

func (f *Facade) ListInvoices(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*payout.Invoice, int64, error) {
	return f.Payouts.ListInvoices(ctx, userID, pagination)
}

package payout_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/account"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/payout"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/plan"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/subscription"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/transaction"
	appErrors "github.com/shak0x90/steadygainsinvestments-sub000/internal/errors"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

type fakeAccountRepository struct {
	account *account.Account
}

func (f *fakeAccountRepository) BeginTx(ctx context.Context) (interface{}, error) {
	return struct{}{}, nil
}

func (f *fakeAccountRepository) CommitTx(tx interface{}) error   { return nil }
func (f *fakeAccountRepository) RollbackTx(tx interface{}) error { return nil }

func (f *fakeAccountRepository) GetByUser(ctx context.Context, userID ulid.ULID) (*account.Account, error) {
	return f.account, nil
}

func (f *fakeAccountRepository) LockByUserWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) (*account.Account, error) {
	if f.account == nil {
		f.account = &account.Account{Id: ulid.Make(), UserId: userID}
	}
	return f.account, nil
}

func (f *fakeAccountRepository) ApplyDeltaWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, investedDelta, valueDelta float64) error {
	f.account.TotalInvested += investedDelta
	f.account.CurrentValue += valueDelta
	return nil
}

type fakeSubscriptionRepository struct {
	subs map[ulid.ULID]*subscription.Subscription
}

func (f *fakeSubscriptionRepository) CreateWithTx(ctx context.Context, tx interface{}, sub *subscription.Subscription) error {
	f.subs[sub.Id] = sub
	return nil
}

func (f *fakeSubscriptionRepository) UpdateWithTx(ctx context.Context, tx interface{}, sub *subscription.Subscription) error {
	f.subs[sub.Id] = sub
	return nil
}

func (f *fakeSubscriptionRepository) GetByID(ctx context.Context, subscriptionID ulid.ULID) (*subscription.Subscription, error) {
	sub, ok := f.subs[subscriptionID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return sub, nil
}

func (f *fakeSubscriptionRepository) GetByUserAndPlan(ctx context.Context, userID, planID ulid.ULID) (*subscription.Subscription, error) {
	for _, sub := range f.subs {
		if sub.UserId == userID && sub.PlanId == planID {
			return sub, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeSubscriptionRepository) LockByIDWithTx(ctx context.Context, tx interface{}, subscriptionID ulid.ULID) (*subscription.Subscription, error) {
	return f.GetByID(ctx, subscriptionID)
}

func (f *fakeSubscriptionRepository) LockByUserAndPlanWithTx(ctx context.Context, tx interface{}, userID, planID ulid.ULID) (*subscription.Subscription, error) {
	return f.GetByUserAndPlan(ctx, userID, planID)
}

func (f *fakeSubscriptionRepository) ExistsByUserAndPlanWithTx(ctx context.Context, tx interface{}, userID, planID ulid.ULID) (bool, error) {
	_, err := f.GetByUserAndPlan(ctx, userID, planID)
	return err == nil, nil
}

func (f *fakeSubscriptionRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]*subscription.Subscription, error) {
	return nil, nil
}

func (f *fakeSubscriptionRepository) SumAmountsByUser(ctx context.Context, userID ulid.ULID) (float64, error) {
	var total float64
	for _, sub := range f.subs {
		if sub.UserId == userID {
			total += sub.Amount
		}
	}
	return total, nil
}

func (f *fakeSubscriptionRepository) SumAmountsByUserWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) (float64, error) {
	return f.SumAmountsByUser(ctx, userID)
}

type fakePlanSource struct {
	plans map[string]*plan.Plan
}

func (f *fakePlanSource) GetByName(ctx context.Context, name string) (*plan.Plan, error) {
	p, ok := f.plans[name]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

type fakeTransactionRepository struct {
	transactions []*transaction.Transaction
}

func (f *fakeTransactionRepository) CreateWithTx(ctx context.Context, tx interface{}, t *transaction.Transaction) error {
	f.transactions = append(f.transactions, t)
	return nil
}

func (f *fakeTransactionRepository) GetByID(ctx context.Context, transactionID ulid.ULID) (*transaction.Transaction, error) {
	return nil, errors.New("record not found")
}

func (f *fakeTransactionRepository) LockByIDWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID) (*transaction.Transaction, error) {
	return nil, errors.New("record not found")
}

func (f *fakeTransactionRepository) SettleWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID, to transaction.Status) error {
	return nil
}

func (f *fakeTransactionRepository) ListByUser(ctx context.Context, userID ulid.ULID, filters *transaction.ListFilters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	return nil, 0, nil
}

func (f *fakeTransactionRepository) List(ctx context.Context, filters *transaction.ListFilters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	return nil, 0, nil
}

type fakeInvoiceRepository struct {
	invoices []*payout.Invoice
}

func (f *fakeInvoiceRepository) CreateWithTx(ctx context.Context, tx interface{}, invoice *payout.Invoice) error {
	f.invoices = append(f.invoices, invoice)
	return nil
}

func (f *fakeInvoiceRepository) GetByID(ctx context.Context, invoiceID ulid.ULID) (*payout.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.Id == invoiceID {
			return inv, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeInvoiceRepository) GetByUserPeriod(ctx context.Context, userID ulid.ULID, month, year int) (*payout.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.UserId == userID && inv.Month == month && inv.Year == year {
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepository) GetByUserPeriodWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, month, year int) (*payout.Invoice, error) {
	return f.GetByUserPeriod(ctx, userID, month, year)
}

func (f *fakeInvoiceRepository) GetLatestPaidByUser(ctx context.Context, userID ulid.ULID) (*payout.Invoice, error) {
	var latest *payout.Invoice
	for _, inv := range f.invoices {
		if inv.UserId != userID {
			continue
		}
		if latest == nil || inv.Year > latest.Year || (inv.Year == latest.Year && inv.Month > latest.Month) {
			latest = inv
		}
	}
	return latest, nil
}

func (f *fakeInvoiceRepository) ListByUser(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*payout.Invoice, int64, error) {
	return f.invoices, int64(len(f.invoices)), nil
}

type testEnv struct {
	svc          *payout.Service
	accounts     *fakeAccountRepository
	subs         *fakeSubscriptionRepository
	invoices     *fakeInvoiceRepository
	transactions *fakeTransactionRepository
	plan         *plan.Plan
}

func newTestEnv(acct *account.Account, sub *subscription.Subscription) *testEnv {
	steady := &plan.Plan{
		Id:            ulid.Make(),
		Name:          "Steady",
		MinInvestment: 100,
		IsActive:      true,
	}
	if sub != nil {
		sub.PlanId = steady.Id
		sub.PlanName = steady.Name
	}

	accounts := &fakeAccountRepository{account: acct}
	subs := &fakeSubscriptionRepository{subs: map[ulid.ULID]*subscription.Subscription{}}
	if sub != nil {
		subs.subs[sub.Id] = sub
	}
	txRepo := &fakeTransactionRepository{}
	invoices := &fakeInvoiceRepository{}
	plans := &fakePlanSource{plans: map[string]*plan.Plan{steady.Name: steady}}

	recorder := transaction.NewService(txRepo, accounts, subs)
	promoter := subscription.NewService(subs, accounts, plans, recorder)

	return &testEnv{
		svc:          payout.NewService(invoices, accounts, plans, subs, promoter, recorder),
		accounts:     accounts,
		subs:         subs,
		invoices:     invoices,
		transactions: txRepo,
		plan:         steady,
	}
}

func TestIssueReturn(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	ctx := context.Background()

	newSub := func(amount float64) *subscription.Subscription {
		return &subscription.Subscription{
			Id:        ulid.Make(),
			UserId:    userID,
			Amount:    amount,
			RiskLevel: subscription.RiskMedium,
		}
	}

	t.Run("pays one period and credits current value", func(t *testing.T) {
		acct := &account.Account{Id: ulid.Make(), UserId: userID, TotalInvested: 500, CurrentValue: 500}
		env := newTestEnv(acct, newSub(500))

		invoice, err := env.svc.IssueReturn(ctx, userID, "Steady", 4, 6, 2026, "June payout")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if invoice.ReturnAmount != 20.00 {
			t.Fatalf("expected return of 20.00, got %v", invoice.ReturnAmount)
		}
		if invoice.InvestedAmount != 500 || invoice.RoiPercentage != 4 {
			t.Fatalf("unexpected invoice %+v", invoice)
		}
		if invoice.Status != payout.StatusPaid {
			t.Fatalf("expected PAID, got %s", invoice.Status)
		}
		if !strings.HasPrefix(invoice.InvoiceNumber, "INV-202606-") {
			t.Fatalf("unexpected invoice number %q", invoice.InvoiceNumber)
		}
		if env.accounts.account.CurrentValue != 520 {
			t.Fatalf("expected current value 520, got %v", env.accounts.account.CurrentValue)
		}
		if env.accounts.account.TotalInvested != 500 {
			t.Fatalf("total invested must be untouched, got %v", env.accounts.account.TotalInvested)
		}

		if len(env.transactions.transactions) != 1 {
			t.Fatalf("expected one return transaction, got %d", len(env.transactions.transactions))
		}
		tr := env.transactions.transactions[0]
		if tr.Type != transaction.Return || tr.Status != transaction.StatusCompleted {
			t.Fatalf("expected completed return, got %s %s", tr.Type, tr.Status)
		}
		if tr.InvoiceId == nil || *tr.InvoiceId != invoice.Id {
			t.Fatalf("expected transaction linked to invoice %s", invoice.Id)
		}
	})

	t.Run("second issue for the same period fails with the existing number", func(t *testing.T) {
		acct := &account.Account{Id: ulid.Make(), UserId: userID, CurrentValue: 500}
		env := newTestEnv(acct, newSub(500))

		first, err := env.svc.IssueReturn(ctx, userID, "Steady", 4, 6, 2026, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		valueAfterFirst := env.accounts.account.CurrentValue

		_, err = env.svc.IssueReturn(ctx, userID, "Steady", 4, 6, 2026, "")
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "DUPLICATE_INVOICE" {
			t.Fatalf("expected DUPLICATE_INVOICE, got %v", err)
		}
		if !strings.Contains(appErr.Message, first.InvoiceNumber) {
			t.Fatalf("expected message to surface %q, got %q", first.InvoiceNumber, appErr.Message)
		}
		if env.accounts.account.CurrentValue != valueAfterFirst {
			t.Fatalf("balance must reflect exactly one payout")
		}
	})

	t.Run("fails when the account has no subscription", func(t *testing.T) {
		acct := &account.Account{Id: ulid.Make(), UserId: userID, CurrentValue: 500}
		env := newTestEnv(acct, nil)

		_, err := env.svc.IssueReturn(ctx, userID, "Steady", 4, 6, 2026, "")
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "NOT_SUBSCRIBED" {
			t.Fatalf("expected NOT_SUBSCRIBED, got %v", err)
		}
	})

	t.Run("promotes a queued modification with the payout", func(t *testing.T) {
		acct := &account.Account{Id: ulid.Make(), UserId: userID, CurrentValue: 500}
		sub := newSub(500)
		pendingAmount := 800.0
		pendingRisk := subscription.RiskHigh
		sub.SetPending(subscription.PendingChange{Amount: &pendingAmount, RiskLevel: &pendingRisk})
		env := newTestEnv(acct, sub)

		invoice, err := env.svc.IssueReturn(ctx, userID, "Steady", 4, 6, 2026, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// The invoice snapshots the amount before promotion.
		if invoice.InvestedAmount != 500 {
			t.Fatalf("expected snapshot of 500, got %v", invoice.InvestedAmount)
		}

		promoted, _ := env.subs.GetByID(ctx, sub.Id)
		if promoted.Amount != 800 || promoted.RiskLevel != subscription.RiskHigh {
			t.Fatalf("expected promoted subscription, got %+v", promoted)
		}
		if _, has := promoted.Pending(); has {
			t.Fatalf("expected pending fields cleared")
		}
	})

	t.Run("validates the period", func(t *testing.T) {
		acct := &account.Account{Id: ulid.Make(), UserId: userID}
		env := newTestEnv(acct, newSub(500))

		for _, tc := range []struct {
			name  string
			month int
			year  int
			roi   float64
		}{
			{"month too high", 13, 2026, 4},
			{"month too low", 0, 2026, 4},
			{"year too old", 6, 1999, 4},
			{"negative roi", 6, 2026, -1},
		} {
			t.Run(tc.name, func(t *testing.T) {
				_, err := env.svc.IssueReturn(ctx, userID, "Steady", tc.roi, tc.month, tc.year, "")
				appErr, ok := appErrors.AsAppError(err)
				if !ok || appErr.Code != "VALIDATION_ERROR" {
					t.Fatalf("expected VALIDATION_ERROR, got %v", err)
				}
			})
		}
	})
}

package subscription_test

import (
	"context"
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/account"
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

func newFakeSubscriptionRepository() *fakeSubscriptionRepository {
	return &fakeSubscriptionRepository{subs: make(map[ulid.ULID]*subscription.Subscription)}
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
	var out []*subscription.Subscription
	for _, sub := range f.subs {
		if sub.UserId == userID {
			out = append(out, sub)
		}
	}
	return out, nil
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

type testEnv struct {
	svc          *subscription.Service
	accounts     *fakeAccountRepository
	subs         *fakeSubscriptionRepository
	transactions *fakeTransactionRepository
	plan         *plan.Plan
}

func newTestEnv(acct *account.Account) *testEnv {
	steady := &plan.Plan{
		Id:            ulid.Make(),
		Name:          "Steady",
		MinInvestment: 100,
		IsActive:      true,
	}

	accounts := &fakeAccountRepository{account: acct}
	subs := newFakeSubscriptionRepository()
	txRepo := &fakeTransactionRepository{}
	recorder := transaction.NewService(txRepo, accounts, subs)
	plans := &fakePlanSource{plans: map[string]*plan.Plan{steady.Name: steady}}

	return &testEnv{
		svc:          subscription.NewService(subs, accounts, plans, recorder),
		accounts:     accounts,
		subs:         subs,
		transactions: txRepo,
		plan:         steady,
	}
}

func TestSubscribe(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	ctx := context.Background()

	t.Run("credits both balances and records the allocation", func(t *testing.T) {
		env := newTestEnv(&account.Account{Id: ulid.Make(), UserId: userID, TotalInvested: 1000, CurrentValue: 1000})

		sub, err := env.svc.Subscribe(ctx, userID, "Steady", 500, subscription.RiskMedium)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sub.Amount != 500 || sub.RiskLevel != subscription.RiskMedium {
			t.Fatalf("unexpected subscription %+v", sub)
		}
		if env.accounts.account.TotalInvested != 1500 || env.accounts.account.CurrentValue != 1500 {
			t.Fatalf("expected 1500/1500, got %v/%v", env.accounts.account.TotalInvested, env.accounts.account.CurrentValue)
		}

		allocated, _ := env.subs.SumAmountsByUser(ctx, userID)
		usable := env.accounts.account.CurrentValue - allocated
		if usable != 1000 {
			t.Fatalf("expected usable funds to stay 1000, got %v", usable)
		}

		if len(env.transactions.transactions) != 1 {
			t.Fatalf("expected one recorded transaction, got %d", len(env.transactions.transactions))
		}
		tr := env.transactions.transactions[0]
		if tr.Type != transaction.Deposit || tr.Status != transaction.StatusCompleted {
			t.Fatalf("expected completed deposit, got %s %s", tr.Type, tr.Status)
		}
	})

	t.Run("rejects amount below the plan minimum", func(t *testing.T) {
		env := newTestEnv(&account.Account{Id: ulid.Make(), UserId: userID})

		_, err := env.svc.Subscribe(ctx, userID, "Steady", 50, subscription.RiskLow)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("rejects invalid risk level", func(t *testing.T) {
		env := newTestEnv(&account.Account{Id: ulid.Make(), UserId: userID})

		_, err := env.svc.Subscribe(ctx, userID, "Steady", 500, subscription.RiskLevel("Extreme"))
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("rejects unknown plan", func(t *testing.T) {
		env := newTestEnv(&account.Account{Id: ulid.Make(), UserId: userID})

		_, err := env.svc.Subscribe(ctx, userID, "Aggressive", 500, subscription.RiskHigh)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrPlanNotFound.Code {
			t.Fatalf("expected PLAN_NOT_FOUND, got %v", err)
		}
	})

	t.Run("rejects a second subscription to the same plan", func(t *testing.T) {
		env := newTestEnv(&account.Account{Id: ulid.Make(), UserId: userID})

		if _, err := env.svc.Subscribe(ctx, userID, "Steady", 500, subscription.RiskLow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := env.svc.Subscribe(ctx, userID, "Steady", 200, subscription.RiskLow)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "CONFLICT" {
			t.Fatalf("expected CONFLICT, got %v", err)
		}
	})
}

func TestModificationQueue(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	ctx := context.Background()

	amount := func(v float64) *float64 { return &v }
	risk := func(r subscription.RiskLevel) *subscription.RiskLevel { return &r }

	subscribe := func(t *testing.T, env *testEnv) *subscription.Subscription {
		t.Helper()
		sub, err := env.svc.Subscribe(ctx, userID, "Steady", 500, subscription.RiskMedium)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return sub
	}

	t.Run("request queues the change", func(t *testing.T) {
		env := newTestEnv(&account.Account{Id: ulid.Make(), UserId: userID})
		subscribe(t, env)

		sub, err := env.svc.RequestModification(ctx, userID, "Steady", subscription.PendingChange{
			Amount:    amount(800),
			RiskLevel: risk(subscription.RiskHigh),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		pending, has := sub.Pending()
		if !has || *pending.Amount != 800 || *pending.RiskLevel != subscription.RiskHigh {
			t.Fatalf("expected queued change, got %+v", pending)
		}
		if sub.Amount != 500 || sub.RiskLevel != subscription.RiskMedium {
			t.Fatalf("live fields must be untouched, got %+v", sub)
		}
	})

	t.Run("only one modification may be outstanding", func(t *testing.T) {
		env := newTestEnv(&account.Account{Id: ulid.Make(), UserId: userID})
		subscribe(t, env)

		if _, err := env.svc.RequestModification(ctx, userID, "Steady", subscription.PendingChange{Amount: amount(800)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := env.svc.RequestModification(ctx, userID, "Steady", subscription.PendingChange{Amount: amount(900)})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "MODIFICATION_IN_PROGRESS" {
			t.Fatalf("expected MODIFICATION_IN_PROGRESS, got %v", err)
		}
	})

	t.Run("empty change is rejected", func(t *testing.T) {
		env := newTestEnv(&account.Account{Id: ulid.Make(), UserId: userID})
		subscribe(t, env)

		_, err := env.svc.RequestModification(ctx, userID, "Steady", subscription.PendingChange{})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("approval applies without balance effect", func(t *testing.T) {
		env := newTestEnv(&account.Account{Id: ulid.Make(), UserId: userID})
		created := subscribe(t, env)

		if _, err := env.svc.RequestModification(ctx, userID, "Steady", subscription.PendingChange{
			Amount:    amount(800),
			RiskLevel: risk(subscription.RiskHigh),
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		investedBefore := env.accounts.account.TotalInvested
		valueBefore := env.accounts.account.CurrentValue

		sub, err := env.svc.ApproveModification(ctx, created.Id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sub.Amount != 800 || sub.RiskLevel != subscription.RiskHigh {
			t.Fatalf("expected change applied, got %+v", sub)
		}
		if _, has := sub.Pending(); has {
			t.Fatalf("expected pending fields cleared")
		}
		if env.accounts.account.TotalInvested != investedBefore || env.accounts.account.CurrentValue != valueBefore {
			t.Fatalf("approval must not move balances")
		}
	})

	t.Run("rejection refunds only a positive amount delta", func(t *testing.T) {
		env := newTestEnv(&account.Account{Id: ulid.Make(), UserId: userID})
		created := subscribe(t, env)

		if _, err := env.svc.RequestModification(ctx, userID, "Steady", subscription.PendingChange{Amount: amount(800)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		investedBefore := env.accounts.account.TotalInvested
		valueBefore := env.accounts.account.CurrentValue

		sub, err := env.svc.RejectModification(ctx, created.Id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, has := sub.Pending(); has {
			t.Fatalf("expected pending fields cleared")
		}
		if sub.Amount != 500 {
			t.Fatalf("live amount must be untouched, got %v", sub.Amount)
		}
		if env.accounts.account.TotalInvested != investedBefore-300 || env.accounts.account.CurrentValue != valueBefore-300 {
			t.Fatalf("expected 300 refunded from both balances, got %v/%v",
				env.accounts.account.TotalInvested, env.accounts.account.CurrentValue)
		}

		var refunds int
		for _, tr := range env.transactions.transactions {
			if tr.Type == transaction.Refund {
				refunds++
			}
		}
		if refunds != 1 {
			t.Fatalf("expected one refund transaction, got %d", refunds)
		}
	})

	t.Run("rejecting a decrease refunds nothing", func(t *testing.T) {
		env := newTestEnv(&account.Account{Id: ulid.Make(), UserId: userID})
		created := subscribe(t, env)

		if _, err := env.svc.RequestModification(ctx, userID, "Steady", subscription.PendingChange{Amount: amount(200)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		investedBefore := env.accounts.account.TotalInvested
		valueBefore := env.accounts.account.CurrentValue

		if _, err := env.svc.RejectModification(ctx, created.Id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if env.accounts.account.TotalInvested != investedBefore || env.accounts.account.CurrentValue != valueBefore {
			t.Fatalf("a decrease must not be refunded")
		}
	})

	t.Run("cancel clears the queue", func(t *testing.T) {
		env := newTestEnv(&account.Account{Id: ulid.Make(), UserId: userID})
		subscribe(t, env)

		if _, err := env.svc.RequestModification(ctx, userID, "Steady", subscription.PendingChange{Amount: amount(800)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		sub, err := env.svc.CancelModification(ctx, userID, "Steady")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, has := sub.Pending(); has {
			t.Fatalf("expected pending fields cleared")
		}
	})

	t.Run("resolution without a queued change fails", func(t *testing.T) {
		env := newTestEnv(&account.Account{Id: ulid.Make(), UserId: userID})
		created := subscribe(t, env)

		_, err := env.svc.ApproveModification(ctx, created.Id)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "INVALID_STATE" {
			t.Fatalf("expected INVALID_STATE, got %v", err)
		}

		_, err = env.svc.RejectModification(ctx, created.Id)
		appErr, ok = appErrors.AsAppError(err)
		if !ok || appErr.Code != "INVALID_STATE" {
			t.Fatalf("expected INVALID_STATE, got %v", err)
		}
	})
}

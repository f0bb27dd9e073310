package payout

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/account"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/plan"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/shared"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/subscription"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/transaction"
	appErrors "github.com/shak0x90/steadygainsinvestments-sub000/internal/errors"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

// PlanSource resolves plan reference data.
type PlanSource interface {
	GetByName(ctx context.Context, name string) (*plan.Plan, error)
}

// SubscriptionSource reads the subscription being paid out, with and
// without a row lock.
type SubscriptionSource interface {
	GetByUserAndPlan(ctx context.Context, userID, planID ulid.ULID) (*subscription.Subscription, error)
	LockByUserAndPlanWithTx(ctx context.Context, tx interface{}, userID, planID ulid.ULID) (*subscription.Subscription, error)
}

// Promoter applies a subscription's queued modification inside the
// payout's transaction.
type Promoter interface {
	PromoteIfPendingWithTx(ctx context.Context, tx interface{}, sub *subscription.Subscription) error
}

// ReturnRecorder writes the completed return transaction that backs an
// invoice, inside the payout's transaction.
type ReturnRecorder interface {
	RecordReturnWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, amount float64, description string, invoiceID *ulid.ULID) (*transaction.Transaction, error)
}

// Service is the payout engine: it issues one return invoice per account
// and period, credits the return and promotes any queued modification in
// a single unit.
type Service struct {
	Repository    Repository
	Accounts      account.Repository
	Plans         PlanSource
	Subscriptions SubscriptionSource
	Promoter      Promoter
	Recorder      ReturnRecorder
}

func NewService(repo Repository, accounts account.Repository, plans PlanSource, subs SubscriptionSource, promoter Promoter, recorder ReturnRecorder) *Service {
	return &Service{
		Repository:    repo,
		Accounts:      accounts,
		Plans:         plans,
		Subscriptions: subs,
		Promoter:      promoter,
		Recorder:      recorder,
	}
}

// IssueReturn pays one period's return on the account's subscription to
// the named plan. The (account, month, year) pair may be paid at most
// once; a repeat attempt surfaces the number of the invoice that already
// covers the period.
func (s *Service) IssueReturn(ctx context.Context, userID ulid.ULID, planName string, roiPercentage float64, month, year int, note string) (*Invoice, error) {
	if month < 1 || month > 12 {
		return nil, appErrors.NewValidationError("month", "month must be between 1 and 12")
	}
	if year < 2000 {
		return nil, appErrors.NewValidationError("year", "year must be 2000 or later")
	}
	if roiPercentage < 0 {
		return nil, appErrors.NewValidationError("roi_percentage", "roi percentage must not be negative")
	}

	p, err := s.Plans.GetByName(ctx, planName)
	if err != nil {
		return nil, appErrors.ErrPlanNotFound.WithError(err)
	}

	if _, err := s.Subscriptions.GetByUserAndPlan(ctx, userID, p.Id); err != nil {
		return nil, appErrors.NewNotSubscribedError(p.Name)
	}

	existing, err := s.Repository.GetByUserPeriod(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.NewDuplicateInvoiceError(existing.InvoiceNumber, month, year)
	}

	var invoice *Invoice

	err = shared.RunAtomic(ctx, s.Accounts, func(tx interface{}) error {
		if _, err := s.Accounts.LockByUserWithTx(ctx, tx, userID); err != nil {
			return err
		}

		sub, err := s.Subscriptions.LockByUserAndPlanWithTx(ctx, tx, userID, p.Id)
		if err != nil {
			return appErrors.NewNotSubscribedError(p.Name)
		}

		// Re-checked under the account lock so two concurrent issuers for
		// the same period cannot both pass the guard.
		dup, err := s.Repository.GetByUserPeriodWithTx(ctx, tx, userID, month, year)
		if err != nil {
			return err
		}
		if dup != nil {
			return appErrors.NewDuplicateInvoiceError(dup.InvoiceNumber, month, year)
		}

		now := time.Now()
		id := pkg.GenerateULIDObject()
		invoice = &Invoice{
			Id:             id,
			UserId:         userID,
			InvoiceNumber:  NewInvoiceNumber(id, month, year),
			PlanName:       sub.PlanName,
			InvestedAmount: sub.Amount,
			RoiPercentage:  roiPercentage,
			ReturnAmount:   pkg.Round2(sub.Amount * roiPercentage / 100),
			Month:          month,
			Year:           year,
			Status:         StatusPaid,
			Note:           strings.TrimSpace(note),
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := s.Repository.CreateWithTx(ctx, tx, invoice); err != nil {
			return err
		}

		_, err = s.Recorder.RecordReturnWithTx(ctx, tx, userID, invoice.ReturnAmount,
			"Return for plan "+sub.PlanName, &invoice.Id)
		if err != nil {
			return err
		}

		return s.Promoter.PromoteIfPendingWithTx(ctx, tx, sub)
	})
	if err != nil {
		invoice = nil
		return nil, err
	}

	return invoice, nil
}

func (s *Service) GetInvoice(ctx context.Context, invoiceID ulid.ULID) (*Invoice, error) {
	invoice, err := s.Repository.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, appErrors.ErrInvoiceNotFound.WithError(err)
	}
	return invoice, nil
}

// LatestPaid returns the most recent paid invoice, or nil when the
// account has never received a payout.
func (s *Service) LatestPaid(ctx context.Context, userID ulid.ULID) (*Invoice, error) {
	return s.Repository.GetLatestPaidByUser(ctx, userID)
}

func (s *Service) ListInvoices(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Invoice, int64, error) {
	return s.Repository.ListByUser(ctx, userID, pagination)
}

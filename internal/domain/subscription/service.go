package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/account"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/plan"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/shared"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/transaction"
	appErrors "github.com/shak0x90/steadygainsinvestments-sub000/internal/errors"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

// PlanSource resolves plan reference data.
type PlanSource interface {
	GetByName(ctx context.Context, name string) (*plan.Plan, error)
}

// Recorder is the slice of the transaction engine the manager needs:
// writing allocation deposits and rejection refunds inside its unit.
type Recorder interface {
	RecordAllocationWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, amount float64, description string) (*transaction.Transaction, error)
	RecordRefundWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, amount float64, description string) (*transaction.Transaction, error)
}

// Service is the subscription manager: subscription creation, the
// pending-modification queue and its resolution.
type Service struct {
	Repository Repository
	Accounts   account.Repository
	Plans      PlanSource
	Recorder   Recorder
}

func NewService(repo Repository, accounts account.Repository, plans PlanSource, recorder Recorder) *Service {
	return &Service{
		Repository: repo,
		Accounts:   accounts,
		Plans:      plans,
		Recorder:   recorder,
	}
}

// Subscribe creates the account's subscription to a plan. The subscribed
// amount is credited to both TotalInvested and CurrentValue and recorded
// as a completed deposit, all in one unit.
func (s *Service) Subscribe(ctx context.Context, userID ulid.ULID, planName string, amount float64, riskLevel RiskLevel) (*Subscription, error) {
	if !riskLevel.IsValid() {
		return nil, appErrors.NewValidationError("risk_level", "risk level must be Low, Medium or High")
	}

	p, err := s.Plans.GetByName(ctx, planName)
	if err != nil {
		return nil, appErrors.ErrPlanNotFound.WithError(err)
	}

	if amount < p.MinInvestment {
		return nil, appErrors.NewValidationError("amount",
			fmt.Sprintf("amount is below the plan minimum of %.2f", p.MinInvestment))
	}

	now := time.Now()
	sub := &Subscription{
		Id:        pkg.GenerateULIDObject(),
		UserId:    userID,
		PlanId:    p.Id,
		PlanName:  p.Name,
		Amount:    pkg.Round2(amount),
		RiskLevel: riskLevel,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = shared.RunAtomic(ctx, s.Accounts, func(tx interface{}) error {
		if _, err := s.Accounts.LockByUserWithTx(ctx, tx, userID); err != nil {
			return err
		}

		exists, err := s.Repository.ExistsByUserAndPlanWithTx(ctx, tx, userID, p.Id)
		if err != nil {
			return err
		}
		if exists {
			return appErrors.NewConflictError("Subscription to plan " + p.Name)
		}

		if err := s.Repository.CreateWithTx(ctx, tx, sub); err != nil {
			return err
		}

		_, err = s.Recorder.RecordAllocationWithTx(ctx, tx, userID, sub.Amount,
			"Allocation to plan "+p.Name)
		return err
	})
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// RequestModification queues a change to the subscription's amount or
// risk level. Only one modification may be outstanding at a time.
func (s *Service) RequestModification(ctx context.Context, userID ulid.ULID, planName string, change PendingChange) (*Subscription, error) {
	if change.IsZero() {
		return nil, appErrors.NewValidationError("modification", "nothing to modify")
	}
	if change.Amount != nil && *change.Amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "amount must be greater than zero")
	}
	if change.RiskLevel != nil && !change.RiskLevel.IsValid() {
		return nil, appErrors.NewValidationError("risk_level", "risk level must be Low, Medium or High")
	}

	p, err := s.Plans.GetByName(ctx, planName)
	if err != nil {
		return nil, appErrors.ErrPlanNotFound.WithError(err)
	}

	var updated *Subscription
	err = shared.RunAtomic(ctx, s.Accounts, func(tx interface{}) error {
		sub, err := s.Repository.LockByUserAndPlanWithTx(ctx, tx, userID, p.Id)
		if err != nil {
			return appErrors.ErrSubscriptionNotFound.WithError(err)
		}

		if _, has := sub.Pending(); has {
			return appErrors.NewModificationInProgressError()
		}

		if change.Amount != nil {
			rounded := pkg.Round2(*change.Amount)
			change.Amount = &rounded
		}
		sub.SetPending(change)
		sub.UpdatedAt = time.Now()

		if err := s.Repository.UpdateWithTx(ctx, tx, sub); err != nil {
			return err
		}

		updated = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// CancelModification drops the queued change without any balance effect.
func (s *Service) CancelModification(ctx context.Context, userID ulid.ULID, planName string) (*Subscription, error) {
	p, err := s.Plans.GetByName(ctx, planName)
	if err != nil {
		return nil, appErrors.ErrPlanNotFound.WithError(err)
	}

	var updated *Subscription
	err = shared.RunAtomic(ctx, s.Accounts, func(tx interface{}) error {
		sub, err := s.Repository.LockByUserAndPlanWithTx(ctx, tx, userID, p.Id)
		if err != nil {
			return appErrors.ErrSubscriptionNotFound.WithError(err)
		}

		if _, has := sub.Pending(); !has {
			return appErrors.NewInvalidStateError("no pending modification to cancel")
		}

		sub.ClearPending()
		sub.UpdatedAt = time.Now()

		if err := s.Repository.UpdateWithTx(ctx, tx, sub); err != nil {
			return err
		}

		updated = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ApproveModification applies the queued change. No balance adjustment
// happens on approval; fund impact is reconciled only on rejection.
func (s *Service) ApproveModification(ctx context.Context, subscriptionID ulid.ULID) (*Subscription, error) {
	var updated *Subscription

	err := shared.RunAtomic(ctx, s.Accounts, func(tx interface{}) error {
		sub, err := s.Repository.LockByIDWithTx(ctx, tx, subscriptionID)
		if err != nil {
			return appErrors.ErrSubscriptionNotFound.WithError(err)
		}

		if _, has := sub.Pending(); !has {
			return appErrors.NewInvalidStateError("no pending modification to approve")
		}

		sub.ApplyPending()
		sub.UpdatedAt = time.Now()

		if err := s.Repository.UpdateWithTx(ctx, tx, sub); err != nil {
			return err
		}

		updated = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// RejectModification clears the queued change and refunds only a positive
// amount delta: funds added at request time come back out of both
// balances, a requested decrease refunds nothing.
func (s *Service) RejectModification(ctx context.Context, subscriptionID ulid.ULID) (*Subscription, error) {
	var updated *Subscription

	err := shared.RunAtomic(ctx, s.Accounts, func(tx interface{}) error {
		sub, err := s.Repository.LockByIDWithTx(ctx, tx, subscriptionID)
		if err != nil {
			return appErrors.ErrSubscriptionNotFound.WithError(err)
		}

		pending, has := sub.Pending()
		if !has {
			return appErrors.NewInvalidStateError("no pending modification to reject")
		}

		if _, err := s.Accounts.LockByUserWithTx(ctx, tx, sub.UserId); err != nil {
			return err
		}

		var difference float64
		if pending.Amount != nil && *pending.Amount > sub.Amount {
			difference = pkg.Round2(*pending.Amount - sub.Amount)
		}

		if difference > 0 {
			_, err := s.Recorder.RecordRefundWithTx(ctx, tx, sub.UserId, difference,
				"Refund for rejected modification of plan "+sub.PlanName)
			if err != nil {
				return err
			}
		}

		sub.ClearPending()
		sub.UpdatedAt = time.Now()

		if err := s.Repository.UpdateWithTx(ctx, tx, sub); err != nil {
			return err
		}

		updated = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// PromoteIfPendingWithTx applies the queued change as a side effect of a
// successful payout, inside the payout's transaction.
func (s *Service) PromoteIfPendingWithTx(ctx context.Context, tx interface{}, sub *Subscription) error {
	if _, has := sub.Pending(); !has {
		return nil
	}

	sub.ApplyPending()
	sub.UpdatedAt = time.Now()
	return s.Repository.UpdateWithTx(ctx, tx, sub)
}

func (s *Service) GetSubscription(ctx context.Context, userID ulid.ULID, planName string) (*Subscription, error) {
	p, err := s.Plans.GetByName(ctx, planName)
	if err != nil {
		return nil, appErrors.ErrPlanNotFound.WithError(err)
	}

	sub, err := s.Repository.GetByUserAndPlan(ctx, userID, p.Id)
	if err != nil {
		return nil, appErrors.ErrSubscriptionNotFound.WithError(err)
	}
	return sub, nil
}

func (s *Service) ListSubscriptions(ctx context.Context, userID ulid.ULID) ([]*Subscription, error) {
	return s.Repository.ListByUser(ctx, userID)
}

package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/account"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/domain/shared"
	appErrors "github.com/shak0x90/steadygainsinvestments-sub000/internal/errors"
	"github.com/shak0x90/steadygainsinvestments-sub000/internal/pkg"
)

// AllocationSource reports the capital currently allocated to plan
// subscriptions, read inside the same transaction that locks the account
// so the usable-funds check cannot race a concurrent allocation.
type AllocationSource interface {
	SumAmountsByUserWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) (float64, error)
}

// Service is the transaction engine. Every mutation runs as one atomic
// unit against the store: the balance write and the ledger record commit
// or roll back together.
type Service struct {
	Repository  Repository
	Accounts    account.Repository
	Allocations AllocationSource
}

func NewService(repo Repository, accounts account.Repository, allocations AllocationSource) *Service {
	return &Service{
		Repository:  repo,
		Accounts:    accounts,
		Allocations: allocations,
	}
}

// RequestDeposit files a PENDING deposit. Balances are untouched until an
// administrator approves it.
func (s *Service) RequestDeposit(ctx context.Context, userID ulid.ULID, amount float64, method, details string) (*Transaction, error) {
	if amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "amount must be greater than zero")
	}

	t := s.newTransaction(userID, Deposit, StatusPending, amount, "Deposit request")
	t.Method = strings.TrimSpace(method)
	t.Details = strings.TrimSpace(details)

	err := shared.RunAtomic(ctx, s.Accounts, func(tx interface{}) error {
		if _, err := s.Accounts.LockByUserWithTx(ctx, tx, userID); err != nil {
			return err
		}
		return s.Repository.CreateWithTx(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// ApproveDeposit settles a pending deposit and credits both balances.
func (s *Service) ApproveDeposit(ctx context.Context, transactionID ulid.ULID) (*Transaction, error) {
	var settled *Transaction

	err := shared.RunAtomic(ctx, s.Accounts, func(tx interface{}) error {
		t, err := s.Repository.LockByIDWithTx(ctx, tx, transactionID)
		if err != nil {
			return appErrors.ErrTransactionNotFound.WithError(err)
		}
		if t.Type != Deposit {
			return appErrors.NewInvalidStateError("transaction is not a deposit")
		}
		if t.Status != StatusPending {
			return appErrors.NewInvalidStateError("deposit is not pending")
		}

		if _, err := s.Accounts.LockByUserWithTx(ctx, tx, t.UserId); err != nil {
			return err
		}
		if err := s.Repository.SettleWithTx(ctx, tx, t.Id, StatusCompleted); err != nil {
			return err
		}
		if err := s.Accounts.ApplyDeltaWithTx(ctx, tx, t.UserId, t.Amount, t.Amount); err != nil {
			return err
		}

		t.Status = StatusCompleted
		settled = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return settled, nil
}

// RequestWithdrawal escrows the amount immediately: CurrentValue is
// debited in the same unit that files the PENDING withdrawal, so the
// funds leave the usable pool before any administrator action.
func (s *Service) RequestWithdrawal(ctx context.Context, userID ulid.ULID, amount float64, method, details string) (*Transaction, error) {
	if amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "amount must be greater than zero")
	}

	t := s.newTransaction(userID, Withdrawal, StatusPending, amount, "Withdrawal request")
	t.Method = strings.TrimSpace(method)
	t.Details = strings.TrimSpace(details)

	err := shared.RunAtomic(ctx, s.Accounts, func(tx interface{}) error {
		acct, err := s.Accounts.LockByUserWithTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		allocated, err := s.Allocations.SumAmountsByUserWithTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		usable := pkg.Round2(acct.CurrentValue - allocated)
		if amount > usable {
			return appErrors.NewInsufficientFundsError(usable)
		}

		if err := s.Accounts.ApplyDeltaWithTx(ctx, tx, userID, 0, -amount); err != nil {
			return err
		}
		return s.Repository.CreateWithTx(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// ResolveWithdrawal settles a pending withdrawal. Rejection releases the
// escrow back into CurrentValue; completion leaves the balance as is,
// settlement of the payout itself being external.
func (s *Service) ResolveWithdrawal(ctx context.Context, transactionID ulid.ULID, decision Status) (*Transaction, error) {
	if decision != StatusCompleted && decision != StatusRejected {
		return nil, appErrors.NewValidationError("decision", "decision must be COMPLETED or REJECTED")
	}

	var settled *Transaction

	err := shared.RunAtomic(ctx, s.Accounts, func(tx interface{}) error {
		t, err := s.Repository.LockByIDWithTx(ctx, tx, transactionID)
		if err != nil {
			return appErrors.ErrTransactionNotFound.WithError(err)
		}
		if t.Type != Withdrawal {
			return appErrors.NewInvalidStateError("transaction is not a withdrawal")
		}
		if t.Status != StatusPending {
			return appErrors.NewAlreadyProcessedError(string(t.Status))
		}

		if _, err := s.Accounts.LockByUserWithTx(ctx, tx, t.UserId); err != nil {
			return err
		}
		if err := s.Repository.SettleWithTx(ctx, tx, t.Id, decision); err != nil {
			return err
		}
		if decision == StatusRejected {
			if err := s.Accounts.ApplyDeltaWithTx(ctx, tx, t.UserId, 0, t.Amount); err != nil {
				return err
			}
		}

		t.Status = decision
		settled = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return settled, nil
}

// RecordReturnWithTx writes an already-COMPLETED return and credits
// CurrentValue, inside the caller's transaction. Used by the payout
// engine; never exposed to external callers without an invoice.
func (s *Service) RecordReturnWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, amount float64, description string, invoiceID *ulid.ULID) (*Transaction, error) {
	t := s.newTransaction(userID, Return, StatusCompleted, amount, description)
	t.InvoiceId = invoiceID

	if err := s.Repository.CreateWithTx(ctx, tx, t); err != nil {
		return nil, err
	}
	if err := s.Accounts.ApplyDeltaWithTx(ctx, tx, userID, 0, amount); err != nil {
		return nil, err
	}

	return t, nil
}

// RecordRefundWithTx writes an already-COMPLETED refund and debits both
// balances, inside the caller's transaction. Used by the subscription
// manager when a modification is rejected.
func (s *Service) RecordRefundWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, amount float64, description string) (*Transaction, error) {
	t := s.newTransaction(userID, Refund, StatusCompleted, amount, description)

	if err := s.Repository.CreateWithTx(ctx, tx, t); err != nil {
		return nil, err
	}
	if err := s.Accounts.ApplyDeltaWithTx(ctx, tx, userID, -amount, -amount); err != nil {
		return nil, err
	}

	return t, nil
}

// RecordAllocationWithTx writes the already-COMPLETED deposit that
// describes a plan allocation and credits both balances, inside the
// caller's transaction. Used by the subscription manager on subscribe.
func (s *Service) RecordAllocationWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, amount float64, description string) (*Transaction, error) {
	t := s.newTransaction(userID, Deposit, StatusCompleted, amount, description)

	if err := s.Repository.CreateWithTx(ctx, tx, t); err != nil {
		return nil, err
	}
	if err := s.Accounts.ApplyDeltaWithTx(ctx, tx, userID, amount, amount); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) GetTransaction(ctx context.Context, transactionID ulid.ULID) (*Transaction, error) {
	t, err := s.Repository.GetByID(ctx, transactionID)
	if err != nil {
		return nil, appErrors.ErrTransactionNotFound.WithError(err)
	}
	return t, nil
}

func (s *Service) ListTransactions(ctx context.Context, userID ulid.ULID, filters *ListFilters, pagination *pkg.PaginationParams) ([]*Transaction, int64, error) {
	return s.Repository.ListByUser(ctx, userID, filters, pagination)
}

func (s *Service) ListAllTransactions(ctx context.Context, filters *ListFilters, pagination *pkg.PaginationParams) ([]*Transaction, int64, error) {
	return s.Repository.List(ctx, filters, pagination)
}

func (s *Service) newTransaction(userID ulid.ULID, typ Types, status Status, amount float64, description string) *Transaction {
	now := time.Now()
	return &Transaction{
		Id:          pkg.GenerateULIDObject(),
		UserId:      userID,
		Type:        typ,
		Status:      status,
		Amount:      pkg.Round2(amount),
		Description: description,
		Date:        now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

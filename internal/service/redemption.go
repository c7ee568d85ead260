package service

import (
	"context"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flyerpoints-backend/internal/domain"
	"flyerpoints-backend/internal/ledger"
	"flyerpoints-backend/internal/logger"
	"flyerpoints-backend/internal/metrics"
	"flyerpoints-backend/internal/repository"
)

type redemptionService struct {
	runner   repository.TxRunner
	notifier Notifier
	points   int64
}

func NewRedemptionService(runner repository.TxRunner, notifier Notifier, redemptionPoints int64) RedemptionService {
	return &redemptionService{
		runner:   runner,
		notifier: notifier,
		points:   redemptionPoints,
	}
}

func (s *redemptionService) Redeem(ctx context.Context, userID string, details domain.RedemptionDetails) (*domain.PointTransaction, error) {
	if strings.TrimSpace(details.Name) == "" || strings.TrimSpace(details.Email) == "" {
		return nil, status.Error(codes.InvalidArgument, "name and email are required")
	}

	var (
		entry   *domain.PointTransaction
		account *domain.UserAccount
	)
	err := s.runner.RunTransaction(ctx, func(tx repository.Tx) error {
		acct, err := tx.GetUser(userID)
		if err != nil {
			return err
		}
		e, err := ledger.Redeem(acct, s.points, details, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := tx.SetUser(acct); err != nil {
			return err
		}
		if err := tx.AppendTransaction(e); err != nil {
			return err
		}
		entry, account = e, acct
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.Redemptions.Inc()
	logger.InfoContext(ctx, "redemption accepted",
		"user_id", userID, "transaction_id", entry.ID, "amount", -entry.Amount)

	// Best effort: the debit is committed, a lost notice is recovered from
	// the ledger by the operations team.
	if err := s.notifier.NotifyRedemption(ctx, account, entry); err != nil {
		logger.ErrorContext(ctx, "failed to send redemption notice",
			"user_id", userID, "transaction_id", entry.ID, "error", err)
	}
	return entry, nil
}

package service

import (
	"context"

	"flyerpoints-backend/internal/domain"
	"flyerpoints-backend/internal/repository"
)

// Ledger entries returned with a profile, newest first.
const profileHistoryLimit = 50

type userService struct {
	users        repository.UserRepository
	transactions repository.TransactionRepository
}

func NewUserService(users repository.UserRepository, transactions repository.TransactionRepository) UserService {
	return &userService{users: users, transactions: transactions}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.UserAccount, []domain.PointTransaction, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.transactions.ListByUser(ctx, userID, profileHistoryLimit)
	if err != nil {
		return nil, nil, err
	}
	return account, history, nil
}

package admin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/services/notify"
	"github.com/dlehdeod1/newcornerkicks/internal/storage"
)

// Service backs the admin dashboard
type Service struct {
	storage storage.Storage
	notify  *notify.Service
	logger  *zap.Logger
}

// New creates a new admin Service
func New(storage storage.Storage, notify *notify.Service, logger *zap.Logger) *Service {
	return &Service{storage: storage, notify: notify, logger: logger}
}

// Stats summarizes the club
func (s *Service) Stats(ctx context.Context) (*model.AdminStats, error) {
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.storage.ListSessions(ctx, storage.SessionFilter{})
	if err != nil {
		return nil, err
	}
	settlements, err := s.storage.ListSettlements(ctx, 0)
	if err != nil {
		return nil, err
	}

	stats := &model.AdminStats{
		TotalUsers:    len(accounts),
		TotalPlayers:  len(players),
		TotalSessions: len(sessions),
	}
	for _, session := range sessions {
		if session.Status == model.SessionRecruiting {
			stats.RecruitingSessions++
		}
	}
	for _, st := range settlements {
		if !st.Paid {
			stats.UnpaidSettlements++
			stats.OutstandingAmount += st.Amount
		}
	}
	return stats, nil
}

// Users lists every account
func (s *Service) Users(ctx context.Context) ([]model.User, error) {
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(accounts))
	for _, a := range accounts {
		users = append(users, a.User)
	}
	return users, nil
}

// SetRole changes a user's role and tells them about it
func (s *Service) SetRole(ctx context.Context, userID int64, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, model.ErrInvalidRole
	}
	account, err := s.storage.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account.User.Role == role {
		return &account.User, nil
	}

	account.User.Role = role
	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info("role changed", zap.Int64("user_id", userID), zap.String("role", string(role)))

	if err := s.notify.Notify(ctx, userID, "권한이 변경되었습니다", fmt.Sprintf("새 권한: %s", role)); err != nil {
		s.logger.Warn("failed to notify role change", zap.Int64("user_id", userID), zap.Error(err))
	}
	return &account.User, nil
}

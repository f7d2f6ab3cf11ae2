package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	models "github.com/hevolife/bookingfast/internal/models"
	"github.com/hevolife/bookingfast/pkg/config"
	"github.com/hevolife/bookingfast/pkg/logctx"
	"github.com/hevolife/bookingfast/pkg/tool"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	cfg *config.Config
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, db: db, log: log}
}

// Activate flips the account-level subscription flag for a tenant after a
// successful subscription checkout. Re-activating an already-active account
// is a no-op apart from refreshing the plan and timestamp.
func (s *Service) Activate(ctx context.Context, userID, planID string) (*models.Account, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required for subscription activation")
	}
	if planID != "" && s.cfg.GetPlanByID(planID) == nil {
		// Unknown plan ids are recorded as-is; plan catalogs lag behind
		// checkout configuration during rollouts.
		logctx.FromCtx(ctx, s.log).Warnw("unknown subscription plan", "plan_id", planID, "user_id", userID)
	}

	var account models.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load account: %w", err)
		}
		if account.ID == "" {
			account.ID = tool.GenerateUUIDV7()
			account.UserID = userID
		}

		now := time.Now()
		account.SubscriptionActive = true
		account.PlanID = planID
		account.SubscriptionUpdatedAt = &now

		if err := tx.WithContext(ctx).Save(&account).Error; err != nil {
			return fmt.Errorf("failed to save account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("subscription activated", "user_id", userID, "plan_id", planID)
	return &account, nil
}

func (s *Service) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

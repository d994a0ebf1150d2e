package attributionservice

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payoutengine/internal/domain"
)

//go:generate mockgen -source=attributionservice.go -destination=mock_attributionservice.go -package=attributionservice

type Repo interface {
	FindByCode(ctx context.Context, merchantID, code string) (*domain.PromoterAccount, *domain.DiscountCode, error)
}

type Service struct {
	repo Repo
	now  func() time.Time
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Resolve maps a redeemed code to the promoter that owns it. Unknown,
// inactive or expired codes and inactive promoters yield
// domain.ErrNoAttributionFound.
func (s *Service) Resolve(ctx context.Context, merchantID, code string) (*domain.Attribution, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrNoAttributionFound
	}

	promoter, discount, err := s.repo.FindByCode(ctx, merchantID, code)
	if err != nil {
		zap.L().Error("failed to look up discount code",
			zap.String("merchantID", merchantID), zap.String("code", code), zap.Error(err))
		return nil, err
	}
	if promoter == nil || discount == nil {
		return nil, domain.ErrNoAttributionFound
	}

	switch {
	case !discount.IsActive:
		zap.L().Debug("discount code is inactive", zap.String("merchantID", merchantID), zap.String("code", code))
		return nil, domain.ErrNoAttributionFound
	case discount.ExpiresAt != nil && !s.now().Before(*discount.ExpiresAt):
		zap.L().Debug("discount code has expired", zap.String("merchantID", merchantID), zap.String("code", code))
		return nil, domain.ErrNoAttributionFound
	case !promoter.Active || promoter.MerchantID != merchantID:
		zap.L().Debug("promoter is not active", zap.String("merchantID", merchantID), zap.String("promoterID", promoter.ID))
		return nil, domain.ErrNoAttributionFound
	}

	return &domain.Attribution{Promoter: promoter, Code: discount}, nil
}

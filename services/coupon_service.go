package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cardapio-go/models"
	"cardapio-go/pricing"
	"cardapio-go/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

type PromotionInput struct {
	Code               string
	DiscountPercentage int
	IsActive           bool
	ValidUntil         string
}

// PromotionPatch carries the fields to change; nil fields are left alone.
type PromotionPatch struct {
	Code               *string
	DiscountPercentage *int
	IsActive           *bool
	ValidUntil         *string
}

type ICouponService interface {
	Resolve(ctx context.Context, code string) (*pricing.Coupon, error)
	ListPromotions(ctx context.Context) ([]models.Promotion, error)
	CreatePromotion(ctx context.Context, input PromotionInput) (*models.Promotion, error)
	UpdatePromotion(ctx context.Context, id uuid.UUID, patch PromotionPatch) (*models.Promotion, error)
	DeletePromotion(ctx context.Context, id uuid.UUID) error
}

type CouponService struct {
	repo repository.IPromotionRepository
	loc  *time.Location
	now  func() time.Time
}

// NewCouponService compares expiry dates in loc; nil means UTC.
func NewCouponService(repo repository.IPromotionRepository, loc *time.Location) *CouponService {
	if loc == nil {
		loc = time.UTC
	}
	return &CouponService{repo: repo, loc: loc, now: time.Now}
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Resolve finds the active, unexpired promotion for code.
func (s *CouponService) Resolve(ctx context.Context, code string) (*pricing.Coupon, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, invalid("code", "coupon code is required")
	}

	promotion, err := s.repo.FindActiveByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup coupon %s: %w", code, err)
	}

	coupon := promotion.Coupon()
	if !coupon.ValidOn(s.now().In(s.loc)) {
		return nil, ErrCouponNotFound
	}
	return &coupon, nil
}

func (s *CouponService) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	return s.repo.List(ctx)
}

func (s *CouponService) CreatePromotion(ctx context.Context, input PromotionInput) (*models.Promotion, error) {
	promotion := &models.Promotion{IsActive: input.IsActive}
	if err := applyPromotion(promotion, &input.Code, &input.DiscountPercentage, &input.ValidUntil); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, promotion); err != nil {
		return nil, promotionWriteError(err)
	}
	return promotion, nil
}

func (s *CouponService) UpdatePromotion(ctx context.Context, id uuid.UUID, patch PromotionPatch) (*models.Promotion, error) {
	promotion, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := applyPromotion(promotion, patch.Code, patch.DiscountPercentage, patch.ValidUntil); err != nil {
		return nil, err
	}
	if patch.IsActive != nil {
		promotion.IsActive = *patch.IsActive
	}
	if err := s.repo.Save(ctx, promotion); err != nil {
		return nil, promotionWriteError(err)
	}
	return promotion, nil
}

func (s *CouponService) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func applyPromotion(p *models.Promotion, code *string, pct *int, validUntil *string) error {
	if code != nil {
		c := NormalizeCode(*code)
		if c == "" {
			return invalid("code", "code is required")
		}
		if len(c) > 64 {
			return invalid("code", "code must be at most 64 characters")
		}
		p.Code = c
	}
	if pct != nil {
		if *pct < 1 || *pct > 100 {
			return invalid("discount_percentage", "discount must be between 1 and 100")
		}
		p.DiscountPercentage = *pct
	}
	if validUntil != nil {
		d, err := time.Parse(dateLayout, strings.TrimSpace(*validUntil))
		if err != nil {
			return invalid("valid_until", "date must be formatted as YYYY-MM-DD")
		}
		p.ValidUntil = datatypes.Date(d)
	}
	return nil
}

func promotionWriteError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrDuplicateCode
	}
	return err
}

package financings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	propsvc "realty-backend/internal/application/properties"
	"realty-backend/internal/domain"
	"realty-backend/internal/financing"
	"realty-backend/internal/infrastructure/cache"
	"realty-backend/internal/metrics"
	"realty-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service runs financing calculations and manages the financing attached to
// a property.
type Service struct {
	DB          *gorm.DB
	Calculators *financing.Registry
	Cache       cache.ResultCache
}

func (s *Service) calculators() *financing.Registry {
	if s.Calculators == nil {
		s.Calculators = financing.NewRegistry()
	}
	return s.Calculators
}

func (s *Service) cache() cache.ResultCache {
	if s.Cache == nil {
		return cache.Nop{}
	}
	return s.Cache
}

// WithDefaults fills what a cash purchase leaves out: no loan term means the
// default horizon.
func WithDefaults(t financing.Type, p financing.Parameters) financing.Parameters {
	if t == financing.TypeCash && p.LoanTermYears == 0 {
		p.LoanTermYears = financing.DefaultHorizonYears
	}
	return p
}

func (s *Service) Types() []financing.Type {
	return s.calculators().Types()
}

func (s *Service) parse(tag string) (financing.Type, error) {
	if strings.TrimSpace(tag) == "" {
		return "", ErrTypeRequired
	}
	return s.calculators().Parse(tag)
}

// Calculate runs the calculator for tag. Results are served from the cache
// when present; cache failures only cost a recalculation.
func (s *Service) Calculate(ctx context.Context, tag string, p financing.Parameters) (financing.Result, error) {
	t, err := s.parse(tag)
	if err != nil {
		return financing.Result{}, err
	}
	p = WithDefaults(t, p)

	res, ok, err := s.cache().Get(ctx, t, p)
	if err != nil {
		log.Warn().Err(err).Str("type", t.String()).Msg("financing cache read failed")
	}
	if ok {
		metrics.FinancingCache.WithLabelValues("hit").Inc()
		return res, nil
	}
	metrics.FinancingCache.WithLabelValues("miss").Inc()

	res, err = s.run(t, p)
	if err != nil {
		return financing.Result{}, err
	}
	if err := s.cache().Set(ctx, t, p, res); err != nil {
		log.Warn().Err(err).Str("type", t.String()).Msg("financing cache write failed")
	}
	return res, nil
}

func (s *Service) run(t financing.Type, p financing.Parameters) (financing.Result, error) {
	calc, err := s.calculators().Create(t)
	if err != nil {
		return financing.Result{}, err
	}
	res, err := calc.Calculate(p)
	observe(t, err)
	return res, err
}

// Compare calculates every registered type for the same parameters.
func (s *Service) Compare(ctx context.Context, p financing.Parameters) (map[financing.Type]financing.Result, error) {
	out := make(map[financing.Type]financing.Result)
	for _, t := range s.Types() {
		res, err := s.run(t, WithDefaults(t, p))
		if err != nil {
			return nil, err
		}
		out[t] = res
	}
	return out, nil
}

// Attach calculates tag for the property and replaces whatever financing it
// had. The property price always wins over a price in p.
func (s *Service) Attach(ctx context.Context, propertyID uuid.UUID, tag string, p financing.Parameters) (*domain.Property, error) {
	t, err := s.parse(tag)
	if err != nil {
		return nil, err
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()
	rec, err := propsvc.Find(tx, propertyID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	prop, err := propsvc.Aggregate(rec, s.calculators(), false)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	p = WithDefaults(t, p)
	p.PropertyPrice = rec.Price
	err = prop.AddFinancing(t, p)
	observe(t, err)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	snap, err := models.NewFinancing(rec.ID, *prop.Financing)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Where(`"propertyId" = ?`, rec.ID).Delete(&models.Financing{}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("replace financing: %w", err)
	}
	if err := tx.Create(snap).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("save financing: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("save financing: %w", err)
	}
	return prop, nil
}

// Clear removes the property's financing. Clearing a property without one is
// not an error.
func (s *Service) Clear(ctx context.Context, propertyID uuid.UUID) (*domain.Property, error) {
	db := s.DB.WithContext(ctx)
	rec, err := propsvc.Find(db, propertyID)
	if err != nil {
		return nil, err
	}
	if err := db.Where(`"propertyId" = ?`, propertyID).Delete(&models.Financing{}).Error; err != nil {
		return nil, fmt.Errorf("clear financing: %w", err)
	}
	rec.Financing = nil
	return propsvc.Aggregate(rec, s.calculators(), false)
}

// CompareForProperty runs every type against p priced at the property's price.
func (s *Service) CompareForProperty(ctx context.Context, propertyID uuid.UUID, p financing.Parameters) (map[financing.Type]financing.Result, error) {
	rec, err := propsvc.Find(s.DB.WithContext(ctx), propertyID)
	if err != nil {
		return nil, err
	}
	p.PropertyPrice = rec.Price
	return s.Compare(ctx, p)
}

func observe(t financing.Type, err error) {
	outcome := metrics.OutcomeSuccess
	var ve *financing.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &ve):
		outcome = metrics.OutcomeInvalid
	default:
		outcome = metrics.OutcomeError
	}
	metrics.FinancingCalculations.WithLabelValues(t.String(), outcome).Inc()
}

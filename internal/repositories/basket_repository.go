package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/MoathMalki/Integrated-web-project-for-apartment-rentals/internal/models"
)

/*
   BasketRepository stores soft holds in Redis: one hash per customer,
   one field per flat, JSON-encoded hold as the value. Keying by flat
   makes the per-(customer, flat) idempotent upsert natural; holds are
   advisory, so losing them on a flush costs nothing but convenience.
*/
type BasketRepository interface {
	// Upsert stores the hold. If the customer already holds the flat,
	// the existing entry keeps its ID and gets the new range.
	Upsert(ctx context.Context, hold *models.SoftHold) (*models.SoftHold, error)

	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.SoftHold, error)
	GetByHoldID(ctx context.Context, customerID, holdID uuid.UUID) (*models.SoftHold, error)
	DeleteByHoldID(ctx context.Context, customerID, holdID uuid.UUID) (bool, error)
	DeleteByFlat(ctx context.Context, customerID, flatID uuid.UUID) error
}

type basketRepo struct {
	rdb *redis.Client
}

func NewBasketRepository(rdb *redis.Client) BasketRepository {
	return &basketRepo{rdb: rdb}
}

func basketKey(customerID uuid.UUID) string {
	return fmt.Sprintf("basket:%s", customerID)
}

func (r *basketRepo) Upsert(ctx context.Context, hold *models.SoftHold) (*models.SoftHold, error) {
	key := basketKey(hold.CustomerID)
	field := hold.FlatID.String()

	existing, err := r.rdb.HGet(ctx, key, field).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	if err == nil {
		var prev models.SoftHold
		if jsonErr := json.Unmarshal([]byte(existing), &prev); jsonErr == nil {
			hold.ID = prev.ID
			hold.CreatedAt = prev.CreatedAt
		}
	}

	raw, err := json.Marshal(hold)
	if err != nil {
		return nil, err
	}
	if err := r.rdb.HSet(ctx, key, field, raw).Err(); err != nil {
		return nil, err
	}
	return hold, nil
}

func (r *basketRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.SoftHold, error) {
	entries, err := r.rdb.HGetAll(ctx, basketKey(customerID)).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*models.SoftHold, 0, len(entries))
	for _, raw := range entries {
		var h models.SoftHold
		if err := json.Unmarshal([]byte(raw), &h); err != nil {
			return nil, err
		}
		out = append(out, &h)
	}
	return out, nil
}

func (r *basketRepo) GetByHoldID(ctx context.Context, customerID, holdID uuid.UUID) (*models.SoftHold, error) {
	holds, err := r.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for _, h := range holds {
		if h.ID == holdID {
			return h, nil
		}
	}
	return nil, nil
}

func (r *basketRepo) DeleteByHoldID(ctx context.Context, customerID, holdID uuid.UUID) (bool, error) {
	hold, err := r.GetByHoldID(ctx, customerID, holdID)
	if err != nil {
		return false, err
	}
	if hold == nil {
		return false, nil
	}
	removed, err := r.rdb.HDel(ctx, basketKey(customerID), hold.FlatID.String()).Result()
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

func (r *basketRepo) DeleteByFlat(ctx context.Context, customerID, flatID uuid.UUID) error {
	return r.rdb.HDel(ctx, basketKey(customerID), flatID.String()).Err()
}

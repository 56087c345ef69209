package checkoutService

import (
	"VyapaarAI/internal/api/checkout"
	"VyapaarAI/internal/entity"
	"VyapaarAI/pkg/redis"
	"errors"

	"golang.org/x/net/context"
)

func (s *checkoutService) GetBill(ctx context.Context, id string) (entity.Bill, error) {
	if s.redis == nil {
		return entity.Bill{}, checkout.ErrBillCacheDisabled
	}

	bill, err := s.redis.GetBill(ctx, id)
	if errors.Is(err, redis.ErrBillNotFound) {
		return entity.Bill{}, checkout.ErrBillNotFound
	}
	if err != nil {
		return entity.Bill{}, err
	}

	return bill, nil
}

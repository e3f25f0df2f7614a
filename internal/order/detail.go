package order

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrMissingID = errors.New("order id is missing")
	ErrLoad      = errors.New("failed to load order details")
)

// Detail fetches one order. ErrNotFound is terminal for the caller; every other
// backend failure is reported as ErrLoad.
func Detail(ctx context.Context, repo Repository, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, ErrMissingID
	}

	o, err := repo.GetByID(ctx, orderID)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	case o == nil:
		return nil, ErrNotFound
	}
	return o, nil
}

package notify

import (
	"context"
	"errors"
)

// Multi fans one alert out to multiple dispatchers sequentially. If one
// dispatcher fails, the remaining dispatchers still receive the alert.
type Multi struct {
	dispatchers []Dispatcher
}

// NewMulti creates a Multi that fans out to the given dispatchers.
func NewMulti(dispatchers ...Dispatcher) *Multi {
	return &Multi{dispatchers: dispatchers}
}

// Dispatch delivers the alert to every wrapped dispatcher. Errors are
// collected but do not prevent delivery to subsequent dispatchers.
func (m *Multi) Dispatch(ctx context.Context, alert Alert) error {
	var errs []error
	for _, d := range m.dispatchers {
		if err := d.Dispatch(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package course

import "context"

// Store persists courses. Get, Update and Delete return ErrNotFound for a
// missing course and ErrInvalidID for an id that cannot exist.
type Store interface {
	List(ctx context.Context) ([]Course, error)
	Get(ctx context.Context, id string) (Course, error)
	Create(ctx context.Context, in Input) (Course, error)
	Update(ctx context.Context, id string, in Input) (Course, error)
	Delete(ctx context.Context, id string) error
}

package sets

import "context"

type Repository interface {
	Create(ctx context.Context, s Set) error
	Update(ctx context.Context, s Set) error
	Delete(ctx context.Context, name string) error
	GetByName(ctx context.Context, name string) (Set, error)
	List(ctx context.Context) ([]Set, error)
}

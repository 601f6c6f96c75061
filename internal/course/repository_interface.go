package course

import "context"

type Repository interface {
	List(ctx context.Context) ([]Course, error)
	FindByCode(ctx context.Context, code string) (*Course, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, code, title string, courseType Type, price float64) (*Course, error)
	UpdateByCode(ctx context.Context, code string, newCode, title string, courseType Type, price float64) (*Course, error)
}

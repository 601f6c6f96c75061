package course

import (
	"context"
	"errors"
)

var ErrCodeExists = errors.New("course with given code already exists")

type Service interface {
	List(ctx context.Context) ([]Course, error)
	GetByCode(ctx context.Context, code string) (*Course, error)
	Create(ctx context.Context, req CourseRequest) (*Course, error)
	Update(ctx context.Context, code string, req CourseRequest) (*Course, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Course, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByCode(ctx context.Context, code string) (*Course, error) {
	return s.repo.FindByCode(ctx, code)
}

func (s *service) Create(ctx context.Context, req CourseRequest) (*Course, error) {
	courseType, err := ParseType(req.Type)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.CodeExists(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCodeExists
	}

	return s.repo.Create(ctx, req.Code, req.Title, courseType, req.Price)
}

func (s *service) Update(ctx context.Context, code string, req CourseRequest) (*Course, error) {
	courseType, err := ParseType(req.Type)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	// Смена кода допустима, только если новый код свободен
	if req.Code != current.Code {
		exists, err := s.repo.CodeExists(ctx, req.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrCodeExists
		}
	}

	return s.repo.UpdateByCode(ctx, code, req.Code, req.Title, courseType, req.Price)
}

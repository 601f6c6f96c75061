package course

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrCourseNotFound = errors.New("course not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Course, error) {
	query := `
		SELECT id, code, title, type, price, created_at
		FROM courses
		ORDER BY id
	`

	var courses []Course
	err := r.db.SelectContext(ctx, &courses, query)
	if err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Course, error) {
	query := `
		SELECT id, code, title, type, price, created_at
		FROM courses
		WHERE code = $1
	`

	var c Course
	err := r.db.GetContext(ctx, &c, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *repository) CodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM courses WHERE code = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, code)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) Create(ctx context.Context, code, title string, courseType Type, price float64) (*Course, error) {
	query := `
		INSERT INTO courses (code, title, type, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, code, title, type, price, created_at
	`

	var c Course
	err := r.db.GetContext(ctx, &c, query, code, title, courseType, price)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) UpdateByCode(ctx context.Context, code string, newCode, title string, courseType Type, price float64) (*Course, error) {
	query := `
		UPDATE courses
		SET code = $2, title = $3, type = $4, price = $5
		WHERE code = $1
		RETURNING id, code, title, type, price, created_at
	`

	var c Course
	err := r.db.GetContext(ctx, &c, query, code, newCode, title, courseType, price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	return &c, nil
}

package course

import (
	"errors"
	"time"
)

type Type string

const (
	TypeFree Type = "free"
	TypeRent Type = "rent"
	TypeBuy  Type = "buy"
)

var ErrUnknownType = errors.New("unknown course type")

// typeSpec is the single source of truth for course type semantics: whether
// the price is shown and debited, and whether a payment gets an expiry.
var typeSpec = map[Type]struct {
	Priced bool
	Rental bool
}{
	TypeFree: {Priced: false, Rental: false},
	TypeRent: {Priced: true, Rental: true},
	TypeBuy:  {Priced: true, Rental: false},
}

func ParseType(s string) (Type, error) {
	t := Type(s)
	if _, ok := typeSpec[t]; !ok {
		return "", ErrUnknownType
	}
	return t, nil
}

// Priced reports whether the course price is exposed and debited on payment.
func (t Type) Priced() bool {
	return typeSpec[t].Priced
}

// Rental reports whether a payment for this type carries an expiry.
func (t Type) Rental() bool {
	return typeSpec[t].Rental
}

type Course struct {
	ID        int       `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Title     string    `db:"title" json:"title"`
	Type      Type      `db:"type" json:"type"`
	Price     float64   `db:"price" json:"price"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CourseRequest struct {
	Code  string  `json:"code" binding:"required,max=255"`
	Title string  `json:"title" binding:"required,max=255"`
	Type  string  `json:"type" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
}

// CourseResponse is the public course shape. Price is unset for free courses.
type CourseResponse struct {
	Code  string   `json:"code" example:"python-junior"`
	Title string   `json:"title" example:"Python Junior"`
	Type  string   `json:"type" example:"rent"`
	Price *float64 `json:"price,omitempty" example:"159.99"`
}

func NewCourseResponse(c *Course) CourseResponse {
	resp := CourseResponse{
		Code:  c.Code,
		Title: c.Title,
		Type:  string(c.Type),
	}
	if c.Type.Priced() {
		price := c.Price
		resp.Price = &price
	}
	return resp
}

package handler // handler defines http handlers

import (
	"errors"  // errors provides sentinel values used in getUserID
	"strconv" // strconv converts strings to numeric types

	"github.com/go-playground/validator/v10" // struct-tag request validation
	"github.com/labstack/echo/v4"            // echo defines request context types

	"github.com/courtside/hoa-court-booking/internal/middleware"
	"github.com/courtside/hoa-court-booking/internal/model"
)

// Validator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound request structs.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (cv *Validator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := middleware.UserID(c); ok {
		return id, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// actor returns the profile loaded by the permission middleware.
func actor(c echo.Context) (*model.Profile, error) {
	if p := middleware.Actor(c); p != nil {
		return p, nil
	}
	return nil, errors.New("no actor in context")
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrCouponNotFound     = errors.New("invalid coupon")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrDuplicateCode      = errors.New("a promotion with this code already exists")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotAdmin           = errors.New("account does not have administrator access")
	ErrNoPendingPayment   = errors.New("no PIX payment is pending")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

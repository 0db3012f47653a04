package usecase

import "errors"

var (
	ErrServiceNotFound   = errors.New("service not found")
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrAlreadyClaimed    = errors.New("coupon already claimed")
	ErrInvalidSlot       = errors.New("invalid time slot")
	ErrInvalidDate       = errors.New("invalid booking date")
	ErrValidation        = errors.New("validation failed")
)

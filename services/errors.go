package services

import (
	"errors"

	"github.com/luislong0/daily-diet-api/utils"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserNameTaken = errors.New("user already exists")
	ErrMealNotFound  = errors.New("meal not found")
	// ErrInvalidDateTime is returned for a date/time pair that does not parse.
	ErrInvalidDateTime = utils.ErrInvalidDateTime
	// ErrInvalidPhoto is returned for a photo data URI that is not a base64 image.
	ErrInvalidPhoto = utils.ErrInvalidPhoto
)

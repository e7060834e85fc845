package domain

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidTaskID      = errors.New("invalid task id")
	ErrNameRequired       = errors.New("task name is required")
	ErrDateInPast         = errors.New("task date cannot be in the past")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrPasswordChanged    = errors.New("password changed recently, please log in again")
	ErrInvalidResetToken  = errors.New("reset token is invalid or has expired")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrEmailDelivery      = errors.New("there was an error sending the email, try again later")
	ErrInternal           = errors.New("internal server error")
)

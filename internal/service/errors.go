package service

import "errors"

// Request-scoped errors surfaced to the caller as 4xx responses. Anything
// the handlers cannot match against these is reported as a generic server
// fault without leaking store internals.
var (
	ErrMissingField           = errors.New("missing required field")
	ErrMalformedPayload       = errors.New("malformed payload")
	ErrRecipeNotFound         = errors.New("recipe not found")
	ErrIngredientNotFound     = errors.New("ingredient not found")
	ErrDuplicateIngredient    = errors.New("recipe already lists this ingredient")
	ErrMissingInstructionData = errors.New("missing instruction data")
	ErrIngredientInUse        = errors.New("ingredient is in use")
	ErrMissingStars           = errors.New("stars value required")
	ErrUserNotFound           = errors.New("user not found")
	ErrUserExists             = errors.New("user already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidImageType       = errors.New("unsupported image type")
	ErrInvalidResetToken      = errors.New("invalid or expired reset token")
)

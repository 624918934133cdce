package services

import "errors"

// Shared sentinels used across services and the HTTP error mapping.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Prediction views
	ErrInvalidPredictionToken = errors.New("prediction token could not be decoded")

	// Pools
	ErrPoolNotFound        = errors.New("pool not found")
	ErrPoolNameRequired    = errors.New("pool name is required")
	ErrDisplayNameRequired = errors.New("display name is required")
	ErrBracketDataRequired = errors.New("bracket data is required")
	ErrBracketDataTooLong  = errors.New("bracket data exceeds the maximum length")
	ErrMemberNotFound      = errors.New("pool member not found")
	ErrMemberNameConflict  = errors.New("display name is already taken in this pool")
	ErrInvalidMemberToken  = errors.New("invalid member token")
	ErrInvalidCreatorToken = errors.New("invalid creator token")
	ErrPoolCodeGeneration  = errors.New("failed to generate a unique pool code")

	// Reference data
	ErrTeamNotFound           = errors.New("team not found")
	ErrMatchNotFound          = errors.New("match not found")
	ErrFlagStorageUnavailable = errors.New("flag storage is not configured")
	ErrInvalidResult          = errors.New("invalid match result")
)

package progression

import "errors"

// Sentinel errors let controllers map engine outcomes onto HTTP statuses
// without string matching.
var (
	ErrNotFound          = errors.New("record not found")
	ErrAlreadyEnrolled   = errors.New("already enrolled in this module")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrScoreRange        = errors.New("score cannot exceed max score")
	ErrPercentageRange   = errors.New("percentage must be between 0 and 100")
)

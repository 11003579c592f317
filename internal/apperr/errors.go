package apperr

// Domain errors — used across internal/booking, internal/review,
// internal/messaging, internal/store.
var (
	ErrItemNotFound       = NotFound("item not found")
	ErrItemInactive       = StateConflict("item is not active")
	ErrSelfBooking        = StateConflict("renter cannot be the item owner")
	ErrInvalidDateRange   = Validation("start date must be before end date")
	ErrBookingOverlap     = Concurrency("item is already booked for an overlapping date range")
	ErrBookingNotFound    = NotFound("booking not found")
	ErrInvalidTransition  = StateConflict("booking cannot move to the requested status from its current status")
	ErrBookingExpired     = StateConflict("booking can no longer be approved; it expired 48 hours after creation")
	ErrNotAuthorized      = Authorization("actor is not authorized to perform this action")
	ErrReviewNotEligible  = StateConflict("booking is not eligible for a review")
	ErrDuplicateReview    = Concurrency("a review for this booking and direction already exists")
	ErrInvalidRating      = Validation("rating must be between 1 and 5")
	ErrCommentTooShort    = Validation("comment must be at least 10 characters")
	ErrNotParticipant     = Authorization("actor is not a participant of this conversation")
	ErrEmptyMessage       = Validation("message content must not be empty")
	ErrDuplicateEmail     = Concurrency("email is already registered")
	ErrBadCredentials     = Authentication("invalid email or password")
	ErrUnauthenticated    = Authentication("authentication is required")
	ErrCategoryCycle      = Validation("category parent reference would form a cycle")
	ErrCategoryNotFound   = NotFound("category not found")
	ErrUnknownUpdateField = Validation("unknown field in update request")
)

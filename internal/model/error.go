package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeCouponNotFound   = "COUPON_NOT_FOUND"
	ErrCodeCouponCodeExists = "COUPON_CODE_EXISTS"
	ErrCodeInvalidWindow    = "INVALID_VALIDITY_WINDOW"
	ErrCodeInvalidStatus    = "INVALID_STATUS_FILTER"
	ErrCodeReviewNotFound   = "REVIEW_NOT_FOUND"
	ErrCodeInvalidAction    = "INVALID_REVIEW_ACTION"
	ErrCodeInvalidRating    = "INVALID_RATING"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable machine-readable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrCouponNotFound       = NewDomainError(ErrCodeCouponNotFound, "Coupon not found")
	ErrCouponCodeExists     = NewDomainError(ErrCodeCouponCodeExists, "A coupon with this code already exists")
	ErrCouponWindowInverted = NewDomainError(ErrCodeInvalidWindow, "validFrom must not be after validTo")
	ErrInvalidCouponStatus  = NewDomainError(ErrCodeInvalidStatus, "Status filter must be ACTIVE, UPCOMING or EXPIRED")
	ErrReviewNotFound       = NewDomainError(ErrCodeReviewNotFound, "Review not found")
	ErrInvalidReviewAction  = NewDomainError(ErrCodeInvalidAction, "Action must be HIDE or DELETE")
	ErrInvalidRating        = NewDomainError(ErrCodeInvalidRating, "Rating must be between 1 and 5")
)

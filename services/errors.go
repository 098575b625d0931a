package services

import "errors"

var (
	ErrRequestNotFound   = errors.New("service request not found")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidAppliance  = errors.New("invalid appliance selection")
	ErrNotPending        = errors.New("only pending requests can be cancelled")
	ErrStartNotPending   = errors.New("can only start pending requests")
	ErrFinishNotActive   = errors.New("can only finish in-progress requests")
	ErrNotCompleted      = errors.New("only completed requests can be rated")
	ErrAlreadyRated      = errors.New("this service has already been rated")
	ErrRatingOutOfRange  = errors.New("rating must be between 1 and 5")
	ErrInvalidCost       = errors.New("valid total cost is required")
	ErrDuplicateInvoice  = errors.New("invoice already exists for this request")
	ErrInvoiceAlreadyPaid = errors.New("invoice is already marked as paid")
)

package quotation

import "errors"

var (
	// -- Validation & Input --
	ErrEmptyCart    = errors.New("cart is empty")
	ErrNoValidItems = errors.New("no valid items in cart to quote")

	// -- Resource State --
	ErrQuotationNotFound = errors.New("quotation not found")
	ErrInvalidTransition = errors.New("invalid quotation status transition")

	// -- Authorization --
	ErrForbidden = errors.New("quotation does not belong to requesting user")

	// -- Database & Operation Failures --
	ErrFailedCreateQuotation = errors.New("failed to create quotation")
	ErrFailedGetQuotation    = errors.New("failed to get quotation")
	ErrFailedUpdateStatus    = errors.New("failed to update quotation status")
)

package services

import "errors"

// Local validation errors. These are raised before any network call;
// input failing validation never reaches the backend.
var (
	ErrFullNameTooShort       = errors.New("full name should be at least 3 characters")
	ErrRegNoTooShort          = errors.New("registration number should be at least 3 characters")
	ErrUsernameTooShort       = errors.New("efootball username should be at least 3 characters")
	ErrPasswordTooShort       = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrInvalidTransactionCode = errors.New("m-pesa transaction code should be 10 characters, letters and numbers only (e.g. UBAJ96AZLW)")
	ErrInvalidPhoneNumber     = errors.New("enter a valid m-pesa phone number")

	// Admin provisioning rules; the password bound is intentionally
	// looser than participant registration since admin accounts are
	// created by a trusted operator.
	ErrAdminFieldsRequired   = errors.New("full name, efootball username and password are required")
	ErrAdminPasswordTooShort = errors.New("admin password must be at least 6 characters")

	// Payment verification
	ErrInvalidPaymentID = errors.New("invalid payment id")
	ErrInvalidDecision  = errors.New("payment decision must be approve or reject")

	// Session
	ErrEmptyToken = errors.New("session token must not be empty")
)

package services

import "errors"

// Sentinel errors returned by the services. Handlers map these to HTTP status
// codes with errors.Is; anything not listed here surfaces as a generic 500.
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrOwnerNotFound      = errors.New("user not found") // creation gate, maps to 401
	ErrNotOwner           = errors.New("unauthorized user")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNameTaken      = errors.New("userName already taken")
	ErrDuplicateSerial    = errors.New("serialNumber already in use")
	ErrWeakPassword       = errors.New("the min length of password is 3 characters")
	ErrImageUpload        = errors.New("image upload failed")
)

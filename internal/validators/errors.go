package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrUsernameRequired = errors.New("please enter a username")
	ErrUsernameLength   = errors.New("username must be between 3 and 40 characters")
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailTooLong     = errors.New("email length cannot be more than 50 characters")
	ErrEmailFormat      = errors.New("email is not in the right format")
	ErrPasswordRequired = errors.New("password must be provided")
	ErrPasswordLength   = errors.New("password must be between 6 and 72 bytes")
	ErrSamePassword     = errors.New("new password must differ from the old one")
)

package validators

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-job-tracker/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldUsername checks presence and length of the username.
	FieldUsername = "username"

	// FieldEmail checks presence, length and format of the email.
	FieldEmail = "email"

	// FieldPassword checks presence and length of the password.
	FieldPassword = "password"

	// FieldEmailRequired checks only that the email is present.
	FieldEmailRequired = "email_required"

	// FieldPasswordRequired checks only that the password is present.
	FieldPasswordRequired = "password_required"

	// FieldNewPassword checks the new password of a change-password request
	// and that it differs from the old one.
	FieldNewPassword = "new_password"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 40
	maxEmailLength    = 50
	minPasswordLength = 6
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

var emailPattern = regexp.MustCompile(`^\w+([.+\-]?\w+)*@\w+([.\-]?\w+)*(\.\w{2,})+$`)

// UserValidator validates credential-related requests.
type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(ctx, value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegisterRequest(ctx context.Context, request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := validateUsername(request.Username); err != nil {
				return err
			}
		case FieldEmail:
			if err := validateEmail(request.Email); err != nil {
				return err
			}
		case FieldPassword:
			if err := validatePassword(request.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateLoginRequest(ctx context.Context, request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmailRequired, FieldPasswordRequired}
	}

	for _, f := range fields {
		switch f {
		case FieldEmailRequired:
			if strings.TrimSpace(request.Email) == "" {
				return ErrEmailRequired
			}
		case FieldPasswordRequired:
			if request.Password == "" {
				return ErrPasswordRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateChangePasswordRequest(ctx context.Context, request models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPasswordRequired, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldPasswordRequired:
			if request.OldPassword == "" {
				return ErrPasswordRequired
			}
		case FieldNewPassword:
			if err := validatePassword(request.NewPassword); err != nil {
				return err
			}
			if request.NewPassword == request.OldPassword {
				return ErrSamePassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return ErrUsernameLength
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if utf8.RuneCountInString(email) > maxEmailLength {
		return ErrEmailTooLong
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailFormat
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if utf8.RuneCountInString(password) < minPasswordLength || len(password) > maxPasswordBytes {
		return ErrPasswordLength
	}
	return nil
}

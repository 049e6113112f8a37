package services

import (
	"context"
	"strings"
	"unicode"

	"lana/internal/api"
	"lana/internal/core"
	"lana/internal/log"
)

// LoginInput is the login form: email OR phone, plus password.
type LoginInput struct {
	Email    string
	Phone    string
	Password string
}

// Login validates the form and exchanges the credentials for a token. The
// API client stores the token on success.
func (s *Service) Login(ctx context.Context, in LoginInput) error {
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)
	if (email == "" && phone == "") || in.Password == "" {
		return core.ErrMissingFields
	}
	if email != "" && !validEmail(email) {
		return core.ErrInvalidEmail
	}
	if phone != "" && !validPhone(phone) {
		return core.ErrInvalidPhone
	}

	_, err := s.backend.Login(ctx, api.Credentials{
		Email:    email,
		Phone:    phone,
		Password: in.Password,
	})
	return err
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name            string
	Lastname        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Register validates the form and creates the user. Registration does not
// log in; callers log in afterwards.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	name := strings.TrimSpace(in.Name)
	lastname := strings.TrimSpace(in.Lastname)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)

	if name == "" || lastname == "" || email == "" || phone == "" || in.Password == "" || in.ConfirmPassword == "" {
		return core.ErrMissingFields
	}
	if in.Password != in.ConfirmPassword {
		return core.ErrPasswordMismatch
	}
	if !validEmail(email) {
		return core.ErrInvalidEmail
	}
	if !validPhone(phone) {
		return core.ErrInvalidPhone
	}

	return s.backend.Register(ctx, api.Registration{
		Name:     name,
		Lastname: lastname,
		Email:    email,
		Phone:    phone,
		Password: in.Password,
	})
}

// Logout clears the stored session.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.backend.Logout(ctx); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Session cleared", log.FieldOperation, log.OpLogout)
	return nil
}

func validEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}

func validPhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' || r == ' ' || r == '-':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}

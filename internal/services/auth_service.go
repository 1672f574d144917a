package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"localcart/internal/domain"
	"localcart/internal/gateway"
	applog "localcart/internal/log"
	"localcart/internal/repos"
	"localcart/internal/validate"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
	ErrBadToken   = errors.New("invalid or expired token")
)

type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type AuthService struct {
	Users    *repos.UserRepo
	Docs     gateway.Gateway
	Settings *Settings
	Secret   []byte
	TTL      time.Duration
}

// SignUp registers the account and writes its users/{uid} document.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (string, error) {
	first, ok1 := validate.Required(in.FirstName)
	last, ok2 := validate.Required(in.LastName)
	if !ok1 || !ok2 || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return "", domain.Invalid("form", "please fill in all fields")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return "", domain.Invalid(domain.KeyEmail, "please enter a valid email address")
	}
	if !validate.Password(in.Password) {
		return "", domain.Invalid("password", "password must be at least 6 characters")
	}

	taken, err := s.Users.EmailTaken(email)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrWrite, err)
	}
	if taken {
		return "", ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	uid := uuid.NewString()
	if err := s.Users.Create(domain.Credential{UID: uid, Email: email, Hash: string(hash)}); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrWrite, err)
	}

	uctx := gateway.WithUID(ctx, uid)
	if err := s.Docs.MergeDocument(uctx, domain.UsersCollection, uid, gateway.Fields{
		domain.KeyFirstName: first,
		domain.KeyLastName:  last,
		domain.KeyEmail:     email,
	}); err != nil {
		applog.Error(nil, "auth.signup.fail", err, map[string]any{"user_id": uid, "orphaned_credential": true})
		return "", err
	}
	if s.Settings != nil {
		if err := s.Settings.SetUsername(first); err != nil {
			applog.Error(nil, "settings.username.fail", err, map[string]any{"user_id": uid})
		}
	}
	return uid, nil
}

// SignIn checks the password and issues a signed token. The display name is
// refreshed from the profile's first name, or reset to the default.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *domain.Credential, error) {
	u, err := s.Users.ByEmail(strings.TrimSpace(email))
	if err != nil {
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}
	token, err := s.Issue(u)
	if err != nil {
		return "", nil, err
	}

	if s.Settings != nil {
		name := DefaultUsername
		doc, err := s.Docs.GetDocument(gateway.WithUID(ctx, u.UID), domain.UsersCollection, u.UID)
		if err == nil {
			if first, ok := doc.Fields[domain.KeyFirstName].(string); ok && first != "" {
				name = first
			}
		}
		if err := s.Settings.SetUsername(name); err != nil {
			applog.Error(nil, "settings.username.fail", err, map[string]any{"user_id": u.UID})
		}
	}
	return token, u, nil
}

// Issue signs an HS256 token carrying user_id, email and exp.
func (s *AuthService) Issue(u *domain.Credential) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.UID,
		"email":   u.Email,
		"exp":     time.Now().Add(s.TTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// Verify returns the uid of a valid, unexpired token.
func (s *AuthService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrBadToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrBadToken
	}
	uid, _ := claims["user_id"].(string)
	if uid == "" {
		return "", ErrBadToken
	}
	return uid, nil
}

// SignOut only records the event; tokens expire on their own.
func (s *AuthService) SignOut(uid string) {
	applog.Audit(nil, "auth.logout", map[string]any{"user_id": uid})
}

// RequestPasswordReset accepts any address containing '@' and never reveals
// whether it is registered.
func (s *AuthService) RequestPasswordReset(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !validate.EmailLoose(email) {
		return domain.Invalid(domain.KeyEmail, "please enter a valid email address")
	}
	known, err := s.Users.EmailTaken(email)
	if err != nil {
		applog.Error(nil, "auth.reset.lookup.fail", err, nil)
	}
	applog.Security(nil, "auth.reset.request", map[string]any{"known": known})
	return nil
}

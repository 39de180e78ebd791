package web

import (
	"errors"
	"time"

	"dartserver/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
)

var (
	ErrNotAuthorized = errors.New("not authorized")
	ErrWrongPassword = errors.New("wrong scorer password")
)

const scorerSubject = "scorer"

// scorerAuth issues and checks the scorer session. Spectator pages are open;
// anything that mutates a match requires the session cookie.
type scorerAuth struct {
	cfg config.Auth
}

func (a scorerAuth) Login(password string) error {
	if password == "" || password != a.cfg.ScorerPassword {
		return ErrWrongPassword
	}
	return nil
}

func (a scorerAuth) GenerateJWTCookie(host string) (*fiber.Cookie, error) {
	expiresIn, err := time.ParseDuration(a.cfg.Expiration)
	if err != nil {
		return nil, err
	}
	expirationTime := time.Now().Add(expiresIn)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: expirationTime.Unix(),
		IssuedAt:  time.Now().Unix(),
		Subject:   scorerSubject,
	})
	tokenString, err := token.SignedString([]byte(a.cfg.Token))
	if err != nil {
		return nil, err
	}
	return &fiber.Cookie{
		Name:     "token",
		Value:    tokenString,
		Path:     "/",
		Domain:   host,
		Expires:  expirationTime,
		HTTPOnly: true,
	}, nil
}

func (a scorerAuth) Verify(cookie string) error {
	if cookie == "" {
		return ErrNotAuthorized
	}
	token, err := jwt.ParseWithClaims(cookie, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(a.cfg.Token), nil
	})
	if err != nil {
		ve := jwt.ValidationError{}
		if errors.As(err, &ve) && ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
			return errors.New("session expired")
		}
		return ErrNotAuthorized
	}
	if !token.Valid {
		return ErrNotAuthorized
	}
	claims, ok := token.Claims.(*jwt.StandardClaims)
	if !ok || claims.Subject != scorerSubject {
		return ErrNotAuthorized
	}
	return nil
}

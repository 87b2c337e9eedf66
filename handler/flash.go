package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	flashCookie = "flash"
	flashKey    = "flash"
)

// flashMiddleware exposes a valid flash cookie token under flashKey. A missing,
// expired or forged cookie is ignored.
func flashMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:             []byte(secret),
		TokenLookup:            "cookie:" + flashCookie,
		ContextKey:             flashKey,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

func setFlash(c echo.Context, secret, msg string) error {
	exp := time.Now().Add(time.Minute)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"msg": msg,
		"exp": exp.Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    signed,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// popFlash returns the pending flash message, if any, and clears the cookie.
func popFlash(c echo.Context) string {
	token, ok := c.Get(flashKey).(*jwt.Token)
	if !ok {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:    flashCookie,
		Value:   "",
		Path:    "/",
		Expires: time.Now().Add(-1 * time.Second),
		MaxAge:  -1,
	})
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	msg, _ := claims["msg"].(string)
	return msg
}

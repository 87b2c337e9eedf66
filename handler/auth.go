package handler

import (
	"crypto/subtle"
	"strings"

	"radioboard/config"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
)

// credentialValidator checks the configured pair. A password starting with
// "$2" is treated as a bcrypt hash.
func credentialValidator(auth config.AuthConfig) middleware.BasicAuthValidator {
	hashed := strings.HasPrefix(auth.Password, "$2")
	return func(username, password string, c echo.Context) (bool, error) {
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(auth.User)) == 1
		var passOK bool
		if hashed {
			passOK = bcrypt.CompareHashAndPassword([]byte(auth.Password), []byte(password)) == nil
		} else {
			passOK = subtle.ConstantTimeCompare([]byte(password), []byte(auth.Password)) == 1
		}
		return userOK && passOK, nil
	}
}

package models

import "github.com/golang-jwt/jwt/v5"

// Claims carries the login in the registered "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
}

func (c *Claims) Login() string {
	return c.Subject
}

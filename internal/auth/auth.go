// Package auth provides authentication and authorization support for the
// college backend. Tokens are signed with an RSA private key; claims carry
// the user id and role that every repository re-checks.
package auth

import (
	"crypto/rsa"
	"os"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// The closed set of roles the system knows about. The database enforces the
// same set with the user_role enum; Roles lists every member so dispatch
// sites can be checked against it.
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
	RoleParent  = "PARENT"
	RoleAlumni  = "ALUMNI"
)

// Roles is the full role set in one place.
var Roles = []string{RoleAdmin, RoleTeacher, RoleStudent, RoleParent, RoleAlumni}

// ValidRole reports whether role is a member of the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent, RoleAlumni:
		return true
	}
	return false
}

// ctxKey represents the type of value for the context key.
type ctxKey int

// Key is used to store/retrieve a Claims value from a context.Context.
const Key ctxKey = 1

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	UserId int    `json:"user_id"`
	Role   string `json:"role"`
}

// Authorized returns true if the claims role is in the given list. An empty
// list means any authenticated user is allowed.
func (c Claims) Authorized(roles ...string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// Auth is used to authenticate clients.
type Auth struct {
	privateKey *rsa.PrivateKey
}

// New loads the RSA private key used to sign and verify tokens.
func New(privateKeyFile string) (*Auth, error) {
	keyData, err := os.ReadFile(privateKeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading auth private key")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return nil, errors.Wrap(err, "parsing auth private key")
	}

	return &Auth{privateKey: privateKey}, nil
}

// ValidateToken recreates the Claims that were used to generate a token and
// verifies the signature.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return &a.privateKey.PublicKey, nil
	})
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}

	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	return claims, nil
}

// Package composer serves the Farcaster composer action: the metadata
// descriptor, the action endpoint that opens the authoring form, and the
// short-lived creator tokens that authorize frame creation from the form.
package composer

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "targetonchain/pkg/domain-errors"
)

const (
	tokenIssuer     = "targetonchain"
	creatorTokenTTL = 15 * time.Minute
)

// IssueCreatorToken signs a short-lived token naming the Farcaster creator.
// The authoring form sends it back when creating a frame.
func IssueCreatorToken(signingKey []byte, creator string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   creator,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(creatorTokenTTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "sign creator token")
	}
	return signed, nil
}

// ParseCreatorToken verifies the token signature and expiry and returns the
// creator it names. Any failure is an unauthorized domain error.
func ParseCreatorToken(signingKey []byte, raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return signingKey, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "creator token rejected")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "creator token has no subject")
	}
	return claims.Subject, nil
}

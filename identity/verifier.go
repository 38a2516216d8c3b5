// Package identity turns a bearer token into a verified email.
package identity

//go:generate mockgen -source=verifier.go -destination=mock_verifier.go -package=identity

import "context"

type Verifier interface {
	// Verify returns the email the token was issued for, or an error wrapping
	// utils.ErrUnauthorized.
	Verify(ctx context.Context, token string) (string, error)
}

package identity

import (
	"context"
	"encoding/base64"
	"fmt"

	"cityfix-be/utils"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier checks Firebase ID tokens with the Admin SDK.
type FirebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier accepts either a base64 encoded service-account JSON
// (FB_SERVICE_KEY) or a path to the credentials file.
func NewFirebaseVerifier(ctx context.Context, serviceKey, credentialsFile string) (*FirebaseVerifier, error) {
	var opt option.ClientOption
	switch {
	case serviceKey != "":
		raw, err := base64.StdEncoding.DecodeString(serviceKey)
		if err != nil {
			return nil, fmt.Errorf("decode FB_SERVICE_KEY: %w", err)
		}
		opt = option.WithCredentialsJSON(raw)
	case credentialsFile != "":
		opt = option.WithCredentialsFile(credentialsFile)
	default:
		return nil, fmt.Errorf("no firebase credentials configured")
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrUnauthorized, err)
	}
	email, _ := decoded.Claims["email"].(string)
	if email == "" {
		return "", fmt.Errorf("%w: token has no email", utils.ErrUnauthorized)
	}
	return email, nil
}

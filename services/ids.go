// Package services holds the business rules behind each route group. Handlers
// translate HTTP to these calls; repositories and external gateways are
// injected so the rules run unchanged against fakes.
package services

import (
	"errors"
	"fmt"

	"cityfix-be/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", utils.ErrInvalidID, hex)
	}
	return id, nil
}

// notFoundAs replaces a generic not-found with the resource specific one and
// passes every other error through.
func notFoundAs(err, specific error) error {
	if errors.Is(err, utils.ErrNotFound) {
		return specific
	}
	return err
}

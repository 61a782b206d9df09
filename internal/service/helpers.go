// Package service implements the write-side business rules: ownership,
// validation and toggles.
package service

import (
	"context"

	"videotube/internal/models"
)

// requireIDs validates (field, value) pairs in order.
func requireIDs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if !models.ValidID(pairs[i+1]) {
			return models.NewInvalidIDError(pairs[i], pairs[i+1])
		}
	}
	return nil
}

func mustExist(ctx context.Context, exists func(context.Context, string) (bool, error), resource, id string) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError(resource, id)
	}
	return nil
}

func requireOwner(ownerID, actorID, action string) error {
	if ownerID != actorID {
		return models.NewForbiddenError("You can only " + action)
	}
	return nil
}

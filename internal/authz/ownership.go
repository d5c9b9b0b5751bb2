// Package authz holds the single ownership gate every handler goes through.
// The rule is uniform: existence before ownership, ownership before any
// read or write. Re-implementing the check inline per route is what this
// package exists to prevent.
package authz

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// Owned is any resource that records exactly one owning user at creation.
type Owned interface {
	Owner() string
}

// Loader fetches a resource by id. pgx.ErrNoRows signals absence.
type Loader[T Owned] func(ctx context.Context, id string) (T, error)

// LoadOwned loads the resource and asserts the caller owns it.
//
// An unknown id reports not-found; a known id owned by someone else reports
// an ownership failure. The order is fixed so the two outcomes stay
// distinct, and no mutation may happen before both checks pass.
func LoadOwned[T Owned](ctx context.Context, load Loader[T], id, callerID string) (T, error) {
	var zero T

	resource, err := load(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, apperrors.NewNotFound("resource", map[string]any{"id": id})
		}
		return zero, apperrors.MapError(err)
	}

	if resource.Owner() != callerID {
		return zero, apperrors.NewForbidden("not authorized")
	}
	return resource, nil
}

package contracts

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// ClientDirectory resolves clients to their pricing group.
type ClientDirectory interface {
	// GroupForClient returns ok=false when the client is unknown, has no group,
	// or references a group that no longer exists.
	GroupForClient(ctx context.Context, clientID string) (*domain.ClientGroup, bool, error)

	// GetGroup returns domain.ErrGroupNotFound for unknown groups.
	GetGroup(ctx context.Context, groupID string) (*domain.ClientGroup, error)
}

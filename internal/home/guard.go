package home

import "context"

type ownerLookup interface {
	RealtorIDByHomeID(ctx context.Context, homeID uint) (uint, error)
}

// Guard checks that the acting user is the realtor who owns a home.
// Every call reads the current owner; nothing is cached.
type Guard struct {
	homes ownerLookup
}

func NewGuard(homes ownerLookup) *Guard {
	return &Guard{homes: homes}
}

// Authorize returns nil when userID owns homeID, ErrUnauthorized when it does
// not, and ErrNotFound when the home does not exist.
func (g *Guard) Authorize(ctx context.Context, homeID, userID uint) error {
	realtorID, err := g.homes.RealtorIDByHomeID(ctx, homeID)
	if err != nil {
		return err
	}
	if realtorID != userID {
		return ErrUnauthorized
	}
	return nil
}

package home

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("home not found")
	ErrUnauthorized    = errors.New("only the listing realtor can do this")
	ErrInvalidArgument = errors.New("invalid argument")
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

package memedit

import (
	"errors"
	"fmt"
)

// Recoverable operation errors. None of these invalidate the editor; the
// failing operation is a no-op and previously valid state is kept.
var (
	ErrNotFound           = errors.New("region not found")
	ErrOutOfRange         = errors.New("address out of range")
	ErrInvalidAddressText = errors.New("invalid address text")
	ErrInvalidValue       = errors.New("invalid value")
	ErrReadOnly           = errors.New("read-only store")
)

// ConfigError reports a malformed region configuration. The configure call
// that produced it leaves the previous configuration active.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("region config: %s", e.Reason)
}

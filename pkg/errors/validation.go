package errors

import (
	"net"
	"regexp"
	"strings"
	"unicode"
)

// maxNameLength bounds player and channel names. Names travel in every move
// frame, so they are kept short.
const maxNameLength = 64

// ValidatePlayerName validates the display name a peer attaches to its moves.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 64 characters
func ValidatePlayerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "player name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "player name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "player name contains invalid control characters")
		}
	}

	return nil
}

// channelNameRegex matches pub/sub channel names such as "tictac:moves".
var channelNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateChannelName validates a move channel name.
// Glob characters are rejected so a name never subscribes to a pattern.
func ValidateChannelName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "channel name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "channel name too long (max %d characters)", maxNameLength)
	}

	if !channelNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid channel name: %q", name)
	}

	return nil
}

// ValidateAddr validates a host:port listen or dial address.
// The host may be empty (":8080") but the port may not.
func ValidateAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfig, "address cannot be empty")
	}

	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "invalid address %q", addr)
	}
	if port == "" {
		return New(ErrCodeInvalidConfig, "address %q has no port", addr)
	}

	return nil
}

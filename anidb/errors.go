package anidb

import (
	"errors"
	"fmt"

	"github.com/Ennea/shisho/anidb/protocol"
)

// Error types for the AniDB UDP client.
//
// The distinction that matters to callers is between per-file failures
// (timeouts, "no such file", server busy) and conditions that leave the
// session or socket state machine unusable. IsFatal captures the latter
// group; everything else is isolated to the lookup that produced it.

var (
	// ErrNoCredentials means no login info is stored. Nothing can be
	// sent without it.
	ErrNoCredentials = errors.New("anidb: no login info stored")

	// ErrLoginFailed covers rejected credentials and unrecognized AUTH
	// replies.
	ErrLoginFailed = errors.New("anidb: login failed")

	// ErrClientOutdated means the server rejected this client version.
	ErrClientOutdated = errors.New("anidb: login failed, client outdated or banned")

	// ErrAccessDenied is the server's 505 reply: illegal input or
	// access denied.
	ErrAccessDenied = errors.New("anidb: illegal input or access denied")

	// ErrBanned means the server banned this client. Continuing to send
	// only makes the ban worse.
	ErrBanned = errors.New("anidb: banned")

	// ErrUnknownCommand is the server's 598 reply.
	ErrUnknownCommand = errors.New("anidb: unknown command")

	// ErrServerError is the server's generic 600 reply.
	ErrServerError = errors.New("anidb: server error")

	// ErrServerBusy covers the busy/out-of-service/timeout replies
	// (601, 602, 604).
	ErrServerBusy = errors.New("anidb: server busy")

	// ErrTimeout means no reply arrived within the receive timeout. The
	// datagram (or its reply) was likely dropped; the request is not
	// retried.
	ErrTimeout = errors.New("anidb: no response from server")

	// ErrNoSuchFile means the server does not know the file.
	ErrNoSuchFile = errors.New("anidb: no such file")

	// ErrMultipleFiles means the lookup matched more than one file and
	// cannot be resolved automatically.
	ErrMultipleFiles = errors.New("anidb: multiple files found")

	// ErrMalformedReply means a FILE payload did not have the expected
	// field count.
	ErrMalformedReply = errors.New("anidb: malformed FILE payload")
)

// StateError reports a violation of the socket state machine contract:
// sending while a reply is outstanding, or receiving when nothing was
// sent. It always indicates a bug in this program, never a server
// condition, so it is excluded from any retry-or-skip handling.
type StateError struct {
	Op    string
	State socketState
}

func (e *StateError) Error() string {
	return fmt.Sprintf("anidb: %s while socket is %s", e.Op, e.State)
}

// IsFatal reports whether err must terminate the whole run instead of
// just failing the current file. Fatal conditions leave the session or
// the state machine in a state where further requests are pointless or
// harmful.
func IsFatal(err error) bool {
	var stateErr *StateError
	if errors.As(err, &stateErr) {
		return true
	}
	for _, fatal := range []error{
		ErrNoCredentials,
		ErrLoginFailed,
		ErrClientOutdated,
		ErrAccessDenied,
		ErrBanned,
		ErrMalformedReply,
		protocol.ErrInvalidResponse,
	} {
		if errors.Is(err, fatal) {
			return true
		}
	}
	return false
}

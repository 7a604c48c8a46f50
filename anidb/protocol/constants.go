package protocol

// AniDB UDP API status codes used by this client.
const (
	// AUTH
	StatusLoginAccepted           = 200
	StatusLoginAcceptedNewVersion = 201
	StatusLoginFailed             = 500
	StatusClientVersionOutdated   = 503
	StatusClientBanned            = 504

	// LOGOUT
	StatusLoggedOut = 203

	// FILE
	StatusFile          = 220
	StatusNoSuchFile    = 320
	StatusMultipleFiles = 322

	// Generic errors, possible on any command.
	StatusIllegalInput  = 505
	StatusBanned        = 555
	StatusUnknownCmd    = 598
	StatusInternalError = 600
	StatusOutOfService  = 601
	StatusServerBusy    = 602
	StatusTimeoutDelay  = 604
)

// MaxDatagramSize is the largest reply the server will send. AniDB caps
// untruncated UDP replies at 1400 bytes.
const MaxDatagramSize = 1400

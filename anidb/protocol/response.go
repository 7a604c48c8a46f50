package protocol

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidResponse marks a datagram that does not follow the reply
// format. The protocol state after such a reply is unknown, so callers
// must treat it as unrecoverable rather than retry.
var ErrInvalidResponse = errors.New("anidb: invalid response")

// Response is a parsed AniDB UDP reply.
type Response struct {
	Code  int      // three-digit status code from the first line
	Data  string   // remainder of the first line after the code
	Lines []string // payload lines after the status line, kept verbatim
}

// DecodeResponse parses a raw reply datagram. The first line must be
// "<code> <text>" with an integer code; any following lines are payload
// whose layout depends on the command that was sent.
func DecodeResponse(raw []byte) (*Response, error) {
	if !utf8.Valid(raw) {
		slog.Error("anidb: response is not valid UTF-8")
		return nil, ErrInvalidResponse
	}

	text := strings.TrimRight(string(raw), " \t\r\n")
	lines := strings.Split(text, "\n")

	codeText, data, found := strings.Cut(lines[0], " ")
	if !found {
		slog.Error("anidb: status line has no text after the code", "line", lines[0])
		return nil, ErrInvalidResponse
	}
	code, err := strconv.Atoi(codeText)
	if err != nil {
		slog.Error("anidb: status line does not start with a numeric code", "line", lines[0])
		return nil, ErrInvalidResponse
	}

	return &Response{
		Code:  code,
		Data:  strings.TrimRight(data, " \t\r"),
		Lines: lines[1:],
	}, nil
}

package anidb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/Ennea/shisho/anidb/protocol"
)

// socketState tracks whether a reply is outstanding. A new send is only
// permitted from idle; every dispatched (or timed out) reply returns the
// socket to idle unconditionally.
type socketState int

const (
	stateIdle socketState = iota
	stateAwaitingResponse
)

func (s socketState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAwaitingResponse:
		return "awaiting a response"
	}
	return "unknown"
}

// Config holds configuration for the client. The zero value uses the
// production endpoint and the pacing the server mandates.
type Config struct {
	// ServerAddr is the remote UDP endpoint.
	ServerAddr string

	// LocalAddr is the local bind address. AniDB associates sessions
	// with the source port, so it is fixed rather than ephemeral.
	LocalAddr string

	// ReceiveTimeout bounds the wait for a reply datagram.
	ReceiveTimeout time.Duration

	// SendInterval is the minimum delay between two outgoing datagrams.
	SendInterval time.Duration

	// Breaker guards FILE exchanges. If nil, a default breaker is used.
	Breaker *gobreaker.CircuitBreaker[*FileMetadata]

	// Logger receives protocol-level log records. If nil, slog.Default
	// is used.
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.ServerAddr == "" {
		c.ServerAddr = DefaultServerAddr
	}
	if c.LocalAddr == "" {
		c.LocalAddr = DefaultLocalAddr
	}
	if c.ReceiveTimeout == 0 {
		c.ReceiveTimeout = DefaultReceiveTimeout
	}
	if c.SendInterval == 0 {
		c.SendInterval = DefaultSendInterval
	}
	if c.Breaker == nil {
		c.Breaker = newCircuitBreaker()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

type handlerFunc func(*protocol.Response) (*FileMetadata, error)

// Client is a stateful AniDB UDP API client. It owns the datagram socket
// and the store, authenticates on first use, paces every send, and
// resolves one request at a time: the server supports no pipelining from
// a single client identity, and violating that invites a ban.
//
// Client is not safe for concurrent use. All methods must be called from
// one goroutine.
type Client struct {
	conn    net.PacketConn
	remote  net.Addr
	store   Store
	log     *slog.Logger
	pace    *pacer
	breaker *gobreaker.CircuitBreaker[*FileMetadata]
	timeout time.Duration

	state    socketState
	pending  string // command name awaiting its reply
	session  string
	handlers map[string]handlerFunc

	closed bool
}

// NewClient binds the local socket and takes ownership of the store.
// Close releases both.
func NewClient(store Store, config Config) (*Client, error) {
	config = config.withDefaults()

	conn, err := net.ListenPacket("udp", config.LocalAddr)
	if err != nil {
		return nil, fmt.Errorf("anidb: bind %s: %w", config.LocalAddr, err)
	}
	remote, err := net.ResolveUDPAddr("udp", config.ServerAddr)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("anidb: resolve %s: %w", config.ServerAddr, err)
	}

	c := &Client{
		conn:    conn,
		remote:  remote,
		store:   store,
		log:     config.Logger,
		pace:    newPacer(config.SendInterval),
		breaker: config.Breaker,
		timeout: config.ReceiveTimeout,
		state:   stateIdle,
	}
	c.handlers = map[string]handlerFunc{
		CmdAuth:   c.handleAuth,
		CmdLogout: c.handleLogout,
		CmdFile:   c.handleFile,
	}
	return c, nil
}

// Lookup returns the metadata for a file identified by its size and ed2k
// hash. A cached entry is returned without any network activity; on a
// miss the server is queried and a successful result is persisted before
// it is returned.
func (c *Client) Lookup(ctx context.Context, size int64, hash string) (*FileMetadata, error) {
	meta, found, err := c.store.File(hash)
	if err != nil {
		return nil, fmt.Errorf("anidb: read cache: %w", err)
	}
	if found {
		c.log.Debug("cache hit", "ed2k", hash)
		return &meta, nil
	}

	tags := protocol.Tags{}
	tags.Add("size", strconv.FormatInt(size, 10))
	tags.Add("ed2k", hash)
	tags.Add("fmask", fileMask)
	tags.Add("amask", animeMask)

	result, err := c.breaker.Execute(func() (*FileMetadata, error) {
		return c.exchange(ctx, CmdFile, tags)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.log.Warn("lookups suspended after repeated server trouble")
			return nil, fmt.Errorf("anidb: lookups suspended: %w", err)
		}
		return nil, err
	}

	if err := c.store.PutFile(hash, *result); err != nil {
		return nil, fmt.Errorf("anidb: write cache: %w", err)
	}
	return result, nil
}

// Logout ends the session, accepting anything as the outcome: teardown
// is best-effort and must not prevent a clean shutdown.
func (c *Client) Logout(ctx context.Context) error {
	if c.session == "" {
		return nil
	}
	_, err := c.exchange(ctx, CmdLogout, nil)
	c.session = ""
	return err
}

// Close tears the client down: best-effort logout when a session is
// held, then the socket and the store. Idempotent, so it can sit on
// every exit path including interrupted batches.
func (c *Client) Close(ctx context.Context) error {
	if c.closed {
		return nil
	}
	c.closed = true

	if c.session != "" && c.state == stateIdle {
		if err := c.Logout(ctx); err != nil && !errors.Is(err, ErrTimeout) {
			c.log.Error("logout failed", "error", err)
		}
	}

	err := c.conn.Close()
	if storeErr := c.store.Close(); err == nil {
		err = storeErr
	}
	return err
}

// exchange runs one full request/response cycle.
func (c *Client) exchange(ctx context.Context, command string, tags protocol.Tags) (*FileMetadata, error) {
	if err := c.send(ctx, command, tags); err != nil {
		return nil, err
	}
	return c.receive()
}

// send transmits one command datagram. Contract: the socket must be
// idle; a send while a reply is outstanding is a bug, reported as a
// StateError and never retried. For every command except AUTH a session
// is established first if none is held, and the session tag is injected.
func (c *Client) send(ctx context.Context, command string, tags protocol.Tags) error {
	if c.state != stateIdle {
		return &StateError{Op: "sending " + command, State: c.state}
	}
	if command != CmdAuth && c.session == "" {
		if err := c.ensureSession(ctx); err != nil {
			return err
		}
	}

	if err := c.pace.Wait(ctx); err != nil {
		return err
	}

	if command != CmdAuth {
		tags = tags.Clone()
		tags.Add("s", c.session)
	}

	c.log.Debug("sending command", "command", command)
	if _, err := c.conn.WriteTo(protocol.EncodeRequest(command, tags), c.remote); err != nil {
		return fmt.Errorf("anidb: send %s: %w", command, err)
	}
	c.pace.Mark()
	c.state = stateAwaitingResponse
	c.pending = command
	return nil
}

// receive waits for the reply to the outstanding command and dispatches
// it to that command's handler. Contract: only valid while a reply is
// outstanding. The socket returns to idle unconditionally, whatever the
// outcome, so a timeout never wedges the state machine.
func (c *Client) receive() (result *FileMetadata, err error) {
	if c.state != stateAwaitingResponse || c.pending == "" {
		return nil, &StateError{Op: "receiving", State: c.state}
	}
	command := c.pending
	defer func() {
		c.state = stateIdle
		c.pending = ""
	}()

	buf := make([]byte, protocol.MaxDatagramSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("anidb: set read deadline: %w", err)
	}
	n, _, err := c.conn.ReadFrom(buf)
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			c.log.Warn("no reply from server", "command", command)
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("anidb: receive: %w", err)
	}

	resp, err := protocol.DecodeResponse(buf[:n])
	if err != nil {
		return nil, err
	}
	c.log.Debug("got response", "code", resp.Code)

	handle, ok := c.handlers[command]
	if !ok {
		return nil, fmt.Errorf("anidb: no handler for command %s", command)
	}
	return handle(resp)
}

// handleGenericError checks the status codes that can occur on any
// command. A non-nil return means the reply was consumed as a failure.
func (c *Client) handleGenericError(resp *protocol.Response) error {
	switch resp.Code {
	case protocol.StatusIllegalInput:
		c.log.Error("api: illegal input or access denied")
		return ErrAccessDenied
	case protocol.StatusBanned:
		c.log.Error("api: banned", "detail", resp.Data)
		return ErrBanned
	case protocol.StatusUnknownCmd:
		c.log.Error("api: unknown command")
		return ErrUnknownCommand
	case protocol.StatusInternalError:
		c.log.Error("api error")
		return ErrServerError
	case protocol.StatusOutOfService, protocol.StatusServerBusy, protocol.StatusTimeoutDelay:
		c.log.Error("api busy")
		return ErrServerBusy
	}
	return nil
}

func (c *Client) handleAuth(resp *protocol.Response) (*FileMetadata, error) {
	if err := c.handleGenericError(resp); err != nil {
		return nil, err
	}

	switch resp.Code {
	case protocol.StatusLoginAccepted, protocol.StatusLoginAcceptedNewVersion:
		session, _, _ := strings.Cut(resp.Data, " ")
		if session == "" {
			return nil, fmt.Errorf("%w: reply carries no session id", ErrLoginFailed)
		}
		c.session = session
		c.log.Info("logged into the api")
		return nil, nil
	case protocol.StatusLoginFailed:
		return nil, ErrLoginFailed
	case protocol.StatusClientVersionOutdated, protocol.StatusClientBanned:
		return nil, ErrClientOutdated
	default:
		c.log.Error("api: unrecognized AUTH response", "code", resp.Code, "data", resp.Data)
		return nil, ErrLoginFailed
	}
}

func (c *Client) handleLogout(resp *protocol.Response) (*FileMetadata, error) {
	if err := c.handleGenericError(resp); err != nil {
		return nil, err
	}

	if resp.Code == protocol.StatusLoggedOut {
		c.log.Info("logged out")
	} else {
		c.log.Error("api: error logging out", "code", resp.Code, "data", resp.Data)
	}
	return nil, nil
}

func (c *Client) handleFile(resp *protocol.Response) (*FileMetadata, error) {
	if err := c.handleGenericError(resp); err != nil {
		return nil, err
	}

	switch resp.Code {
	case protocol.StatusFile:
		if len(resp.Lines) == 0 {
			return nil, fmt.Errorf("%w: no payload line", ErrMalformedReply)
		}
		// First column is the file id, which this client has no use for.
		fields := strings.SplitN(resp.Lines[0], "|", 5)
		if len(fields) < 5 {
			return nil, fmt.Errorf("%w: %d fields", ErrMalformedReply, len(fields))
		}
		return &FileMetadata{
			AnimeName:     fields[1],
			EpisodeNumber: fields[2],
			EpisodeName:   fields[3],
			GroupName:     fields[4],
		}, nil
	case protocol.StatusNoSuchFile:
		return nil, ErrNoSuchFile
	case protocol.StatusMultipleFiles:
		return nil, ErrMultipleFiles
	default:
		c.log.Error("api: unrecognized FILE response", "code", resp.Code, "data", resp.Data)
		return nil, fmt.Errorf("anidb: unexpected FILE response %d", resp.Code)
	}
}

package anidb

import (
	"context"
	"fmt"

	"github.com/Ennea/shisho/anidb/protocol"
)

// ensureSession authenticates if no session is held. Sessions live for
// one process invocation only; they are never persisted.
func (c *Client) ensureSession(ctx context.Context) error {
	if c.session != "" {
		return nil
	}

	creds, ok, err := c.store.Credentials()
	if err != nil {
		return fmt.Errorf("anidb: read login info: %w", err)
	}
	if !ok {
		return ErrNoCredentials
	}

	c.log.Info("logging into the api")

	// AUTH precedes session existence, so no session tag is injected.
	tags := protocol.Tags{}
	tags.Add("user", creds.User)
	tags.Add("pass", creds.Pass)
	tags.Add("protover", protocolVersion)
	tags.Add("client", clientName)
	tags.Add("clientver", clientVersion)
	tags.Add("enc", "UTF-8")

	if err := c.send(ctx, CmdAuth, tags); err != nil {
		return err
	}
	if _, err := c.receive(); err != nil {
		return err
	}
	if c.session == "" {
		return ErrLoginFailed
	}
	return nil
}

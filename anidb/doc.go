// Package anidb implements a client for the AniDB UDP API, covering the
// three commands the rename tool needs: AUTH, LOGOUT and FILE.
//
// The API runs over a connectionless transport with no reliability and
// strict usage rules: one outstanding request at a time, a minimum delay
// between datagrams, and session authentication before anything but
// AUTH. The client models this as a small socket state machine, paces
// every send, and memoizes successful lookups in a persistent store so a
// repeat lookup for identical content never touches the network.
//
// Requests and replies use a compact line-based text format; the wire
// codec lives in the protocol subpackage.
package anidb

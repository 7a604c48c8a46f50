package anidb

import "time"

// Command names for the protocol operations this client implements.
const (
	CmdAuth   = "AUTH"
	CmdLogout = "LOGOUT"
	CmdFile   = "FILE"
)

// Registered client identity, sent with every AUTH.
const (
	protocolVersion = "3"
	clientName      = "anidbrenamepy"
	clientVersion   = "2"
)

// Bitmasks selecting which fields a FILE reply carries. The amask picks
// anime name, episode number, episode name and group name; the fmask
// requests no file-level fields.
const (
	fileMask  = "0000000000"
	animeMask = "0080C040"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultServerAddr     = "api.anidb.net:9000"
	DefaultLocalAddr      = ":9999"
	DefaultReceiveTimeout = 10 * time.Second
	DefaultSendInterval   = 3 * time.Second
)

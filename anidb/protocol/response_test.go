package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantCode  int
		wantData  string
		wantLines []string
	}{
		{
			name:     "auth accepted",
			raw:      "200 abc123 LOGIN ACCEPTED",
			wantCode: 200,
			wantData: "abc123 LOGIN ACCEPTED",
		},
		{
			name:     "no such file",
			raw:      "320 NO SUCH FILE",
			wantCode: 320,
			wantData: "NO SUCH FILE",
		},
		{
			name:     "banned",
			raw:      "555 BANNED",
			wantCode: 555,
			wantData: "BANNED",
		},
		{
			name:      "file payload line",
			raw:       "220 FILE\n123|AnimeX|01|EpName|GroupY",
			wantCode:  220,
			wantData:  "FILE",
			wantLines: []string{"123|AnimeX|01|EpName|GroupY"},
		},
		{
			name:      "multiple payload lines",
			raw:       "220 FILE\nfirst\nsecond",
			wantCode:  220,
			wantData:  "FILE",
			wantLines: []string{"first", "second"},
		},
		{
			name:     "trailing whitespace is stripped",
			raw:      "203 LOGGED OUT \r\n",
			wantCode: 203,
			wantData: "LOGGED OUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := DecodeResponse([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantData, resp.Data)
			if tt.wantLines == nil {
				assert.Empty(t, resp.Lines)
			} else {
				assert.Equal(t, tt.wantLines, resp.Lines)
			}
		})
	}
}

func TestDecodeResponseInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{name: "no numeric code", raw: []byte("NOTACODE hello")},
		{name: "code without text", raw: []byte("300")},
		{name: "empty datagram", raw: []byte("")},
		{name: "invalid utf-8", raw: []byte{0x32, 0x30, 0x30, 0x20, 0xff, 0xfe}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := DecodeResponse(tt.raw)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}

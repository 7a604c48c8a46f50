package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeRequest(t *testing.T) {
	tests := []struct {
		name    string
		command string
		tags    Tags
		want    string
	}{
		{
			name:    "bare command",
			command: "PING",
			tags:    nil,
			want:    "PING\n",
		},
		{
			name:    "empty tag set",
			command: "PING",
			tags:    Tags{},
			want:    "PING\n",
		},
		{
			name:    "single tag",
			command: "LOGOUT",
			tags:    Tags{{Key: "s", Value: "abc123"}},
			want:    "LOGOUT s=abc123\n",
		},
		{
			name:    "tags keep insertion order",
			command: "FILE",
			tags: Tags{
				{Key: "size", Value: "774"},
				{Key: "ed2k", Value: "abcdef"},
				{Key: "fmask", Value: "0000000000"},
				{Key: "amask", Value: "0080C040"},
			},
			want: "FILE size=774&ed2k=abcdef&fmask=0000000000&amask=0080C040\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(EncodeRequest(tt.command, tt.tags)))
		})
	}
}

func TestTagsAddReplaces(t *testing.T) {
	tags := Tags{}
	tags.Add("user", "a")
	tags.Add("pass", "b")
	tags.Add("user", "c")

	assert.Equal(t, "FOO user=c&pass=b\n", string(EncodeRequest("FOO", tags)))

	value, found := tags.Get("user")
	assert.True(t, found)
	assert.Equal(t, "c", value)

	_, found = tags.Get("missing")
	assert.False(t, found)
}

func TestTagsCloneIsIndependent(t *testing.T) {
	original := Tags{{Key: "a", Value: "1"}}
	clone := original.Clone()
	clone.Add("b", "2")
	clone.Add("a", "changed")

	assert.Len(t, original, 1)
	assert.Equal(t, "1", original[0].Value)
}

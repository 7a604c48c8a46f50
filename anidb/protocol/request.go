package protocol

import "bytes"

// Tag is a single key=value pair of a request line.
type Tag struct {
	Key   string
	Value string
}

// Tags is an ordered set of request tags. Order is preserved on the wire,
// which keeps outgoing requests deterministic and easy to correlate with
// logs.
type Tags []Tag

// Add sets a tag value, updating an existing tag or appending a new one.
func (t *Tags) Add(key, value string) {
	for i := range *t {
		if (*t)[i].Key == key {
			(*t)[i].Value = value
			return
		}
	}
	*t = append(*t, Tag{Key: key, Value: value})
}

// Get returns a tag value and whether it is present.
func (t Tags) Get(key string) (string, bool) {
	for _, tag := range t {
		if tag.Key == key {
			return tag.Value, true
		}
	}
	return "", false
}

// Clone returns a copy that can be modified without affecting the original.
func (t Tags) Clone() Tags {
	return append(Tags(nil), t...)
}

// EncodeRequest serializes a command and its tags into the AniDB UDP
// request format: a single newline-terminated line of the form
//
//	COMMAND key1=val1&key2=val2
//
// The protocol has no escaping; keys and values must not contain '&', '='
// or newlines.
func EncodeRequest(command string, tags Tags) []byte {
	var buf bytes.Buffer
	buf.WriteString(command)
	for i, tag := range tags {
		if i == 0 {
			buf.WriteByte(' ')
		} else {
			buf.WriteByte('&')
		}
		buf.WriteString(tag.Key)
		buf.WriteByte('=')
		buf.WriteString(tag.Value)
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

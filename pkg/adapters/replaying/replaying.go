// Package replaying provides decorators that serve recorded interactions
// from a *cassette.Replayer instead of calling out to the real world. Each
// adapter can also be constructed "unconfigured" (no replayer), in which
// case every method panics the moment it is called; this matches the rule
// that touching a port absent from a loaded cassette is a programming
// error, not a recoverable one.
package replaying

import (
	"encoding/json"
	"fmt"

	"github.com/ozten/speck/pkg/cassette"
)

// nextOutput fetches the next recorded output for (port, method) from
// replayer, panicking if the adapter is unconfigured.
func nextOutput(replayer *cassette.Replayer, port, method string) json.RawMessage {
	if replayer == nil {
		panic(fmt.Sprintf("no cassette configured for port %q", port))
	}
	return replayer.NextInteraction(port, method).Output
}

// decodeBare unmarshals an infallible output directly into dst.
func decodeBare(output json.RawMessage, dst any) {
	if err := json.Unmarshal(output, dst); err != nil {
		panic("replaying: failed to deserialize output from cassette: " + err.Error())
	}
}

// decodeResult unmarshals a fallible output's Ok/Err envelope into dst,
// returning the decoded Err branch as a Go error when present.
func decodeResult(output json.RawMessage, dst any) error {
	return cassette.DecodeResult(output, dst)
}

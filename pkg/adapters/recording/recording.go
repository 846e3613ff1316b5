// Package recording provides decorators that wrap a live port
// implementation and capture every call as an interaction on a
// *cassette.Recorder before returning the live result unchanged.
package recording

import (
	"encoding/json"

	"github.com/ozten/speck/pkg/cassette"
)

// recordInteraction records an infallible call's input/output pair
// verbatim, mirroring replaying's nextOutput in reverse.
func recordInteraction(recorder *cassette.Recorder, port, method string, input, output any) {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		panic("recording: failed to serialize input: " + err.Error())
	}
	outputJSON, err := cassette.EncodeValue(output)
	if err != nil {
		panic("recording: failed to serialize output: " + err.Error())
	}
	recorder.Record(port, method, inputJSON, outputJSON)
}

// recordResult records a fallible call using the Ok/Err envelope
// convention, mirroring DecodeResult in reverse.
func recordResult(recorder *cassette.Recorder, port, method string, input, value any, callErr error) {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		panic("recording: failed to serialize input: " + err.Error())
	}
	outputJSON, err := cassette.EncodeResult(value, callErr)
	if err != nil {
		panic("recording: failed to serialize output: " + err.Error())
	}
	recorder.Record(port, method, inputJSON, outputJSON)
}

// Copyright (c) 2015-2024 Marin Atanasov Nikolov <dnaeon@gmail.com>
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer
//    in this position and unchanged.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
//
// THIS SOFTWARE IS PROVIDED BY THE AUTHOR(S) ``AS IS'' AND ANY EXPRESS OR
// IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES
// OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE DISCLAIMED.
// IN NO EVENT SHALL THE AUTHOR(S) BE LIABLE FOR ANY DIRECT, INDIRECT,
// INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT
// NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
// DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
// THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
// (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF
// THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

// Package cassette implements the durable transcript format shared by the
// recorder and the replayer: an ordered sequence of port/method
// interactions, serialized as YAML.
package cassette

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrInteractionNotFound indicates that a requested interaction was not
	// found in the cassette.
	ErrInteractionNotFound = errors.New("requested interaction not found")

	// ErrCassetteNotFound indicates that a requested cassette file doesn't exist.
	ErrCassetteNotFound = errors.New("requested cassette not found")
)

// Interaction is a single recorded port call and its result.
//
// Input is diagnostic only and is never matched against at replay time;
// correctness depends on the caller issuing calls in the same relative
// order it did when recording, not on input equality.
type Interaction struct {
	// Seq is assigned by the recorder at record time and is unique and
	// densely contiguous within a cassette.
	Seq uint64 `yaml:"seq"`

	// Port is the short stable identifier of the boundary, e.g. "fs".
	Port string `yaml:"port"`

	// Method is the short stable identifier of the operation on that port.
	Method string `yaml:"method"`

	// Input captures the call's logical arguments, for diagnostics only.
	Input json.RawMessage `yaml:"input"`

	// Output encodes the logical result, using the Ok/Err envelope for
	// fallible operations (see EncodeResult / DecodeResult).
	Output json.RawMessage `yaml:"output"`
}

// Cassette is a durable, immutable transcript of recorded interactions.
type Cassette struct {
	// Name is a human label for the cassette.
	Name string `yaml:"name"`

	// RecordedAt is the UTC instant the cassette was written.
	RecordedAt time.Time `yaml:"recorded_at"`

	// Commit tags the source tree state the recording was made against.
	// "unknown" is permitted when the commit could not be determined.
	Commit string `yaml:"commit"`

	// SourceSession cross-references the recording session a per-port
	// split cassette was extracted from. Empty for monolithic cassettes.
	SourceSession string `yaml:"source_session,omitempty"`

	// Interactions is ordered by Seq.
	Interactions []Interaction `yaml:"interactions"`
}

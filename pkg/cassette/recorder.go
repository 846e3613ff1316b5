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

package cassette

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Recorder is an append-only collector of interactions, for one port or,
// in a monolithic cassette, for several.
// It is safe for concurrent use; the critical section of Record is a
// single slice append.
type Recorder struct {
	mu sync.Mutex

	path    string
	name    string
	commit  string
	nextSeq uint64

	interactions []Interaction
}

// NewRecorder creates a recorder that will write to path on Finish.
func NewRecorder(path, name, commit string) *Recorder {
	return &Recorder{
		path:   path,
		name:   name,
		commit: commit,
	}
}

// Record appends a new interaction with the next sequence number. input and
// output must already be valid JSON (typically produced by EncodeResult or
// EncodeValue).
func (r *Recorder) Record(port, method string, input, output json.RawMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.interactions = append(r.interactions, Interaction{
		Seq:    r.nextSeq,
		Port:   port,
		Method: method,
		Input:  input,
		Output: output,
	})
	r.nextSeq++
}

// Finish builds a cassette from the recorder's accumulated state, writes it
// to the recorder's path (creating parent directories as needed), and
// returns the path written to. The recorder must not be used after Finish.
func (r *Recorder) Finish() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := Cassette{
		Name:         r.name,
		RecordedAt:   time.Now().UTC(),
		Commit:       r.commit,
		Interactions: r.interactions,
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cassette directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(&c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cassette: %w", err)
	}

	f, err := os.Create(r.path)
	if err != nil {
		return "", fmt.Errorf("failed to create cassette file %s: %w", r.path, err)
	}
	defer f.Close()

	if _, err := f.Write([]byte("---\n")); err != nil {
		return "", fmt.Errorf("failed to write cassette file %s: %w", r.path, err)
	}
	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("failed to write cassette file %s: %w", r.path, err)
	}

	return r.path, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/ozten/speck/pkg/servicecontext"
)

// newServiceContext builds a live service context rooted at root, or a
// recording one when SPECK_RECORD or SPECK_REC asks for it. The returned
// cleanup func must run after the context's last use; in recording mode it
// flushes the cassette session and reports its directory on stderr.
func newServiceContext(root string) (*servicecontext.ServiceContext, func(), error) {
	if !recordingRequested() {
		return servicecontext.Live(root), func() {}, nil
	}

	ctx, session, err := servicecontext.Recording(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start recording session: %w", err)
	}

	cleanup := func() {
		servicecontext.ReleaseRecording(session)
		dir, err := session.Finish()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to finish recording session: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "Recorded cassette session to %s\n", dir)
	}
	return ctx, cleanup, nil
}

// recordingRequested reports whether SPECK_RECORD or SPECK_REC asks for a
// recording session this invocation.
func recordingRequested() bool {
	if os.Getenv("SPECK_RECORD") != "" {
		return true
	}
	return os.Getenv("SPECK_REC") == "true"
}

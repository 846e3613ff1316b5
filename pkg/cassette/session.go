package cassette

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// PortNames enumerates the seven ports a recording session fans out to, in
// the order their cassette files are listed in the external interface spec.
var PortNames = []string{"clock", "fs", "git", "id_gen", "issues", "llm", "shell"}

const sessionTimestampLayout = "2006-01-02T15-04-05"

// portRecorder pairs a Recorder with a reference count tracking how many
// recording adapters currently hold a handle to it. Go has no equivalent of
// Rust's Arc::try_unwrap, so Session.Finish refuses to flush a port whose
// count is nonzero instead of relying on compile-time unique ownership.
type portRecorder struct {
	recorder *Recorder
	refs     int32
}

// Session is a fan-out structure holding one independently-locked recorder
// per port, all writing into a single timestamped output directory. It is
// created once at service-context construction and flushed exactly once by
// Finish.
type Session struct {
	mu        sync.Mutex
	outputDir string
	ports     map[string]*portRecorder
}

// NewSession creates the session's output directory at
// <cwd>/.speck/cassettes/<UTC-timestamp>/ and a recorder for every port
// named in PortNames. It fails if that directory already exists, to avoid
// clobbering a prior session captured within the same second.
func NewSession(cwd string) (*Session, error) {
	timestamp := time.Now().UTC().Format(sessionTimestampLayout)
	outputDir := filepath.Join(cwd, ".speck", "cassettes", timestamp)

	if _, err := os.Stat(outputDir); err == nil {
		return nil, fmt.Errorf("cassette directory already exists: %s", outputDir)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cassette directory %s: %w", outputDir, err)
	}

	commit, err := currentCommit(cwd)
	if err != nil {
		logrus.Warn("Could not get git commit hash, using \"unknown\"")
		commit = "unknown"
	}

	s := &Session{
		outputDir: outputDir,
		ports:     make(map[string]*portRecorder, len(PortNames)),
	}
	for _, port := range PortNames {
		path := filepath.Join(outputDir, port+".cassette.yaml")
		name := fmt.Sprintf("%s-%s", timestamp, port)
		s.ports[port] = &portRecorder{recorder: NewRecorder(path, name, commit)}
	}

	return s, nil
}

func currentCommit(cwd string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = cwd
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to run git rev-parse HEAD: %w", err)
	}
	commit := string(out)
	for len(commit) > 0 && (commit[len(commit)-1] == '\n' || commit[len(commit)-1] == '\r') {
		commit = commit[:len(commit)-1]
	}
	return commit, nil
}

// AcquireRecorder returns the recorder for the given port, incrementing its
// reference count. Callers (recording adapter constructors) must call
// ReleasePort for every AcquireRecorder once the adapter is no longer in use.
func (s *Session) AcquireRecorder(port string) (*Recorder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pr, ok := s.ports[port]
	if !ok {
		return nil, fmt.Errorf("no recorder configured for port %q", port)
	}
	atomic.AddInt32(&pr.refs, 1)
	return pr.recorder, nil
}

// ReleasePort decrements the reference count for port, signaling that a
// recording adapter built over it is no longer in use.
func (s *Session) ReleasePort(port string) {
	s.mu.Lock()
	pr, ok := s.ports[port]
	s.mu.Unlock()
	if !ok {
		return
	}
	atomic.AddInt32(&pr.refs, -1)
}

// OutputDir returns the session's timestamped cassette directory.
func (s *Session) OutputDir() string {
	return s.outputDir
}

// Finish consumes the session, flushing all seven port recorders to disk.
// It fails with a descriptive error, without flushing anything, if any
// port's recorder still has outstanding references — callers must drop the
// service context (releasing its adapters) before calling Finish.
func (s *Session) Finish() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, port := range PortNames {
		pr := s.ports[port]
		if atomic.LoadInt32(&pr.refs) != 0 {
			return "", fmt.Errorf("recording adapter for %s still has references", port)
		}
	}

	for _, port := range PortNames {
		if _, err := s.ports[port].recorder.Finish(); err != nil {
			return "", fmt.Errorf("failed to flush cassette for port %s: %w", port, err)
		}
	}

	return s.outputDir, nil
}

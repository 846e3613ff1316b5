// Package servicecontext bundles one adapter per port into a single
// aggregate with three construction paths: Live, Recording, and Replaying.
// The context exclusively owns its adapters; in recording mode, once its
// adapters are no longer in use, ReleaseRecording must be called before
// the paired Session is finished.
package servicecontext

import (
	"fmt"

	"github.com/ozten/speck/pkg/adapters/live"
	"github.com/ozten/speck/pkg/adapters/recording"
	"github.com/ozten/speck/pkg/adapters/replaying"
	"github.com/ozten/speck/pkg/cassette"
	"github.com/ozten/speck/pkg/ports"
)

// ServiceContext aggregates one adapter per port.
type ServiceContext struct {
	Clock  ports.Clock
	FS     ports.FileSystem
	Git    ports.Git
	Shell  ports.Shell
	IDGen  ports.IDGenerator
	LLM    ports.LLM
	Issues ports.IssueTracker
}

// Live installs the live adapter for every port. The live issue tracker is
// a stub whose every method returns live.ErrNotImplemented.
func Live(repoDir string) *ServiceContext {
	return &ServiceContext{
		Clock:  live.NewClock(),
		FS:     live.NewFileSystem(),
		Git:    live.NewGit(repoDir),
		Shell:  live.NewShell(),
		IDGen:  live.NewIDGenerator(),
		LLM:    live.NewLLM(),
		Issues: live.NewIssueTracker(),
	}
}

// Recording constructs a Recording Session rooted at cwd, then installs a
// recording adapter per port, each wrapping a live inner adapter and
// sharing that port's recorder from the session. It returns both the
// context and the session; the caller must stop using the context and call
// ReleaseRecording before calling session.Finish().
func Recording(cwd string) (*ServiceContext, *cassette.Session, error) {
	session, err := cassette.NewSession(cwd)
	if err != nil {
		return nil, nil, err
	}

	acquire := func(port string) *cassette.Recorder {
		r, err := session.AcquireRecorder(port)
		if err != nil {
			panic(fmt.Sprintf("servicecontext: %v", err))
		}
		return r
	}

	ctx := &ServiceContext{
		Clock:  recording.NewClock(live.NewClock(), acquire("clock")),
		FS:     recording.NewFileSystem(live.NewFileSystem(), acquire("fs")),
		Git:    recording.NewGit(live.NewGit(cwd), acquire("git")),
		Shell:  recording.NewShell(live.NewShell(), acquire("shell")),
		IDGen:  recording.NewIDGenerator(live.NewIDGenerator(), acquire("id_gen")),
		LLM:    recording.NewLLM(live.NewLLM(), acquire("llm")),
		Issues: recording.NewIssueTracker(live.NewIssueTracker(), acquire("issues")),
	}

	return ctx, session, nil
}

// ReleaseRecording signals session that this context's recording adapters
// are no longer in use, so every port's reference count drops to zero and
// session.Finish() can flush. Call this once, after the context's last use,
// before calling Finish on a context built by Recording.
func ReleaseRecording(session *cassette.Session) {
	for _, port := range cassette.PortNames {
		session.ReleasePort(port)
	}
}

// Replaying constructs a replaying context from a single monolithic
// cassette file. All ports share the same replayer; the per-(port,method)
// queueing inside it keeps each port's stream independent.
func Replaying(path string) (*ServiceContext, error) {
	replayer, err := cassette.LoadMonolithic(path)
	if err != nil {
		return nil, err
	}

	return &ServiceContext{
		Clock:  replaying.NewClock(replayer),
		FS:     replaying.NewFileSystem(replayer),
		Git:    replaying.NewGit(replayer),
		Shell:  replaying.NewShell(replayer),
		IDGen:  replaying.NewIDGenerator(replayer),
		LLM:    replaying.NewLLM(replayer),
		Issues: replaying.NewIssueTracker(replayer),
	}, nil
}

// ReplayingFrom constructs a replaying context from per-port cassette
// configuration. Ports without a configured cassette are filled with a
// panicking stub.
func ReplayingFrom(cfg *cassette.Config) (*ServiceContext, error) {
	replayers, err := cfg.LoadAll()
	if err != nil {
		return nil, err
	}

	clockAdapter := replaying.UnconfiguredClock()
	if replayers.Clock != nil {
		clockAdapter = replaying.NewClock(replayers.Clock)
	}

	fsAdapter := replaying.UnconfiguredFileSystem()
	if replayers.FS != nil {
		fsAdapter = replaying.NewFileSystem(replayers.FS)
	}

	gitAdapter := replaying.UnconfiguredGit()
	if replayers.Git != nil {
		gitAdapter = replaying.NewGit(replayers.Git)
	}

	shellAdapter := replaying.UnconfiguredShell()
	if replayers.Shell != nil {
		shellAdapter = replaying.NewShell(replayers.Shell)
	}

	idGenAdapter := replaying.UnconfiguredIDGenerator()
	if replayers.IDGen != nil {
		idGenAdapter = replaying.NewIDGenerator(replayers.IDGen)
	}

	llmAdapter := replaying.UnconfiguredLLM()
	if replayers.LLM != nil {
		llmAdapter = replaying.NewLLM(replayers.LLM)
	}

	issuesAdapter := replaying.UnconfiguredIssueTracker()
	if replayers.Issues != nil {
		issuesAdapter = replaying.NewIssueTracker(replayers.Issues)
	}

	return &ServiceContext{
		Clock:  clockAdapter,
		FS:     fsAdapter,
		Git:    gitAdapter,
		Shell:  shellAdapter,
		IDGen:  idGenAdapter,
		LLM:    llmAdapter,
		Issues: issuesAdapter,
	}, nil
}

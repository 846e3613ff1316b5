package replaying

import "github.com/ozten/speck/pkg/cassette"

// FileSystem serves recorded filesystem results from a cassette.
type FileSystem struct {
	replayer *cassette.Replayer
}

// NewFileSystem returns a FileSystem backed by replayer.
func NewFileSystem(replayer *cassette.Replayer) FileSystem {
	return FileSystem{replayer: replayer}
}

// UnconfiguredFileSystem returns a FileSystem with no cassette; any call panics.
func UnconfiguredFileSystem() FileSystem {
	return FileSystem{}
}

// ReadToString returns the next recorded read result; path is ignored.
func (f FileSystem) ReadToString(path string) (string, error) {
	output := nextOutput(f.replayer, "fs", "read_to_string")
	var result string
	err := decodeResult(output, &result)
	return result, err
}

// Write returns the next recorded write result; path and contents are ignored.
func (f FileSystem) Write(path, contents string) error {
	output := nextOutput(f.replayer, "fs", "write")
	return decodeResult(output, nil)
}

// Exists returns the next recorded exists result; path is ignored.
func (f FileSystem) Exists(path string) bool {
	output := nextOutput(f.replayer, "fs", "exists")
	var result bool
	decodeBare(output, &result)
	return result
}

// ListDir returns the next recorded directory listing; path is ignored.
func (f FileSystem) ListDir(path string) ([]string, error) {
	output := nextOutput(f.replayer, "fs", "list_dir")
	var result []string
	err := decodeResult(output, &result)
	return result, err
}

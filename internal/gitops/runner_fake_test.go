package gitops

import (
	"context"
	"strings"
)

// fakeRunner implements Runner for testing without touching git, the
// filesystem or the network.
type fakeRunner struct {
	responses map[string]fakeResponse
	calls     []fakeCall

	// onRun, when set, is invoked for every call and may fabricate side
	// effects such as creating the clone directory.
	onRun func(dir string, args []string)
}

type fakeResponse struct {
	output string
	err    error
}

type fakeCall struct {
	dir  string
	args []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: make(map[string]fakeResponse)}
}

func (f *fakeRunner) Run(_ context.Context, dir string, args ...string) (string, error) {
	f.calls = append(f.calls, fakeCall{dir: dir, args: args})
	if f.onRun != nil {
		f.onRun(dir, args)
	}

	if response, ok := f.responses[strings.Join(args, " ")]; ok {
		return response.output, response.err
	}

	// Default successful responses for common operations.
	if len(args) >= 2 && args[0] == "rev-parse" && args[1] == "HEAD" {
		return "e3a1b6c8d9b2ff0c9f5f8a0a5d8f4cf2e19b1db3", nil
	}
	return "", nil
}

func (f *fakeRunner) setResponse(argsKey, output string, err error) {
	f.responses[argsKey] = fakeResponse{output: output, err: err}
}

func (f *fakeRunner) callKeys() []string {
	keys := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		keys = append(keys, strings.Join(call.args, " "))
	}
	return keys
}

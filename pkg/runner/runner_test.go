package runner

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perbu/vstestrun/pkg/escape"
)

// TestHelperProcess is not a real test. It is the child process started by the
// tests below.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 {
		if args[0] == "--" {
			args = args[1:]
			break
		}
		args = args[1:]
	}
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "no command")
		os.Exit(2)
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "echo":
		for _, a := range args {
			fmt.Println(a)
		}
	case "both":
		fmt.Fprintln(os.Stdout, "to stdout")
		fmt.Fprintln(os.Stderr, "to stderr")
		fmt.Fprint(os.Stdout, "no newline")
	case "exit":
		code, _ := strconv.Atoi(args[0])
		fmt.Println("exiting")
		os.Exit(code)
	case "flood":
		n, _ := strconv.Atoi(args[0])
		out := bufio.NewWriter(os.Stdout)
		errOut := bufio.NewWriter(os.Stderr)
		for i := 0; i < n; i++ {
			fmt.Fprintf(out, "out line %d %s\n", i, strings.Repeat("x", 64))
			fmt.Fprintf(errOut, "err line %d %s\n", i, strings.Repeat("y", 64))
		}
		out.Flush()
		errOut.Flush()
	case "longline":
		n, _ := strconv.Atoi(args[0])
		fmt.Println(strings.Repeat("z", n))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		os.Exit(2)
	}
	os.Exit(0)
}

// syncBuffer is written to by the log handler from two relay goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type record struct {
	Level  string `json:"level"`
	Msg    string `json:"msg"`
	Source string `json:"source"`
	Stream string `json:"stream"`
}

// relayed returns the relayed output lines per stream.
func relayed(t *testing.T, out string) map[string][]string {
	t.Helper()
	lines := make(map[string][]string)
	sc := bufio.NewScanner(strings.NewReader(out))
	sc.Buffer(make([]byte, 0, 1024*1024), 4*1024*1024)
	for sc.Scan() {
		var rec record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		if rec.Stream == "" {
			continue
		}
		assert.Equal(t, "INFO", rec.Level)
		assert.Equal(t, DefaultSource, rec.Source)
		lines[rec.Stream] = append(lines[rec.Stream], rec.Msg)
	}
	require.NoError(t, sc.Err())
	return lines
}

func helperRun(t *testing.T, values ...string) (int, map[string][]string, error) {
	t.Helper()
	t.Setenv("GO_WANT_HELPER_PROCESS", "1")

	buf := &syncBuffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tokens := []string{"-test.run=^TestHelperProcess$", "--"}
	tokens = append(tokens, escape.EscapeSlice(values)...)

	code, err := New(logger).Run(context.Background(), os.Args[0], tokens)
	return code, relayed(t, buf.String()), err
}

func TestRunRelaysArguments(t *testing.T) {
	values := []string{
		"echo",
		"--settings:run.settings",
		"C:\\My Tests\\tests.dll",
		`TestRunParameters.Parameter(name="a b")`,
		"plain",
	}
	code, lines, err := helperRun(t, values...)

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, values[1:], lines["stdout"])
	assert.Empty(t, lines["stderr"])
}

func TestRunSeparatesStreams(t *testing.T) {
	code, lines, err := helperRun(t, "both")

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"to stdout", "no newline"}, lines["stdout"])
	assert.Equal(t, []string{"to stderr"}, lines["stderr"])
}

func TestRunExitCode(t *testing.T) {
	for _, want := range []int{0, 1, 3} {
		t.Run(strconv.Itoa(want), func(t *testing.T) {
			code, lines, err := helperRun(t, "exit", strconv.Itoa(want))

			require.NoError(t, err)
			assert.Equal(t, want, code)
			assert.Equal(t, []string{"exiting"}, lines["stdout"])
		})
	}
}

func TestRunDrainsLargeOutput(t *testing.T) {
	const n = 20000
	code, lines, err := helperRun(t, "flood", strconv.Itoa(n))

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	require.Len(t, lines["stdout"], n)
	require.Len(t, lines["stderr"], n)
	assert.True(t, strings.HasPrefix(lines["stdout"][n-1], fmt.Sprintf("out line %d ", n-1)))
	assert.True(t, strings.HasPrefix(lines["stderr"][n-1], fmt.Sprintf("err line %d ", n-1)))
}

func TestRunLongLine(t *testing.T) {
	const n = 256 * 1024
	code, lines, err := helperRun(t, "longline", strconv.Itoa(n))

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	require.Len(t, lines["stdout"], 1)
	assert.Len(t, lines["stdout"][0], n)
}

func TestRunStartFailure(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	code, err := New(logger).Run(context.Background(), "/nonexistent/vstest.console.exe", []string{"tests.dll"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cmd.Start")
	assert.Equal(t, -1, code)
}

func TestRelay(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	err := relay(strings.NewReader("first\r\n\nthird"), newLineLogger(logger, "src", "stdout"))
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "source=src stream=stdout"))
	assert.Contains(t, out, "msg=first ")
	assert.Contains(t, out, `msg="" `)
	assert.Contains(t, out, "msg=third ")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil, nil))
	assert.Equal(t, -1, exitCode(fmt.Errorf("boom"), nil))
}

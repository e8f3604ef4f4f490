package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/domain"
)

func TestValidate(t *testing.T) {
	ctx := context.Background()
	src := SourceOptions{Dir: testdata}

	var out bytes.Buffer
	require.NoError(t, Validate(ctx, src, "parity", true, &out))
	assert.Equal(t, "parity is valid: 4 rules, 3 symbols, initial state 0\n", out.String())

	out.Reset()
	require.NoError(t, Validate(ctx, src, "swap", true, &out))
	assert.Equal(t, "swap is valid: 10 rules, 7 symbols, initial state 1\n", out.String())

	out.Reset()
	require.NoError(t, Validate(ctx, src, "detour", false, &out))
	assert.Contains(t, out.String(), "warning: line 8: state 5 is never reached from initial state 0\n")
	assert.Contains(t, out.String(), "warning: accepting state 2 is never reached\n")

	err := Validate(ctx, src, "detour", true, &out)
	assert.ErrorContains(t, err, "detour: 2 warnings")

	err = Validate(ctx, src, "broken", false, &out)
	var defErr *domain.DefinitionError
	require.ErrorAs(t, err, &defErr)
	assert.Equal(t, 6, defErr.Line)
}

func TestGraph(t *testing.T) {
	ctx := context.Background()
	src := SourceOptions{Dir: testdata}

	var out bytes.Buffer
	require.NoError(t, Graph(ctx, src, "parity", nil, &out))
	assert.Contains(t, out.String(), `q0 -- "1/1,R" --> q1`)
	assert.NotContains(t, out.String(), "classDef")

	out.Reset()
	input := "11"
	require.NoError(t, Graph(ctx, src, "parity", &input, &out))
	assert.Contains(t, out.String(), "class q1 visited;")
	assert.Contains(t, out.String(), "class q0 current;")
}

func TestInspect(t *testing.T) {
	ctx := context.Background()
	src := SourceOptions{Dir: testdata}

	var out bytes.Buffer
	require.NoError(t, Inspect(ctx, src, "parity", InspectOptions{Raw: true}, &out))
	assert.Contains(t, out.String(), "# parity\n")
	assert.Contains(t, out.String(), "Accepts binary strings with an even number of 1s.")
	assert.Contains(t, out.String(), "| 1 | `1` | 0 | `1` | R |")

	out.Reset()
	require.NoError(t, Inspect(ctx, src, "swap", InspectOptions{YAML: true}, &out))
	assert.Contains(t, out.String(), "initial: 1\n")
	assert.Contains(t, out.String(), "- 0 s 0 s L\n")
}

func TestPushAndList_File(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := SourceOptions{Source: SourceFile, Dir: dir}

	require.NoError(t, Push(ctx, src, "even", filepath.Join(testdata, "parity.yaml"), nil))
	_, err := os.Stat(filepath.Join(dir, "even.yaml"))
	require.NoError(t, err)

	err = Push(ctx, src, "bad", filepath.Join(testdata, "broken.tm"), nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateTransition)

	var out bytes.Buffer
	require.NoError(t, List(ctx, src, &out))
	assert.Equal(t, "even\n", out.String())
}

func TestPushAndRun_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	src := SourceOptions{Source: SourceRedis, RedisAddr: mr.Addr(), RedisPrefix: "test:"}

	require.NoError(t, Push(ctx, src, "swap", filepath.Join(testdata, "swap.tm"), nil))
	assert.True(t, mr.Exists("test:machine:swap"))

	var out bytes.Buffer
	require.NoError(t, List(ctx, src, &out))
	assert.Equal(t, "swap\n", out.String())

	out.Reset()
	err := Run(ctx, RunOptions{
		Source:  src,
		Machine: "swap",
		In:      bytes.NewBufferString("nice\n"),
		Out:     &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "test\n", out.String())
}

func TestSourceOptions(t *testing.T) {
	_, _, err := SourceOptions{Source: "ftp"}.Open()
	assert.ErrorContains(t, err, "unknown source")

	loader, name, _, err := SourceOptions{Dir: "machines"}.Resolve("swap")
	require.NoError(t, err)
	assert.Equal(t, "swap", name)
	assert.NotNil(t, loader)

	_, name, _, err = SourceOptions{Dir: "machines"}.Resolve("other/dir/swap.tm")
	require.NoError(t, err)
	assert.Equal(t, "swap.tm", name)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitAccept, ExitCode(nil))
	assert.Equal(t, ExitReject, ExitCode(&ExitError{Code: ExitReject}))
	assert.Equal(t, ExitUsage, ExitCode(assert.AnError))
	assert.Equal(t, "exit status 1", (&ExitError{Code: 1}).Error())
}

func TestLibrarySource(t *testing.T) {
	ctx := context.Background()
	src := SourceOptions{Source: SourceLibrary, Dir: testutils.CopyLibrary(t, filepath.Join(testdata, "library"))}

	var out bytes.Buffer
	require.NoError(t, List(ctx, src, &out))
	assert.Equal(t, "increment\n", out.String())

	out.Reset()
	err := Run(ctx, RunOptions{
		Source:  src,
		Machine: "increment",
		JSON:    true,
		In:      bytes.NewBufferString("1011\n111\n"),
		Out:     &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"tape":"_1100_"`)
	assert.Contains(t, out.String(), `"tape":"_1000_"`)

	out.Reset()
	require.NoError(t, Inspect(ctx, src, "increment", InspectOptions{Raw: true}, &out))
	assert.Contains(t, out.String(), "# increment\n")
	assert.Contains(t, out.String(), "Binary increment")
	assert.Contains(t, out.String(), "Adds one to a binary number")

	err = Push(ctx, src, "x", filepath.Join(testdata, "swap.tm"), nil)
	assert.ErrorContains(t, err, "read-only")
}

func TestCreateLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "turing.log")
	logger, closer, err := CreateLogger("info", path)
	require.NoError(t, err)

	logger.Info("run halted", "machine", "swap")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"run halted"`)

	_, _, err = CreateLogger("loud", "")
	assert.Error(t, err)
}

func TestSignalContext(t *testing.T) {
	t.Run("signal", func(t *testing.T) {
		ctx := NewSignalContext(context.Background(), syscall.SIGUSR1)
		defer ctx.Cancel()

		require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))
		select {
		case <-ctx.Done():
		case <-time.After(5 * time.Second):
			t.Fatal("context not cancelled by signal")
		}
		assert.Equal(t, syscall.SIGUSR1, ctx.Signal())
	})

	t.Run("parent cancelled", func(t *testing.T) {
		parent, cancel := context.WithCancel(context.Background())
		ctx := NewSignalContext(parent)
		cancel()

		<-ctx.Done()
		assert.Nil(t, ctx.Signal())
	})
}

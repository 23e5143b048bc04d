package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arvasit/wsrun/internal/config"
	"github.com/arvasit/wsrun/internal/graph"
	"github.com/arvasit/wsrun/internal/runner"
	"github.com/arvasit/wsrun/internal/testutil"
	"github.com/arvasit/wsrun/internal/workspace"
)

// setupWorkspace creates a temp workspace whose runner appends
// "<package> <task>" to a log file instead of invoking pnpm.
func setupWorkspace(t *testing.T, pkgs ...testutil.Pkg) (wsDir, logPath string) {
	t.Helper()
	wsDir = t.TempDir()
	logPath = filepath.Join(wsDir, "run.log")
	writeRunner(t, wsDir, fmt.Sprintf("echo {package} {task} >> %s", logPath))
	for _, p := range pkgs {
		testutil.WritePackage(t, wsDir, p)
	}
	return wsDir, logPath
}

func writeRunner(t *testing.T, wsDir, script string) {
	t.Helper()
	cfg := fmt.Sprintf("version: 1\nscope: \"@ws/\"\nsettle: 10ms\nrunner: [sh, -c, %q]\n", script)
	testutil.WriteFile(t, filepath.Join(wsDir, config.FileName), cfg)
}

// readLog returns the package names recorded by the runner, in order.
func readLog(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line != "" {
			out = append(out, strings.Fields(line)[0])
		}
	}
	return out
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func build(category, dir string, deps ...string) testutil.Pkg {
	qualified := make([]string, len(deps))
	for i, d := range deps {
		qualified[i] = "@ws/" + d
	}
	return testutil.Pkg{
		Category: category, Dir: dir, Name: "@ws/" + dir,
		Deps: qualified, Scripts: testutil.Scripts("build", "dev"),
	}
}

func TestRunRun_linearChain(t *testing.T) {
	wsDir, logPath := setupWorkspace(t,
		build("libs", "c", "b"),
		build("libs", "a"),
		build("libs", "b", "a"),
	)

	out, err := execute(t, "--root", wsDir, "run", "all", "build")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	if want := []string{"@ws/a", "@ws/b", "@ws/c"}; !reflect.DeepEqual(readLog(t, logPath), want) {
		t.Errorf("executed %v, want %v", readLog(t, logPath), want)
	}
	if exitCode(err) != 0 {
		t.Errorf("exit code = %d, want 0", exitCode(err))
	}
	if !strings.Contains(out, "Total packages: 3") || !strings.Contains(out, "Executed:       3") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestRunRun_cycle(t *testing.T) {
	wsDir, logPath := setupWorkspace(t,
		build("libs", "a", "b"),
		build("libs", "b", "a"),
	)

	_, err := execute(t, "--root", wsDir, "run", "libs", "build")
	if !errors.Is(err, graph.ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	var cerr *graph.CycleError
	if !errors.As(err, &cerr) || (cerr.Package != "@ws/a" && cerr.Package != "@ws/b") {
		t.Errorf("cycle should name a or b, got %v", err)
	}
	if exitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", exitCode(err))
	}
	if got := readLog(t, logPath); len(got) != 0 {
		t.Errorf("nothing should run, got %v", got)
	}
}

func TestRunRun_missingTask(t *testing.T) {
	d := testutil.Pkg{Category: "packages", Dir: "d", Name: "@ws/d", Scripts: testutil.Scripts("lint")}
	e := build("packages", "e")
	wsDir, logPath := setupWorkspace(t, d, e)

	out, err := execute(t, "--root", wsDir, "run", "packages", "build")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := []string{"@ws/e"}; !reflect.DeepEqual(readLog(t, logPath), want) {
		t.Errorf("executed %v, want %v", readLog(t, logPath), want)
	}
	if !strings.Contains(out, "Total packages: 2") || !strings.Contains(out, "Executed:       1") {
		t.Errorf("summary should report discovered=2 executed=1:\n%s", out)
	}
}

func TestRunRun_scopedFilter(t *testing.T) {
	wsDir, logPath := setupWorkspace(t,
		build("apps", "b", "a"),
		build("libs", "a"),
	)

	if _, err := execute(t, "--root", wsDir, "run", "apps", "build"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := []string{"@ws/b"}; !reflect.DeepEqual(readLog(t, logPath), want) {
		t.Errorf("executed %v, want %v", readLog(t, logPath), want)
	}
}

func TestRunRun_taskFailureStops(t *testing.T) {
	wsDir, logPath := setupWorkspace(t,
		build("libs", "a"),
		build("libs", "b", "a"),
		build("libs", "c", "b"),
	)
	writeRunner(t, wsDir, fmt.Sprintf(`test {package} != @ws/b && echo {package} {task} >> %s`, logPath))

	out, err := execute(t, "--root", wsDir, "run", "libs", "build")
	if !errors.Is(err, runner.ErrTaskFailed) {
		t.Fatalf("expected ErrTaskFailed, got %v", err)
	}
	var perr *runner.PhaseError
	if !errors.As(err, &perr) || perr.Phase != runner.PhaseExecuting {
		t.Errorf("expected executing phase, got %v", err)
	}
	if want := []string{"@ws/a"}; !reflect.DeepEqual(readLog(t, logPath), want) {
		t.Errorf("executed %v, want %v", readLog(t, logPath), want)
	}
	if !strings.Contains(out, "Run stopped:") {
		t.Errorf("missing failure summary:\n%s", out)
	}
}

func TestRunRun_spawnFailure(t *testing.T) {
	wsDir, _ := setupWorkspace(t, build("libs", "a"))
	testutil.WriteFile(t, filepath.Join(wsDir, config.FileName),
		"version: 1\nscope: \"@ws/\"\nrunner: [wsrun-no-such-runner, \"{task}\"]\n")

	_, err := execute(t, "--root", wsDir, "run", "libs", "build")
	if !errors.Is(err, runner.ErrSpawn) {
		t.Fatalf("expected ErrSpawn, got %v", err)
	}
	if exitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", exitCode(err))
	}
}

func TestRunRun_usage(t *testing.T) {
	restore := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = restore })

	for _, args := range [][]string{{"run"}, {"run", "libs"}} {
		_, err := execute(t, args...)
		if !errors.Is(err, errUsage) {
			t.Errorf("%v: expected usage error, got %v", args, err)
		}
		if exitCode(err) != 1 {
			t.Errorf("%v: exit code = %d, want 1", args, exitCode(err))
		}
	}
}

func TestRunRun_unknownCategory(t *testing.T) {
	wsDir, logPath := setupWorkspace(t, build("libs", "a"))

	_, err := execute(t, "--root", wsDir, "run", "services", "build")
	if !errors.Is(err, workspace.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if got := readLog(t, logPath); len(got) != 0 {
		t.Errorf("nothing should run, got %v", got)
	}
}

func TestRunRun_noEligiblePackages(t *testing.T) {
	wsDir, _ := setupWorkspace(t, build("libs", "a"))

	out, err := execute(t, "--root", wsDir, "run", "apps", "build")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, `No package with a "build" script found in apps/`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRunRun_invalidManifestIsWarning(t *testing.T) {
	wsDir, logPath := setupWorkspace(t, build("libs", "a"))
	testutil.WriteFile(t, filepath.Join(wsDir, "libs", "broken", "package.json"), "{")

	out, err := execute(t, "--root", wsDir, "run", "libs", "build")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "Warning: invalid package.json") {
		t.Errorf("missing warning:\n%s", out)
	}
	if want := []string{"@ws/a"}; !reflect.DeepEqual(readLog(t, logPath), want) {
		t.Errorf("executed %v, want %v", readLog(t, logPath), want)
	}
}

func TestRunRun_negativeSettle(t *testing.T) {
	wsDir, _ := setupWorkspace(t, build("libs", "a"))
	_, err := execute(t, "--root", wsDir, "run", "libs", "dev", "--parallel", "--settle", "-1s")
	if !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRunRun_parallelRunsUntilInterrupted(t *testing.T) {
	wsDir, logPath := setupWorkspace(t,
		build("apps", "b", "a"),
		build("libs", "a"),
	)

	var out syncBuffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--root", wsDir, "run", "all", "dev", "--parallel", "--settle", "20ms"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for len(readLog(t, logPath)) < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for starts; log = %v", readLog(t, logPath))
		}
		time.Sleep(10 * time.Millisecond)
	}
	if want := []string{"@ws/a", "@ws/b"}; !reflect.DeepEqual(readLog(t, logPath), want) {
		t.Errorf("started %v, want %v", readLog(t, logPath), want)
	}

	select {
	case err := <-done:
		t.Fatalf("parallel run returned before interruption: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if exitCode(err) != 130 {
			t.Errorf("exit code = %d, want 130 (err %v)", exitCode(err), err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("parallel run did not stop after interruption")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"usage", usageErrorf("missing"), 1},
		{"cycle", runner.InPhase(runner.PhaseSorting, &graph.CycleError{Package: "a"}), 1},
		{"spawn", &runner.SpawnError{Package: "a", Task: "dev", Err: errors.New("not found")}, 1},
		{"interrupted", runner.InPhase(runner.PhaseExecuting, runner.ErrInterrupted), 130},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
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

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driving"
	"github.com/custodia-labs/similar/internal/logger"
)

// syncBuffer is a bytes.Buffer safe for a writer and a reader goroutine.
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

// stubFinder returns a fixed report and counts calls.
type stubFinder struct {
	mu       sync.Mutex
	requests []driving.FindRequest
	report   *domain.ClusterReport
	failFrom int // 1-based call that starts failing; 0 never fails
	err      error
}

func (f *stubFinder) Find(_ context.Context, req driving.FindRequest) (*domain.ClusterReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.failFrom > 0 && len(f.requests) >= f.failFrom {
		return nil, f.err
	}
	return f.report, nil
}

func (f *stubFinder) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// resetFlags restores package state shared by commands.
func resetFlags(t *testing.T) {
	t.Helper()
	jsonOutput = false
	workers = 0
	expandTerms = 0
	watchMode = false
	verbose = false
	configDir = ""
	noColor = false
	newFinder = defaultFinder
	settings = domain.Settings{}
	settingsService = nil
	t.Cleanup(func() {
		newFinder = defaultFinder
		logger.SetOutput(nil)
		logger.SetVerbose(false)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
}

// execute runs the command line args with configuration kept in cfgDir.
func execute(t *testing.T, cfgDir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(t)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config-dir=" + cfgDir}, args...))

	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// corpus writes files into a fresh directory.
func corpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

const (
	foxText = "The quick brown fox jumps over the lazy dog near the riverbank. " +
		"Foxes are quick and clever animals that hunt at dusk along the river."
	engineText = "Diesel engines compress air until fuel ignites without a spark. " +
		"Turbochargers force extra air into cylinders for more power."
)

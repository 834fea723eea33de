package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alnah/go-mdpress"
	"github.com/alnah/go-mdpress/internal/fonts"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock converter and pool
// ---------------------------------------------------------------------------

// mockConverter records inputs and returns a canned result.
type mockConverter struct {
	mu       sync.Mutex
	result   *mdpress.Result
	err      error
	inputs   []mdpress.Input
	registry *fonts.Registry
	closed   bool
}

func (m *mockConverter) Convert(_ context.Context, in mdpress.Input) (*mdpress.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, in)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &mdpress.Result{
		Document:  &mdpress.Document{HTML: "<html>mock</html>"},
		PDF:       []byte("%PDF-1.7 mock"),
		PageCount: 2,
	}, nil
}

func (m *mockConverter) Fonts() *fonts.Registry {
	if m.registry == nil {
		return fonts.NewRegistry(nil)
	}
	return m.registry
}

func (m *mockConverter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockConverter) lastInput(t *testing.T) mdpress.Input {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.inputs) == 0 {
		t.Fatal("converter was not called")
	}
	return m.inputs[len(m.inputs)-1]
}

// mockPool hands out a single converter.
type mockPool struct {
	mu       sync.Mutex
	conv     Converter
	err      error
	acquired int
	released int
}

func (p *mockPool) Acquire(context.Context) (Converter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.acquired++
	return p.conv, nil
}

func (p *mockPool) Release(Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *mockPool) Size() int    { return 1 }
func (p *mockPool) Close() error { return nil }

// testEnv returns an environment whose converters are conv, or real
// converters when conv is nil.
func testEnv(conv Converter) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Stdout:       stdout,
		Stderr:       stderr,
		Getenv:       func(string) string { return "" },
		NewConverter: newConverter,
		NewPool:      newPoolAdapter,
	}
	if conv != nil {
		env.NewConverter = func(...mdpress.Option) (Converter, error) { return conv, nil }
		env.NewPool = func(int, ...mdpress.Option) Pool { return &mockPool{conv: conv} }
	}
	return env, stdout, stderr
}

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

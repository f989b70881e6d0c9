package mocks

import (
	"context"
	"sync"

	"github.com/Cyclone1070/finditfaster/internal/command"
)

// MockChecker is a scripted flight check.
type MockChecker struct {
	mu    sync.Mutex
	Err   error
	Calls int
	Env   []string
}

func (c *MockChecker) Run(_ context.Context, _ command.Spec, env []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	c.Env = append([]string(nil), env...)
	return c.Err
}

// SetErr changes the outcome of later runs.
func (c *MockChecker) SetErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Err = err
}

// CallCount returns how often Run was called.
func (c *MockChecker) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Calls
}

// LastEnv returns the environment of the most recent run.
func (c *MockChecker) LastEnv() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Env
}

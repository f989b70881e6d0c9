package mocks

import (
	"context"
	"sync"

	"github.com/Cyclone1070/finditfaster/internal/result"
)

// MockHost collects every message shown to the user.
type MockHost struct {
	mu       sync.Mutex
	Errors   []string
	Warnings []string
	Infos    []string
}

func (h *MockHost) ShowError(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Errors = append(h.Errors, msg)
}

func (h *MockHost) ShowWarning(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Warnings = append(h.Warnings, msg)
}

func (h *MockHost) ShowInfo(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Infos = append(h.Infos, msg)
}

// ErrorList returns a copy of the errors shown so far.
func (h *MockHost) ErrorList() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.Errors...)
}

// WarningList returns a copy of the warnings shown so far.
func (h *MockHost) WarningList() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.Warnings...)
}

// InfoList returns a copy of the info messages shown so far.
func (h *MockHost) InfoList() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.Infos...)
}

// MockOpener records opened documents.
type MockOpener struct {
	mu      sync.Mutex
	Opened  []result.Record
	OpenErr error
}

func (o *MockOpener) Open(_ context.Context, rec result.Record) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.OpenErr != nil {
		return o.OpenErr
	}
	o.Opened = append(o.Opened, rec)
	return nil
}

// OpenedRecords returns a copy of what was opened.
func (o *MockOpener) OpenedRecords() []result.Record {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]result.Record(nil), o.Opened...)
}

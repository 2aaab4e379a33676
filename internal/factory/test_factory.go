package factory

import (
	"time"

	"github.com/mcoot/lobbyregistry/internal/dependencies/mocks"
	"github.com/mcoot/lobbyregistry/internal/events/memory"
	"github.com/mcoot/lobbyregistry/internal/services/registry"
	"github.com/mcoot/lobbyregistry/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	MockIdentity *mocks.MockIdentity
	Recorder     *memory.Recorder
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(registry.DefaultConfig())
}

// NewTestAppWithConfig is NewTestApp with custom registry settings
func NewTestAppWithConfig(cfg registry.Config) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIdentity := mocks.NewMockIdentity()
	recorder := memory.New(memory.DefaultCapacity)

	app := newWithDependencies(mockClock, mockIdentity, recorder, cfg, testutil.NopLogger())

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		MockIdentity: mockIdentity,
		Recorder:     recorder,
	}
}

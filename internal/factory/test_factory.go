package factory

import (
	"time"

	"github.com/dlehdeod1/newcornerkicks/internal/dependencies/mocks"
	"github.com/dlehdeod1/newcornerkicks/internal/services/auth"
	"github.com/dlehdeod1/newcornerkicks/internal/services/session"
	"github.com/dlehdeod1/newcornerkicks/internal/storage/memory"
	"github.com/dlehdeod1/newcornerkicks/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates an App configured for testing with a mocked clock.
// The clock starts on Tuesday 2025-02-11 so the next match day is 2025-02-12.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 2, 11, 12, 0, 0, 0, time.Local))

	mockRandom := mocks.NewIdentityRandom()

	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), session.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}

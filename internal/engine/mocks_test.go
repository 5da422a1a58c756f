package engine_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/addressbook"
)

// MockFetcher simulates the network layer using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the engine.VCardFetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func contact(t *testing.T, name, bday string, phones ...string) *addressbook.Record {
	t.Helper()
	r, err := addressbook.NewRecord(name)
	require.NoError(t, err)
	for _, p := range phones {
		_, err := r.AddPhone(p)
		require.NoError(t, err)
	}
	if bday != "" {
		_, err := r.AddBirthday(bday)
		require.NoError(t, err)
	}
	return r
}

package operation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueue(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		destinations []string
		wantError    string
	}{
		{
			name:         "valid",
			source:       "/srv/app",
			destinations: []string{"/mnt/a", "/mnt/b"},
		},
		{
			name:         "single_destination",
			source:       "/srv/app",
			destinations: []string{"/mnt/a"},
		},
		{
			name:         "missing_source",
			source:       "",
			destinations: []string{"/mnt/a"},
			wantError:    "source is required",
		},
		{
			name:         "no_destinations",
			source:       "/srv/app",
			destinations: nil,
			wantError:    "at least one destination is required",
		},
		{
			name:         "empty_destination",
			source:       "/srv/app",
			destinations: []string{"/mnt/a", ""},
			wantError:    "destination 2 is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue, err := NewQueue(tt.source, tt.destinations)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, queue)
			assert.Equal(t, tt.source, queue.Source())
			assert.Equal(t, tt.destinations, queue.Destinations())
			assert.Equal(t, len(tt.destinations), queue.Len())
		})
	}
}

func TestQueue_CleansPaths(t *testing.T) {
	queue, err := NewQueue("/srv/app/", []string{"/mnt/a/./x/", "/mnt//b"})
	require.NoError(t, err)
	assert.Equal(t, "/srv/app", queue.Source())
	assert.Equal(t, []string{"/mnt/a/x", "/mnt/b"}, queue.Destinations())
}

func TestQueue_SourceName(t *testing.T) {
	queue, err := NewQueue("/srv/deployments/test-dir", []string{"/mnt/a"})
	require.NoError(t, err)
	assert.Equal(t, "test-dir", queue.SourceName())
}

func TestQueue_DestinationsAreDetached(t *testing.T) {
	queue, err := NewQueue("/srv/app", []string{"/mnt/a", "/mnt/b"})
	require.NoError(t, err)

	dests := queue.Destinations()
	dests[0] = "/tampered"
	assert.Equal(t, []string{"/mnt/a", "/mnt/b"}, queue.Destinations(), "callers must not be able to mutate the queue")
}

package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceArguments(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{nil, []string{"server"}},
		{[]string{"--port", "8080", "--service", "install"}, []string{"server", "--port", "8080"}},
		{[]string{"--service=install", "--picturePath", "/srv/pictures"}, []string{"server", "--picturePath", "/srv/pictures"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, serviceArguments(tt.args))
	}
}

func TestDaemon_StopCancelsRun(t *testing.T) {
	started := make(chan struct{})
	d := newDaemon(context.Background(), func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return nil
	})

	require.NoError(t, d.Start(nil))
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("run was not started")
	}
	require.NoError(t, d.Stop(nil))
}

//go:build !windows

package ttyctl

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPollTimesOutWhenNothingReady(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	n, ready, err := Poll([]*os.File{r}, 20*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.Equal(t, []bool{false}, ready)
}

func TestPollReportsReadyDescriptor(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	_, err = w.Write([]byte("x"))
	require.NoError(t, err)

	n, ready, err := Poll([]*os.File{r}, time.Second)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.True(t, ready[0])
}

func TestPollEmptyFileSet(t *testing.T) {
	n, ready, err := Poll(nil, time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.Empty(t, ready)
}

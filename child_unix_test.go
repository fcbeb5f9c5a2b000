//go:build !windows

package ttyctl

import (
	"bufio"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSpawnEchoesThroughPty(t *testing.T) {
	if _, err := os.Stat("/bin/cat"); err != nil {
		t.Skip("/bin/cat not available")
	}

	child, err := Spawn([]string{"/bin/cat"})
	require.NoError(t, err)
	defer child.Close()

	_, err = child.Write([]byte("hello\r\n"))
	require.NoError(t, err)

	n, ready, err := Poll([]*os.File{child.File()}, 2*time.Second)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.True(t, ready[0])

	reader := bufio.NewReader(child)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Contains(t, line, "hello")

	require.NoError(t, child.Terminate())
	_, _ = child.Wait()
}

func TestSpawnInterruptDoesNotHang(t *testing.T) {
	if _, err := os.Stat("/bin/cat"); err != nil {
		t.Skip("/bin/cat not available")
	}

	child, err := Spawn([]string{"/bin/cat"})
	require.NoError(t, err)
	defer child.Close()

	require.NoError(t, child.Interrupt())

	done := make(chan struct{})
	var code int
	go func() {
		code, _ = child.Wait()
		close(done)
	}()

	select {
	case <-done:
		require.NotEqual(t, 0, code)
	case <-time.After(5 * time.Second):
		t.Fatal("wait did not return after interrupt")
	}
}

func TestSpawnTerminateOnTimeout(t *testing.T) {
	if _, err := os.Stat("/bin/sleep"); err != nil {
		t.Skip("/bin/sleep not available")
	}

	child, err := Spawn([]string{"/bin/sleep", "10"})
	require.NoError(t, err)
	defer child.Close()

	n, _, err := Poll([]*os.File{child.File()}, 100*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	require.NoError(t, child.Terminate())

	done := make(chan struct{})
	go func() {
		child.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("wait did not return after terminate")
	}
}

func TestSpawnEmptyArgvFails(t *testing.T) {
	_, err := Spawn(nil)
	require.Error(t, err)
}

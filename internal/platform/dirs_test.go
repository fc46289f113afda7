package platform

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDir_FollowsXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout is linux only")
	}
	root := t.TempDir()
	t.Setenv("XDG_DATA_HOME", root)

	dir, err := DataDir("WorkoutTimer")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "WorkoutTimer"), dir)
}

func TestConfigDir_EndsWithAppName(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir, err := ConfigDir("WorkoutTimer")
	require.NoError(t, err)
	assert.Equal(t, "WorkoutTimer", filepath.Base(dir))
}

func TestSingleInstance(t *testing.T) {
	guard, err := AcquireSingleInstance("WorkoutTimerTest")
	require.NoError(t, err)
	defer guard.Release()
	assert.NotEmpty(t, guard.Address())

	raised := make(chan struct{}, 1)
	go guard.Serve(func() { raised <- struct{}{} })

	_, err = AcquireSingleInstance("WorkoutTimerTest")
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	select {
	case <-raised:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not asked to raise")
	}

	require.NoError(t, guard.Release())
	again, err := AcquireSingleInstance("WorkoutTimerTest")
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestPortFromName_Range(t *testing.T) {
	for _, name := range []string{"", "WorkoutTimer", "another"} {
		port := portFromName(name)
		assert.GreaterOrEqual(t, port, 20000)
		assert.LessOrEqual(t, port, 39999)
	}
	assert.Equal(t, portFromName("WorkoutTimer"), portFromName("WorkoutTimer"))
}

package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workouttimer/internal/core/duration"
	"workouttimer/internal/core/model"
	"workouttimer/internal/sound"
	"workouttimer/internal/storage"
	"workouttimer/internal/ui/terminal"
)

type silentPlayer struct {
	mu   sync.Mutex
	cues []sound.Cue
}

func (player *silentPlayer) Play(cue sound.Cue) error {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.cues = append(player.cues, cue)
	return nil
}

func (player *silentPlayer) played() []sound.Cue {
	player.mu.Lock()
	defer player.mu.Unlock()
	return append([]sound.Cue(nil), player.cues...)
}

// testApp wires an App backed by an in-memory history database.
func testApp(t *testing.T) (*App, *storage.HistoryRepo, *silentPlayer) {
	t.Helper()
	db, err := storage.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := storage.NewHistoryRepo(db)
	player := &silentPlayer{}
	return &App{
		History:      repo,
		Player:       player,
		TickInterval: time.Millisecond,
	}, repo, player
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootCmd_LaunchesGUI(t *testing.T) {
	app, _, _ := testApp(t)
	launched := false
	app.LaunchGUI = func() error {
		launched = true
		return nil
	}

	_, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.True(t, launched)
}

func TestRootCmd_HelpWithoutGUI(t *testing.T) {
	app, _, _ := testApp(t)
	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "countdown")
	assert.Contains(t, out, "history")
}

func TestCountdownCmd_PrintsEverySecond(t *testing.T) {
	app, _, player := testApp(t)
	out, err := executeCmd(t, app, "countdown", "3", "--label", "Plank")
	require.NoError(t, err)

	assert.Equal(t, "[Plank] 00:03\n[Plank] 00:02\n[Plank] 00:01\nTimer complete!\n", out)
	assert.ElementsMatch(t, []sound.Cue{sound.CueWork, sound.CueFinish}, player.played())
}

func TestCountdownCmd_DefaultsAndForms(t *testing.T) {
	app, _, _ := testApp(t)
	out, err := executeCmd(t, app, "countdown", "0")
	require.NoError(t, err)
	assert.Equal(t, "Timer complete!\n", out)

	out, err = executeCmd(t, app, "countdown", "0:02")
	require.NoError(t, err)
	assert.Equal(t, "00:02\n00:01\nTimer complete!\n", out)
}

func TestCountdownCmd_RejectsBadDuration(t *testing.T) {
	app, _, _ := testApp(t)
	_, err := executeCmd(t, app, "countdown", "ten")
	assert.ErrorIs(t, err, duration.ErrNotNumeric)
}

func TestRunBoxing_SavesHistory(t *testing.T) {
	app, repo, player := testApp(t)
	out, err := executeCmd(t, app, "run", "boxing", "--work", "2", "--rest", "1", "--rounds", "2", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "boxing: 3 phases, 00:05 total")
	assert.Contains(t, out, "[Rest 1] 00:01")
	assert.Contains(t, out, "Workout complete!")
	assert.Contains(t, out, "Session saved")

	records, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.ModeBoxing, records[0].Mode)
	assert.Equal(t, 4, records[0].WorkSeconds)
	assert.Equal(t, 1, records[0].RestSeconds)
	assert.Equal(t, 2, records[0].RoundsCompleted)
	assert.Equal(t, 5, records[0].TotalSeconds)
	assert.ElementsMatch(t, []sound.Cue{sound.CueWork, sound.CueRest, sound.CueWork, sound.CueFinish}, player.played())
}

func TestRunTabata_ValidationError(t *testing.T) {
	app, _, _ := testApp(t)
	_, err := executeCmd(t, app, "run", "tabata", "--cycles", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycles")
}

func TestRunCustom_ArgsAndFile(t *testing.T) {
	app, repo, _ := testApp(t)
	out, err := executeCmd(t, app, "run", "custom", "2, 1", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "custom: 3 phases, 00:04 total")
	assert.Contains(t, out, "[Interval 2] 00:01")

	path := filepath.Join(t.TempDir(), "intervals.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n\n1, 1\n"), 0o644))
	out, err = executeCmd(t, app, "run", "custom", "--file", path, "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "custom: 3 phases, 00:03 total")

	records, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].RoundsCompleted)
}

func TestRunCustom_LineError(t *testing.T) {
	app, _, _ := testApp(t)
	_, err := executeCmd(t, app, "run", "custom", "1:00, 0:30", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestRun_InteractiveUsesTerminalModel(t *testing.T) {
	app, repo, _ := testApp(t)
	app.IsInteractive = func() bool { return true }
	clock := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	app.Now = func() time.Time { return clock }
	app.RunProgram = func(m tea.Model, _ io.Reader, _ io.Writer) (tea.Model, error) {
		for second := 1; second <= 10; second++ {
			var cmd tea.Cmd
			m, cmd = m.Update(terminal.TickMsg(clock.Add(time.Duration(second) * time.Second)))
			if cmd != nil {
				if _, quit := cmd().(tea.QuitMsg); quit {
					break
				}
			}
		}
		return m, nil
	}

	_, err := executeCmd(t, app, "run", "boxing", "--work", "2", "--rest", "1", "--rounds", "2", "--save")
	require.NoError(t, err)

	records, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, clock, records[0].StartedAt)
	assert.Equal(t, clock.Add(5*time.Second), records[0].FinishedAt)
}

func TestRun_SaveWithoutHistory(t *testing.T) {
	app, _, _ := testApp(t)
	app.History = nil
	_, err := executeCmd(t, app, "run", "boxing", "--work", "1", "--rest", "1", "--rounds", "1", "--save")
	assert.ErrorIs(t, err, ErrHistoryUnavailable)
}

func TestHistoryList(t *testing.T) {
	app, repo, _ := testApp(t)
	out, err := executeCmd(t, app, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded yet.")

	finished := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(context.Background(), &model.SessionRecord{
		Mode:            model.ModeTabata,
		StartedAt:       finished.Add(-4 * time.Minute),
		FinishedAt:      finished,
		WorkSeconds:     160,
		RestSeconds:     70,
		PrepSeconds:     10,
		RoundsCompleted: 8,
		TotalSeconds:    240,
	}))

	out, err = executeCmd(t, app, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "tabata")
	assert.Contains(t, out, "02:40")
	assert.Contains(t, out, "01:20")
}

func TestHistoryExport(t *testing.T) {
	app, _, _ := testApp(t)
	path := filepath.Join(t.TempDir(), "report.pdf")
	out, err := executeCmd(t, app, "history", "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 0 sessions")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestHistory_Unavailable(t *testing.T) {
	app, _, _ := testApp(t)
	app.History = nil
	_, err := executeCmd(t, app, "history", "list")
	assert.ErrorIs(t, err, ErrHistoryUnavailable)
}

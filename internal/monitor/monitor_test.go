package monitor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fortkit/extension/internal/announce"
	"github.com/fortkit/extension/internal/config"
	"github.com/fortkit/extension/internal/screen"
	"github.com/fortkit/extension/internal/session"
	"github.com/fortkit/extension/internal/storage/memory"
	"github.com/fortkit/extension/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, dir string) (*Service, *memory.Backend, *session.Display) {
	t.Helper()

	reports := memory.New(config.MemoryConfig{FirstReportID: 7})
	display := session.NewDisplay(config.DisplayConfig{
		Chrome: core.DisplayChrome{ViewportPixelWidth: 80, ViewportPixelHeight: 25},
		Bounds: core.WorldBounds{MapTileCountX: 200, MapTileCountY: 200},
	})
	screens := screen.NewStack("dwarfmode")
	screens.Push("unitlist")

	svc := NewService(Dependencies{
		Display:  display,
		Reports:  reports,
		Screens:  screens,
		Dir:      dir,
		Interval: 10 * time.Millisecond,
	})
	return svc, reports, display
}

func TestGetStatus(t *testing.T) {
	svc, reports, display := newService(t, t.TempDir())

	display.SetClock(core.Clock{Year: 250, Tick: 1200})
	display.CenterOn(core.Coord{X: 100, Y: 100, Z: 5})
	appender, err := announce.New(reports)
	require.NoError(t, err)
	appender.Add("A caravan has arrived.", announce.Style{}, display.Clock())

	st := svc.GetStatus()

	assert.Equal(t, core.Clock{Year: 250, Tick: 1200}, st.Clock)
	assert.Equal(t, core.ViewportState{OriginX: 61, OriginY: 89, OriginZ: 5}, st.Viewport)
	assert.False(t, st.Cursor.Visible())
	assert.Equal(t, 1, st.Reports)
	assert.Equal(t, 1, st.Announcements)
	assert.Equal(t, 8, st.NextReportID)
	assert.Equal(t, 2000, st.DisplayTimer)
	assert.Equal(t, "unitlist", st.Screen)
	assert.Equal(t, 2, st.ScreenDepth)
}

func TestWriteStatus(t *testing.T) {
	dir := t.TempDir()
	svc, _, _ := newService(t, dir)

	require.NoError(t, svc.WriteStatus())

	data, err := os.ReadFile(filepath.Join(dir, StatusFileName))
	require.NoError(t, err)

	var st Status
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Equal(t, 7, st.NextReportID)
	assert.Equal(t, "unitlist", st.Screen)
}

func TestStartStop(t *testing.T) {
	dir := t.TempDir()
	svc, _, _ := newService(t, dir)

	require.NoError(t, svc.Start(context.Background()))
	assert.True(t, svc.IsRunning())

	// starting twice is a no-op
	require.NoError(t, svc.Start(context.Background()))

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, StatusFileName))
		return err == nil
	}, time.Second, 5*time.Millisecond)

	svc.Stop()
	assert.False(t, svc.IsRunning())

	// stopping twice is a no-op
	svc.Stop()
}

func TestStart_ContextCancel(t *testing.T) {
	svc, _, _ := newService(t, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, svc.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !svc.IsRunning() }, time.Second, 5*time.Millisecond)
}

package fight

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/brawl/internal/application/engine"
	"github.com/younwookim/brawl/internal/application/replay"
	"github.com/younwookim/brawl/internal/application/system"
	"github.com/younwookim/brawl/internal/domain/button"
	"github.com/younwookim/brawl/internal/domain/entity"
	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/domain/move/movetest"
	"github.com/younwookim/brawl/internal/infrastructure/config"
)

// fakeKeys reports scripted key transitions
type fakeKeys struct {
	pressed  map[ebiten.Key]bool
	released map[ebiten.Key]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{pressed: map[ebiten.Key]bool{}, released: map[ebiten.Key]bool{}}
}

func (k *fakeKeys) JustPressed(key ebiten.Key) bool  { return k.pressed[key] }
func (k *fakeKeys) JustReleased(key ebiten.Key) bool { return k.released[key] }

func (k *fakeKeys) clear() {
	clear(k.pressed)
	clear(k.released)
}

func createTestFight(t *testing.T, keys Keys, record string) *Fight {
	t.Helper()

	reg := movetest.Registry(t)
	stage := &entity.Stage{
		Name:  "test",
		Left:  -500,
		Right: 500,
		Start: [2]mgl64.Vec3{{0, 0, 0}, {120, 0, 0}},
	}
	cfg := config.DefaultEngine()
	cfg.Round.SkipPreRound = true

	newEngine := func() *engine.Engine {
		return engine.NewEngine(system.NewSimulator(reg, stage, &cfg.Combat), cfg, 0, 0)
	}
	return New(newEngine, Options{
		Display: cfg.Display,
		Keymaps: DefaultKeymaps(),
		Keys:    keys,
		Record:  record,
	})
}

func TestKeymap_Capture(t *testing.T) {
	keys := newFakeKeys()
	keys.pressed[ebiten.KeyD] = true
	keys.pressed[ebiten.KeyI] = true
	keys.released[ebiten.KeyS] = true
	keys.pressed[ebiten.KeyArrowLeft] = true

	maps := DefaultKeymaps()
	pressed, released := maps[0].Capture(keys)

	assert.Equal(t, button.MaskOf(button.Right, button.HP), pressed)
	assert.Equal(t, button.MaskOf(button.Down), released)

	pressed, released = maps[1].Capture(keys)
	assert.Equal(t, button.MaskOf(button.Left), pressed)
	assert.Zero(t, released)
}

func TestDefaultKeymaps_NoSharedKeys(t *testing.T) {
	seen := map[ebiten.Key]bool{KeyRestart: true}
	for _, km := range DefaultKeymaps() {
		assert.Len(t, km, 8)
		for _, k := range km {
			assert.False(t, seen[k], "key %v bound twice", k)
			seen[k] = true
		}
	}
}

func TestCamera(t *testing.T) {
	stage := &entity.Stage{Left: -500, Right: 500}
	c := newCamera(stage, 480, 270, 0.4)

	assert.Equal(t, 240.0, c.x(0))
	assert.Equal(t, 40.0, c.x(-500))
	assert.Equal(t, 240.0, c.y(0))

	x, y, w, h := c.rect(geom.NewBox(-50, 0, 50, 200))
	assert.Equal(t, 220.0, x)
	assert.Equal(t, 160.0, y)
	assert.Equal(t, 40.0, w)
	assert.Equal(t, 80.0, h)
}

func TestFight_KeyboardDrivesEngine(t *testing.T) {
	keys := newFakeKeys()
	f := createTestFight(t, keys, "")
	f.OnEnter()
	defer f.OnExit()

	keys.pressed[ebiten.KeyI] = true
	next, err := f.Update()
	require.NoError(t, err)
	assert.Nil(t, next)
	keys.clear()

	for i := 0; i < 2; i++ {
		_, err := f.Update()
		require.NoError(t, err)
	}

	fr := f.Engine().Frame()
	assert.Equal(t, 3, fr.Number)
	hp := movetest.ID(t, f.Engine().Simulator().Registry(), movetest.StHP)
	assert.Equal(t, hp, fr.P[0].Action)
	assert.Equal(t, "FIGHT", f.banner)
}

func TestFight_Restart(t *testing.T) {
	keys := newFakeKeys()
	f := createTestFight(t, keys, "")
	f.OnEnter()

	keys.pressed[KeyRestart] = true
	next, err := f.Update()
	require.NoError(t, err)
	require.IsType(t, &Fight{}, next)
	assert.Equal(t, 0, f.Engine().CurrentFrame(), "restart does not tick")
}

func TestFight_StoppedMatchWaitsForRestart(t *testing.T) {
	keys := newFakeKeys()
	f := createTestFight(t, keys, "")
	f.OnEnter()
	defer f.OnExit()

	_, err := f.Update()
	require.NoError(t, err)

	// input far past the history window stops the match
	err = f.Engine().Buttons(0, button.MaskOf(button.HP), 0, 1000)
	require.ErrorIs(t, err, system.ErrInputTooNew)

	next, err := f.Update()
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.ErrorIs(t, f.Engine().Err(), engine.ErrRollbackExceeded)
	assert.Equal(t, "DESYNC - F1 TO RESTART", f.banner)

	frame := f.Engine().CurrentFrame()
	_, err = f.Update()
	require.NoError(t, err)
	assert.Equal(t, frame, f.Engine().CurrentFrame())

	keys.pressed[KeyRestart] = true
	next, err = f.Update()
	require.NoError(t, err)
	assert.IsType(t, &Fight{}, next)
}

func TestFight_Record(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fight.json.sz")
	keys := newFakeKeys()
	f := createTestFight(t, keys, path)
	f.OnEnter()

	_, err := f.Update()
	require.NoError(t, err)

	keys.pressed[ebiten.KeyArrowLeft] = true
	_, err = f.Update()
	require.NoError(t, err)
	keys.clear()

	f.OnExit()

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, "test", data.Stage)
	assert.Equal(t, [2]string{"boxer", "boxer"}, data.Characters)
	require.Len(t, data.Events, 1)
	assert.Equal(t, replay.Event{
		Tick:    2,
		Player:  1,
		Pressed: button.MaskOf(button.Left),
		Target:  2,
	}, data.Events[0])
}

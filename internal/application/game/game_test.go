package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/brawl/internal/application/scene"
)

// mockScene is a test double for Scene interface
type mockScene struct {
	updateCalled  int
	drawCalled    int
	onEnterCalled int
	onExitCalled  int
	nextScene     scene.Scene
	updateErr     error
}

func (m *mockScene) Update() (scene.Scene, error) {
	m.updateCalled++
	return m.nextScene, m.updateErr
}

func (m *mockScene) Draw(screen *ebiten.Image) {
	m.drawCalled++
}

func (m *mockScene) OnEnter() {
	m.onEnterCalled++
}

func (m *mockScene) OnExit() {
	m.onExitCalled++
}

// keys is a scripted set of keys pressed on the next tick
type keys map[ebiten.Key]bool

func createTestGame(s scene.Scene, pressed keys) *Game {
	g := New(s, 320, 240)
	g.justPressed = func(k ebiten.Key) bool { return pressed[k] }
	return g
}

func TestNew(t *testing.T) {
	mockInitial := &mockScene{}
	g := New(mockInitial, 320, 240)

	require.NotNil(t, g)
	assert.Equal(t, 1, mockInitial.onEnterCalled, "OnEnter should be called on initial scene")
	assert.False(t, g.Paused())
}

func TestGame_Update_DelegatesToCurrentScene(t *testing.T) {
	mockInitial := &mockScene{}
	g := createTestGame(mockInitial, nil)

	assert.NoError(t, g.Update())
	assert.Equal(t, 1, mockInitial.updateCalled, "Update should delegate to current scene")
}

func TestGame_Layout(t *testing.T) {
	g := New(&mockScene{}, 480, 270)

	w, h := g.Layout(960, 540)
	assert.Equal(t, 480, w)
	assert.Equal(t, 270, h)
}

func TestGame_SceneTransition(t *testing.T) {
	scene1 := &mockScene{}
	scene2 := &mockScene{}
	scene1.nextScene = scene2

	g := createTestGame(scene1, nil)

	require.NoError(t, g.Update())
	assert.Equal(t, 1, scene1.updateCalled)
	assert.Equal(t, 1, scene1.onExitCalled, "scene1 OnExit called on transition")
	assert.Equal(t, 1, scene2.onEnterCalled, "scene2 OnEnter called on transition")

	require.NoError(t, g.Update())
	assert.Equal(t, 1, scene2.updateCalled)

	g.Close()
	assert.Equal(t, 1, scene2.onExitCalled)
}

func TestGame_UpdateError(t *testing.T) {
	g := createTestGame(&mockScene{updateErr: assert.AnError}, nil)
	assert.ErrorIs(t, g.Update(), assert.AnError)
}

func TestGame_PauseAndStep(t *testing.T) {
	s := &mockScene{}
	pressed := keys{}
	g := createTestGame(s, pressed)

	pressed[KeyPause] = true
	require.NoError(t, g.Update())
	assert.True(t, g.Paused())
	assert.Equal(t, 0, s.updateCalled, "pausing holds the tick")

	pressed[KeyPause] = false
	for i := 0; i < 3; i++ {
		require.NoError(t, g.Update())
	}
	assert.Equal(t, 0, s.updateCalled)

	pressed[KeyStep] = true
	require.NoError(t, g.Update())
	assert.Equal(t, 1, s.updateCalled, "step runs exactly one tick")

	pressed[KeyStep] = false
	pressed[KeyPause] = true
	require.NoError(t, g.Update())
	assert.False(t, g.Paused())
	assert.Equal(t, 2, s.updateCalled)
}

package app

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/patternquest/pkg/types"
)

// mockScene 记录调用情况
type mockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

func (m *mockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *mockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("expected no current scene initially")
	}
	// 没有场景时调用不应 panic
	sm.Update(0.016)
	sm.Draw(nil)
}

func TestSceneManagerUpdateAndDraw(t *testing.T) {
	sm := NewSceneManager()
	scene := &mockScene{}
	sm.SwitchTo(scene)

	sm.Update(0.016)
	if !scene.updateCalled || scene.deltaTime != 0.016 {
		t.Errorf("Update not forwarded: called=%v delta=%v", scene.updateCalled, scene.deltaTime)
	}

	sm.Draw(nil)
	if !scene.drawCalled {
		t.Error("Draw not forwarded")
	}
}

func TestSceneManagerLoadPattern(t *testing.T) {
	sm := NewSceneManager()
	menu := &mockScene{}
	sm.SetMenu(menu)
	sm.SwitchTo(menu)

	// 未设置工厂时保持当前场景
	sm.LoadPattern(types.PatternObserver)
	if sm.GetCurrentScene() != menu {
		t.Fatal("scene changed without a factory")
	}

	var requested types.PatternType
	play := &mockScene{}
	sm.SetSceneFactory(func(p types.PatternType) Scene {
		requested = p
		return play
	})
	sm.LoadPattern(types.PatternFactory)
	if requested != types.PatternFactory || sm.GetCurrentScene() != play {
		t.Errorf("LoadPattern: requested=%v current=%v", requested, sm.GetCurrentScene())
	}

	sm.BackToMenu()
	if sm.GetCurrentScene() != menu {
		t.Error("BackToMenu did not restore the menu")
	}
}

func TestSceneManagerFactoryReturnsNil(t *testing.T) {
	sm := NewSceneManager()
	menu := &mockScene{}
	sm.SwitchTo(menu)
	sm.SetSceneFactory(func(types.PatternType) Scene { return nil })

	sm.LoadPattern(types.PatternStrategy)
	if sm.GetCurrentScene() != menu {
		t.Error("nil scene from factory replaced the current scene")
	}
}

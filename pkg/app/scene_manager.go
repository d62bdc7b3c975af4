package app

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/patternquest/pkg/logger"
	"github.com/decker502/patternquest/pkg/types"
)

// SceneFactory 为指定模式创建小游戏场景，避免场景之间循环依赖
type SceneFactory func(pattern types.PatternType) Scene

// SceneManager 控制当前活动的场景
// 同一时刻只有一个场景的 Update 和 Draw 被调用
type SceneManager struct {
	currentScene Scene
	menu         Scene
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SetMenu 设置模式选择场景
func (sm *SceneManager) SetMenu(menu Scene) {
	sm.menu = menu
}

// SwitchTo 切换活动场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadPattern 切换到指定模式的小游戏场景
func (sm *SceneManager) LoadPattern(pattern types.PatternType) {
	log := logger.For("SceneManager").WithField("pattern", pattern)
	if sm.sceneFactory == nil {
		log.Error("scene factory not set")
		return
	}
	scene := sm.sceneFactory(pattern)
	if scene == nil {
		log.Error("failed to create scene")
		return
	}
	sm.SwitchTo(scene)
	log.Debug("scene switched")
}

// BackToMenu 回到模式选择场景
func (sm *SceneManager) BackToMenu() {
	if sm.menu != nil {
		sm.SwitchTo(sm.menu)
	}
}

// Update 更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

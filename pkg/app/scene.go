package app

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个画面（模式选择、小游戏）
// 每个场景有自己的更新和绘制逻辑
type Scene interface {
	// Update 按经过的时间（秒）更新场景
	Update(deltaTime float64)

	// Draw 绘制场景
	Draw(screen *ebiten.Image)
}

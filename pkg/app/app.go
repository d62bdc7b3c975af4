// Package app 提供桌面调试前端
//
// 每个模式对应一个文本场景，按键映射到会话操作，画面只读取会话快照。
// main.go 通过 NewApp() 创建并交给 ebiten.RunGame。
package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/game"
	"github.com/decker502/patternquest/pkg/logger"
	"github.com/decker502/patternquest/pkg/session"
	"github.com/decker502/patternquest/pkg/types"
)

const (
	// ScreenWidth 逻辑屏幕宽度
	ScreenWidth = 800
	// ScreenHeight 逻辑屏幕高度
	ScreenHeight = 600
)

// Config 定义前端启动配置
type Config struct {
	// Profile 使用的存档用户名
	Profile string
	// Seed 随机种子，0 表示使用当前时间
	Seed uint64
	// Pattern 不为空时跳过菜单直接开始该模式
	Pattern types.PatternType
}

// App 实现 ebiten.Game 接口
type App struct {
	sceneManager *SceneManager
	session      *session.Session

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建前端
// settings 可以为 nil，此时使用默认设置
func NewApp(cfg Config, content *config.Content, settings *game.SettingsManager) (*App, error) {
	profiles := game.NewProfileManager(content)
	ctrl, err := profiles.Ensure(cfg.Profile)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", cfg.Profile, err)
	}

	if settings == nil {
		settings = game.NewSettingsManager(nil)
	}
	s := session.New(content, ctrl, session.WithSeed(cfg.Seed), session.WithSettings(settings.GetSettings()))

	sm := NewSceneManager()
	sm.SetSceneFactory(func(p types.PatternType) Scene {
		return NewPlayScene(s, sm, content, p)
	})
	menu := NewMenuScene(s, sm, settings)
	sm.SetMenu(menu)
	sm.SwitchTo(menu)

	if cfg.Pattern != types.PatternNone {
		menu.start(cfg.Pattern)
	}

	logger.For("App").WithFields(logrus.Fields{
		"profile": cfg.Profile,
		"seed":    cfg.Seed,
	}).Info("app initialized")

	return &App{sceneManager: sm, session: s}, nil
}

// Update 每个 tick 调用一次
func (a *App) Update() error {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 退出全屏后窗口管理器需要几帧才能接受新尺寸
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 20, B: 48, A: 255})
	a.sceneManager.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Session 返回前端使用的会话
func (a *App) Session() *session.Session {
	return a.session
}

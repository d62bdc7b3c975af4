package app

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/patternquest/pkg/game"
	"github.com/decker502/patternquest/pkg/session"
	"github.com/decker502/patternquest/pkg/types"
)

// MenuScene 模式选择，数字键开始对应模式的下一关
// D/M/-/= 调整难度、音效和动画速度
type MenuScene struct {
	session  *session.Session
	manager  *SceneManager
	settings *game.SettingsManager
	message  string
}

// NewMenuScene 创建模式选择场景
func NewMenuScene(s *session.Session, manager *SceneManager, settings *game.SettingsManager) *MenuScene {
	return &MenuScene{session: s, manager: manager, settings: settings}
}

// Update 处理数字键和设置键
func (m *MenuScene) Update(deltaTime float64) {
	m.showUnlockNotice()
	for i, p := range types.AllPatterns {
		if inpututil.IsKeyJustPressed(digitKeys[i]) {
			m.start(p)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		m.cycleDifficulty()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		m.toggleSound()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		m.scaleAnimation(0.5)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		m.scaleAnimation(2)
	}
}

// showUnlockNotice 关卡解锁新模式后提示一次
func (m *MenuScene) showUnlockNotice() {
	if p := m.session.TakeUnlockNotice(); p != types.PatternNone {
		m.message = fmt.Sprintf("new pattern unlocked: %s", p)
	}
}

func (m *MenuScene) cycleDifficulty() {
	next := m.settings.GetSettings().Difficulty.Next()
	m.updateSettings(game.SettingsUpdate{Difficulty: &next})
}

func (m *MenuScene) toggleSound() {
	on := !m.settings.GetSettings().SoundEnabled
	m.updateSettings(game.SettingsUpdate{SoundEnabled: &on})
}

func (m *MenuScene) scaleAnimation(factor float64) {
	speed := m.settings.GetSettings().AnimationSpeed * factor
	m.updateSettings(game.SettingsUpdate{AnimationSpeed: &speed})
}

// updateSettings 修改设置并推送给会话，持久化在退出时统一进行
func (m *MenuScene) updateSettings(u game.SettingsUpdate) {
	settings, err := m.settings.Update(u)
	if err != nil {
		m.message = err.Error()
		return
	}
	m.session.ApplySettings(settings)
	m.message = ""
}

func (m *MenuScene) start(p types.PatternType) {
	level := m.session.PatternStatus(p).ResumeLevel
	ok, err := m.session.Start(p, level)
	switch {
	case err != nil:
		m.message = err.Error()
	case !ok:
		m.message = "cannot start now"
	default:
		m.message = ""
		m.manager.LoadPattern(p)
	}
}

// Draw 绘制模式列表
func (m *MenuScene) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, m.text())
}

func (m *MenuScene) text() string {
	settings := m.settings.GetSettings()
	var b strings.Builder
	fmt.Fprintf(&b, "PATTERN QUEST  score=%d\n\n", m.session.Snapshot().Progress.TotalScore)
	for i, p := range types.AllPatterns {
		st := m.session.PatternStatus(p)
		state := "locked"
		switch {
		case st.Completed:
			state = "completed"
		case st.Unlocked:
			state = fmt.Sprintf("level %d", st.ResumeLevel)
		}
		fmt.Fprintf(&b, "%d. %-10s %s\n", i+1, p, state)
	}
	fmt.Fprintf(&b, "\ndifficulty=%s  sound=%v  speed=x%g\n", settings.Difficulty, settings.SoundEnabled, settings.AnimationSpeed)
	b.WriteString("D: difficulty  M: sound  -/=: animation speed\n")
	if m.message != "" {
		fmt.Fprintf(&b, "\n%s\n", m.message)
	}
	return b.String()
}

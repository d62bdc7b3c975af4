package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/logger"
	"github.com/decker502/patternquest/pkg/session"
	"github.com/decker502/patternquest/pkg/types"
)

// messageSeconds 操作结果在屏幕上停留的时间
const messageSeconds = 3.0

// PlayScene 一个小游戏关卡
type PlayScene struct {
	session  *session.Session
	manager  *SceneManager
	pattern  types.PatternType
	bindings []Binding

	message    string
	messageTTL float64
}

// NewPlayScene 为已开始的关卡创建场景
func NewPlayScene(s *session.Session, manager *SceneManager, content *config.Content, pattern types.PatternType) *PlayScene {
	var bindings []Binding
	if snap := s.Snapshot(); snap.Level != nil {
		if level, ok := content.Level(pattern, snap.Level.ID); ok {
			bindings = BindingsFor(pattern, level, content.Catalog)
		}
	}
	return &PlayScene{
		session:  s,
		manager:  manager,
		pattern:  pattern,
		bindings: bindings,
	}
}

// Update 处理按键
func (p *PlayScene) Update(deltaTime float64) {
	if p.messageTTL > 0 {
		p.messageTTL -= deltaTime
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		// 放弃当前关卡：暂停中的关卡先恢复再判负
		p.session.Resume()
		p.session.Fail()
		p.session.Reset()
		p.manager.BackToMenu()
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		if !p.session.Pause() {
			p.session.Resume()
		}
		return
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		if p.session.Reset() {
			p.manager.BackToMenu()
		}
		return
	}

	for _, b := range p.bindings {
		if inpututil.IsKeyJustPressed(b.Key) {
			p.run(b)
		}
	}
}

func (p *PlayScene) run(b Binding) {
	msg, err := b.Run(p.session)
	if err != nil {
		logger.For("PlayScene").WithError(err).WithField("action", b.Label).Debug("action rejected")
		msg = err.Error()
	}
	p.message = msg
	p.messageTTL = messageSeconds
}

// Draw 绘制关卡状态和按键说明
func (p *PlayScene) Draw(screen *ebiten.Image) {
	snap := p.session.Snapshot()
	text := Render(snap)
	if p.messageTTL > 0 && p.message != "" {
		text += "\n> " + p.message + "\n"
	}
	text += "\n" + Help(p.bindings)
	if st := snap.Progress.Status; st == types.StatusCompleted || st == types.StatusFailed {
		text += "\nEnter: back to menu"
	}
	ebitenutil.DebugPrint(screen, text)
}

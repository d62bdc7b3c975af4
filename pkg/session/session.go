// Package session 把一个用户的进度控制器、当前关卡与小游戏实例绑定在一起
//
// 所有领域操作都经过 Session：检查关卡是否在进行中，调用小游戏，
// 然后自动运行一次完成检查。Session 内部加锁，可被多个 HTTP 请求共享。
package session

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/game"
	"github.com/decker502/patternquest/pkg/games/strategy"
	"github.com/decker502/patternquest/pkg/logger"
	"github.com/decker502/patternquest/pkg/objective"
	"github.com/decker502/patternquest/pkg/patterns"
	"github.com/decker502/patternquest/pkg/types"
)

// Recorder 记录领域操作的结果，metrics.Recorder 实现了它
type Recorder interface {
	Action(pattern types.PatternType, action string, err error)
}

type nopRecorder struct{}

func (nopRecorder) Action(types.PatternType, string, error) {}

// Option Session 选项
type Option func(*Session)

// WithRand 注入随机源，用于战斗暴击与敌人出招
func WithRand(rng strategy.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithSeed 使用固定种子的 PCG 随机源，seed 为 0 时按当前时间播种
func WithSeed(seed uint64) Option {
	return func(s *Session) { s.rng = NewRand(seed) }
}

// WithClock 注入时钟
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithSettings 应用用户设置（目前使用动画速度）
func WithSettings(settings game.GameSettings) Option {
	return func(s *Session) { s.animationSpeed = settings.AnimationSpeed }
}

// WithRecorder 注入操作记录器
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewRand 创建 PCG 随机源，seed 为 0 时按当前时间播种
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Session 一个用户的游戏会话
type Session struct {
	mu sync.Mutex

	content  *config.Content
	ctrl     *game.Controller
	games    *patterns.Factory[buildParams, MiniGame]
	recorder Recorder

	rng            strategy.Rand
	now            func() time.Time
	animationSpeed float64

	pattern    types.PatternType
	level      *config.LevelConfig
	objectives []objective.Objective
	current    MiniGame
	statuses   []objective.Status
}

// New 创建会话
func New(content *config.Content, ctrl *game.Controller, opts ...Option) *Session {
	s := &Session{
		content:        content,
		ctrl:           ctrl,
		games:          newGameFactory(),
		recorder:       nopRecorder{},
		now:            time.Now,
		animationSpeed: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRand(0)
	}
	return s
}

// Controller 会话绑定的进度控制器
func (s *Session) Controller() *game.Controller {
	return s.ctrl
}

func (s *Session) log() *logrus.Entry {
	return logger.For("Session").WithField("pattern", s.pattern)
}

// Start 加载关卡并开始游戏
//
// 返回：
//   - bool: 是否开始；状态不是 idle 时为 false（空操作）
//   - error: 模式未解锁返回 ErrPatternLocked，关卡不存在返回 ErrUnknownLevel
func (s *Session) Start(pattern types.PatternType, levelID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ctrl.IsPatternUnlocked(pattern) {
		return false, fmt.Errorf("%w: %s", ErrPatternLocked, pattern)
	}
	level, ok := s.content.Level(pattern, levelID)
	if !ok {
		return false, fmt.Errorf("%w: %s-%d", ErrUnknownLevel, pattern, levelID)
	}
	if s.ctrl.Status() != types.StatusIdle {
		return false, nil
	}

	g, err := s.games.Create(pattern.String(), buildParams{
		level:          level,
		catalog:        s.content.Catalog,
		rng:            s.rng,
		now:            s.now,
		animationSpeed: s.animationSpeed,
	})
	if err != nil {
		return false, fmt.Errorf("failed to build %s level %d: %w", pattern, levelID, err)
	}
	if !s.ctrl.Start(pattern, levelID) {
		return false, nil
	}

	s.pattern = pattern
	s.level = level
	s.objectives = objective.FromConfig(level.Objectives)
	s.current = g
	s.statuses = objective.EvaluateSource(s.objectives, g)

	s.log().WithField("level_id", levelID).Info("level started")
	return true, nil
}

// Pause 暂停
func (s *Session) Pause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Pause()
}

// Resume 继续
func (s *Session) Resume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Resume()
}

// Fail 判定关卡失败
func (s *Session) Fail() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Fail()
}

// Reset 回到 idle 并卸载小游戏
func (s *Session) Reset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ctrl.Reset() {
		return false
	}
	s.unload()
	return true
}

// ResetProgress 卸载当前关卡并把进度恢复为初始值，任何状态下都可调用
func (s *Session) ResetProgress() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unload()
	s.ctrl.ResetProgress()
	s.log().Info("progress reset")
}

// closer 由持有需要释放资源的小游戏实现
type closer interface {
	Close()
}

func (s *Session) unload() {
	if c, ok := s.current.(closer); ok {
		c.Close()
	}
	s.pattern = types.PatternNone
	s.level = nil
	s.objectives = nil
	s.current = nil
	s.statuses = nil
}

// ApplySettings 更新用户设置，从下一次 Start 开始生效
func (s *Session) ApplySettings(settings game.GameSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.animationSpeed = settings.AnimationSpeed
}

// PatternStatus 模式的解锁与完成情况
type PatternStatus struct {
	Pattern   types.PatternType `json:"pattern"`
	Unlocked  bool              `json:"unlocked"`
	Completed bool              `json:"completed"`
	// ResumeLevel 第一个未完成的关卡
	ResumeLevel int `json:"resumeLevel"`
}

// PatternStatus 返回指定模式的进度
func (s *Session) PatternStatus(p types.PatternType) PatternStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PatternStatus{
		Pattern:     p,
		Unlocked:    s.ctrl.IsPatternUnlocked(p),
		Completed:   s.ctrl.IsPatternCompleted(p),
		ResumeLevel: s.ctrl.ResumeLevel(p),
	}
}

// TakeUnlockNotice 取出待展示的解锁提示，每次解锁只返回一次
func (s *Session) TakeUnlockNotice() types.PatternType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.TakeUnlockNotice()
}

// CheckCompletion 评估当前目标并尝试完成关卡
func (s *Session) CheckCompletion() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkCompletion()
}

func (s *Session) checkCompletion() bool {
	if s.current == nil {
		return false
	}
	s.statuses = objective.EvaluateSource(s.objectives, s.current)
	return s.ctrl.CheckCompletion(s.statuses)
}

// finisher 由会自行结束的小游戏实现（战斗分出胜负）
type finisher interface {
	Over() bool
	Lost() bool
}

// afterAction 每个领域操作成功后调用
//
// 小游戏结束时关卡也随之结束：落败直接失败，
// 获胜但目标未全部达成同样判定失败，否则关卡会停在 playing 无法继续。
func (s *Session) afterAction() {
	f, finishes := s.current.(finisher)
	if finishes && f.Lost() {
		s.statuses = objective.EvaluateSource(s.objectives, s.current)
		s.fail("defeated")
		return
	}
	if s.checkCompletion() {
		return
	}
	if finishes && f.Over() {
		s.fail("finished with objectives unmet")
	}
}

func (s *Session) fail(reason string) {
	if s.ctrl.Fail() {
		s.log().WithField("reason", reason).Info("level failed")
	}
}

// act 对当前小游戏执行一次领域操作
func act[G MiniGame, R any](s *Session, pattern types.PatternType, action string, fn func(G) (R, error)) (R, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero R
	g, ok := s.current.(G)
	if !ok {
		err := fmt.Errorf("%w: %s on %s", ErrWrongPattern, action, s.pattern)
		s.recorder.Action(pattern, action, err)
		return zero, err
	}
	if s.ctrl.Status() != types.StatusPlaying {
		err := fmt.Errorf("%w: %s", ErrNotPlaying, s.ctrl.Status())
		s.recorder.Action(pattern, action, err)
		return zero, err
	}

	r, err := fn(g)
	s.recorder.Action(pattern, action, err)
	if err != nil {
		return zero, err
	}
	s.afterAction()
	return r, nil
}

// Snapshot 会话的只读视图
type Snapshot struct {
	Progress   game.ProgressSnapshot `json:"progress"`
	Level      *LevelInfo            `json:"level,omitempty"`
	Objectives []objective.Status    `json:"objectives"`
	Complete   bool                  `json:"complete"`
	Game       any                   `json:"game,omitempty"`
}

// LevelInfo 关卡的展示信息
type LevelInfo struct {
	Pattern     types.PatternType `json:"pattern"`
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Story       string            `json:"story,omitempty"`
	Hints       []string          `json:"hints,omitempty"`
	Reward      int               `json:"reward"`
}

// Snapshot 返回当前会话状态
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Progress:   s.ctrl.Snapshot(),
		Objectives: append([]objective.Status(nil), s.statuses...),
	}
	if s.level != nil {
		snap.Level = &LevelInfo{
			Pattern:     s.pattern,
			ID:          s.level.ID,
			Name:        s.level.Name,
			Description: s.level.Description,
			Story:       s.level.Story,
			Hints:       s.level.Hints,
			Reward:      s.level.Reward,
		}
		snap.Complete = objective.AllSatisfied(s.statuses)
	}
	if s.current != nil {
		snap.Game = gameSnapshot(s.current)
	}
	return snap
}

// Package game 关卡进度控制器
//
// Controller 持有当前模式、关卡、积分与解锁状态，只接受目标评估的结论，
// 不直接读取小游戏内部状态。所有非法的状态迁移都是静默的空操作。
package game

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/logger"
	"github.com/decker502/patternquest/pkg/objective"
	"github.com/decker502/patternquest/pkg/patterns"
	"github.com/decker502/patternquest/pkg/types"
)

// LevelCatalog 控制器查询关卡所需的接口，*config.Content 实现了它
type LevelCatalog interface {
	LevelSet(p types.PatternType) (*config.LevelSet, bool)
}

// Transition 一次状态迁移，广播给控制器的观察者
type Transition struct {
	From    types.GameStatus
	To      types.GameStatus
	Pattern types.PatternType
	Level   int
	Reward  int // 仅 completed 迁移时非零
}

// Controller 关卡进度状态机
type Controller struct {
	levels LevelCatalog

	pattern types.PatternType
	level   int
	score   int
	status  types.GameStatus

	completedLevels map[string]bool
	completed       *PatternSet
	unlocked        *PatternSet

	events *patterns.Subject[Transition]
}

// NewController 创建控制器，初始解锁第一个模式，状态为 idle
func NewController(levels LevelCatalog) *Controller {
	c := &Controller{
		levels: levels,
		events: patterns.NewSubject[Transition]("progression"),
	}
	c.ResetProgress()
	return c
}

// Events 状态迁移主题，观察者可订阅所有迁移
func (c *Controller) Events() *patterns.Subject[Transition] {
	return c.events
}

func (c *Controller) log() *logrus.Entry {
	return logger.For("Progression").WithFields(logrus.Fields{
		"pattern":  c.pattern,
		"level_id": c.level,
		"status":   c.status,
	})
}

func (c *Controller) transition(to types.GameStatus, reward int) {
	t := Transition{From: c.status, To: to, Pattern: c.pattern, Level: c.level, Reward: reward}
	c.status = to
	c.events.Notify(t)
}

// currentLevel 当前关卡配置，未选择关卡时返回 nil
func (c *Controller) currentLevel() (*config.LevelSet, *config.LevelConfig) {
	set, ok := c.levels.LevelSet(c.pattern)
	if !ok {
		return nil, nil
	}
	level, ok := set.Level(c.level)
	if !ok {
		return set, nil
	}
	return set, level
}

// Start idle → playing
//
// 模式未解锁或关卡不存在时不做任何修改
func (c *Controller) Start(pattern types.PatternType, level int) bool {
	if c.status != types.StatusIdle {
		c.log().Debug("start ignored: not idle")
		return false
	}
	if !c.unlocked.Contains(pattern) {
		c.log().WithField("target", pattern).Debug("start ignored: pattern locked")
		return false
	}
	set, ok := c.levels.LevelSet(pattern)
	if !ok {
		return false
	}
	if _, ok := set.Level(level); !ok {
		c.log().WithField("target", pattern).Debugf("start ignored: no level %d", level)
		return false
	}

	c.pattern = pattern
	c.level = level
	c.transition(types.StatusPlaying, 0)
	return true
}

// Pause playing → paused
func (c *Controller) Pause() bool {
	if c.status != types.StatusPlaying {
		c.log().Debug("pause ignored")
		return false
	}
	c.transition(types.StatusPaused, 0)
	return true
}

// Resume paused → playing
func (c *Controller) Resume() bool {
	if c.status != types.StatusPaused {
		c.log().Debug("resume ignored")
		return false
	}
	c.transition(types.StatusPlaying, 0)
	return true
}

// CheckCompletion 根据目标评估结果尝试完成关卡
//
// 仅在 playing 且全部目标满足时迁移到 completed：奖励计入积分，关卡记为完成，
// 触发该关卡的解锁规则。本模式最后一关完成时模式记为完成并解锁下一个模式。
// 完成之后重复调用不会重复发放奖励。
func (c *Controller) CheckCompletion(statuses []objective.Status) bool {
	if c.status != types.StatusPlaying || !objective.AllSatisfied(statuses) {
		return false
	}

	set, level := c.currentLevel()
	if level == nil {
		return false
	}

	c.score += level.Reward
	c.completedLevels[level.Key(c.pattern)] = true
	if level.Unlocks != types.PatternNone {
		c.unlocked.Add(level.Unlocks)
	}
	if set.IsFinal(level.ID) {
		c.completed.Add(c.pattern)
		c.unlocked.Add(NextPattern(c.pattern))
	}

	c.log().WithField("reward", level.Reward).Info("level completed")
	c.transition(types.StatusCompleted, level.Reward)
	return true
}

// Fail playing → failed，由小游戏决定何时失败
func (c *Controller) Fail() bool {
	if c.status != types.StatusPlaying {
		c.log().Debug("fail ignored")
		return false
	}
	c.transition(types.StatusFailed, 0)
	return true
}

// Reset completed|failed → idle
//
// 清空当前模式并回到第 1 关，积分与解锁、完成记录保留
func (c *Controller) Reset() bool {
	if c.status != types.StatusCompleted && c.status != types.StatusFailed {
		c.log().Debug("reset ignored")
		return false
	}
	c.transition(types.StatusIdle, 0)
	c.pattern = types.PatternNone
	c.level = 1
	return true
}

// ResetProgress 恢复全部初始值
func (c *Controller) ResetProgress() {
	c.pattern = types.PatternNone
	c.level = 1
	c.score = 0
	c.status = types.StatusIdle
	c.completedLevels = make(map[string]bool)
	c.completed = NewPatternSet()
	c.unlocked = NewPatternSet(types.AllPatterns[0])
}

// TakeUnlockNotice 取出最近一次新解锁的模式并清除记录，没有时返回 PatternNone
func (c *Controller) TakeUnlockNotice() types.PatternType {
	p := c.unlocked.LastAdded()
	c.unlocked.ClearLastAdded()
	return p
}

// UnlockPattern 直接解锁模式，返回是否为新解锁
func (c *Controller) UnlockPattern(p types.PatternType) bool {
	return c.unlocked.Add(p)
}

// AddScore 累加积分，非正数被忽略
func (c *Controller) AddScore(points int) {
	if points <= 0 {
		return
	}
	c.score += points
}

// Status 当前状态
func (c *Controller) Status() types.GameStatus {
	return c.status
}

// Current 当前模式与关卡
func (c *Controller) Current() (types.PatternType, int) {
	return c.pattern, c.level
}

// Score 累计积分
func (c *Controller) Score() int {
	return c.score
}

// IsPatternUnlocked 模式是否已解锁
func (c *Controller) IsPatternUnlocked(p types.PatternType) bool {
	return c.unlocked.Contains(p)
}

// IsPatternCompleted 模式是否已完成
func (c *Controller) IsPatternCompleted(p types.PatternType) bool {
	return c.completed.Contains(p)
}

// IsLevelCompleted 关卡是否已完成
func (c *Controller) IsLevelCompleted(p types.PatternType, level int) bool {
	return c.completedLevels[config.LevelKey(p, level)]
}

// NextLevel 当前模式中下一关的序号，没有下一关时返回 false
func (c *Controller) NextLevel() (int, bool) {
	set, ok := c.levels.LevelSet(c.pattern)
	if !ok {
		return 0, false
	}
	for i, l := range set.Levels {
		if l.ID == c.level && i+1 < len(set.Levels) {
			return set.Levels[i+1].ID, true
		}
	}
	return 0, false
}

// ResumeLevel 模式中第一个未完成的关卡，全部完成时返回第一关
func (c *Controller) ResumeLevel(p types.PatternType) int {
	set, ok := c.levels.LevelSet(p)
	if !ok || len(set.Levels) == 0 {
		return 1
	}
	for _, l := range set.Levels {
		if !c.IsLevelCompleted(p, l.ID) {
			return l.ID
		}
	}
	return set.Levels[0].ID
}

// ProgressSnapshot 进度状态的只读副本
type ProgressSnapshot struct {
	CurrentPattern    types.PatternType   `json:"currentPattern"`
	CurrentLevel      int                 `json:"currentLevel"`
	TotalScore        int                 `json:"totalScore"`
	Status            types.GameStatus    `json:"status"`
	CompletedLevels   []string            `json:"completedLevels"`
	CompletedPatterns []types.PatternType `json:"completedPatterns"`
	UnlockedPatterns  []types.PatternType `json:"unlockedPatterns"`
	LastUnlocked      types.PatternType   `json:"lastUnlocked,omitempty"`
}

// Snapshot 返回当前进度的副本
func (c *Controller) Snapshot() ProgressSnapshot {
	levels := make([]string, 0, len(c.completedLevels))
	for key := range c.completedLevels {
		levels = append(levels, key)
	}
	slices.Sort(levels)

	return ProgressSnapshot{
		CurrentPattern:    c.pattern,
		CurrentLevel:      c.level,
		TotalScore:        c.score,
		Status:            c.status,
		CompletedLevels:   levels,
		CompletedPatterns: c.completed.List(),
		UnlockedPatterns:  c.unlocked.List(),
		LastUnlocked:      c.unlocked.LastAdded(),
	}
}

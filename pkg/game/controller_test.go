package game

import (
	"slices"
	"testing"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/objective"
	"github.com/decker502/patternquest/pkg/patterns"
	"github.com/decker502/patternquest/pkg/types"
)

type fakeLevels map[types.PatternType]*config.LevelSet

func (f fakeLevels) LevelSet(p types.PatternType) (*config.LevelSet, bool) {
	s, ok := f[p]
	return s, ok
}

func testLevels() fakeLevels {
	return fakeLevels{
		types.PatternObserver: {
			Pattern: types.PatternObserver,
			Levels: []config.LevelConfig{
				{ID: 1, Reward: 100},
				{ID: 2, Reward: 150, Unlocks: types.PatternFactory},
				{ID: 3, Reward: 200},
			},
		},
		types.PatternSingleton: {
			Pattern: types.PatternSingleton,
			Levels:  []config.LevelConfig{{ID: 1, Reward: 50}},
		},
		types.PatternFactory: {
			Pattern: types.PatternFactory,
			Levels:  []config.LevelConfig{{ID: 1, Reward: 75}},
		},
	}
}

var (
	satisfied   = []objective.Status{{Satisfied: true}, {Satisfied: true}}
	unsatisfied = []objective.Status{{Satisfied: true}, {Satisfied: false}}
)

type transitionRecorder struct {
	id  patterns.InstanceID
	got []Transition
}

func (r *transitionRecorder) ID() patterns.InstanceID { return r.id }
func (r *transitionRecorder) Update(t Transition)     { r.got = append(r.got, t) }

func TestNewControllerInitialState(t *testing.T) {
	c := NewController(testLevels())
	snap := c.Snapshot()

	if snap.Status != types.StatusIdle {
		t.Errorf("Status = %v, want idle", snap.Status)
	}
	if snap.CurrentPattern != types.PatternNone || snap.CurrentLevel != 1 {
		t.Errorf("current = %q/%d, want none/1", snap.CurrentPattern, snap.CurrentLevel)
	}
	if !slices.Equal(snap.UnlockedPatterns, []types.PatternType{types.PatternObserver}) {
		t.Errorf("UnlockedPatterns = %v, want [observer]", snap.UnlockedPatterns)
	}
	if snap.TotalScore != 0 || len(snap.CompletedPatterns) != 0 || len(snap.CompletedLevels) != 0 {
		t.Errorf("unexpected initial progress: %+v", snap)
	}
}

// TestCompletionAwardsRewardOnce 完成检查多次调用只发放一次奖励
func TestCompletionAwardsRewardOnce(t *testing.T) {
	c := NewController(testLevels())

	if !c.Start(types.PatternObserver, 1) {
		t.Fatal("Start() should succeed")
	}
	if c.CheckCompletion(unsatisfied) {
		t.Error("CheckCompletion() with unsatisfied objectives should not complete")
	}
	if !c.CheckCompletion(satisfied) {
		t.Fatal("CheckCompletion() should complete the level")
	}
	for range 3 {
		if c.CheckCompletion(satisfied) {
			t.Error("repeated CheckCompletion() must be a no-op")
		}
	}

	if c.Status() != types.StatusCompleted {
		t.Errorf("Status = %v, want completed", c.Status())
	}
	if c.Score() != 100 {
		t.Errorf("Score = %d, want 100", c.Score())
	}
	if !c.IsLevelCompleted(types.PatternObserver, 1) {
		t.Error("observer-1 should be completed")
	}
}

func TestEmptyObjectivesComplete(t *testing.T) {
	c := NewController(testLevels())
	c.Start(types.PatternObserver, 1)

	if !c.CheckCompletion(nil) {
		t.Error("a level without objectives should complete on the first check")
	}
}

func TestInvalidTransitionsAreNoOps(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(c *Controller)
		action func(c *Controller) bool
		want   types.GameStatus
	}{
		{"空闲时暂停", func(c *Controller) {}, (*Controller).Pause, types.StatusIdle},
		{"空闲时继续", func(c *Controller) {}, (*Controller).Resume, types.StatusIdle},
		{"空闲时失败", func(c *Controller) {}, (*Controller).Fail, types.StatusIdle},
		{"空闲时重置", func(c *Controller) {}, (*Controller).Reset, types.StatusIdle},
		{"进行中重置", func(c *Controller) { c.Start(types.PatternObserver, 1) }, (*Controller).Reset, types.StatusPlaying},
		{"进行中继续", func(c *Controller) { c.Start(types.PatternObserver, 1) }, (*Controller).Resume, types.StatusPlaying},
		{"暂停时失败", func(c *Controller) { c.Start(types.PatternObserver, 1); c.Pause() }, (*Controller).Fail, types.StatusPaused},
		{"暂停时完成", func(c *Controller) { c.Start(types.PatternObserver, 1); c.Pause() },
			func(c *Controller) bool { return c.CheckCompletion(satisfied) }, types.StatusPaused},
		{"失败后暂停", func(c *Controller) { c.Start(types.PatternObserver, 1); c.Fail() }, (*Controller).Pause, types.StatusFailed},
		{"进行中再次开始", func(c *Controller) { c.Start(types.PatternObserver, 1) },
			func(c *Controller) bool { return c.Start(types.PatternObserver, 2) }, types.StatusPlaying},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(testLevels())
			tt.setup(c)
			if tt.action(c) {
				t.Error("invalid transition should return false")
			}
			if c.Status() != tt.want {
				t.Errorf("Status = %v, want %v", c.Status(), tt.want)
			}
		})
	}
}

func TestStartRejectsLockedOrUnknown(t *testing.T) {
	c := NewController(testLevels())

	if c.Start(types.PatternSingleton, 1) {
		t.Error("starting a locked pattern should be a no-op")
	}
	if c.Start(types.PatternObserver, 9) {
		t.Error("starting an unknown level should be a no-op")
	}
	if c.Status() != types.StatusIdle {
		t.Errorf("Status = %v, want idle", c.Status())
	}
}

func TestPauseResume(t *testing.T) {
	c := NewController(testLevels())
	c.Start(types.PatternObserver, 1)

	if !c.Pause() || c.Status() != types.StatusPaused {
		t.Fatalf("Pause() failed, status %v", c.Status())
	}
	if !c.Resume() || c.Status() != types.StatusPlaying {
		t.Fatalf("Resume() failed, status %v", c.Status())
	}
}

// TestResetKeepsHistory 重置清空当前模式但保留积分和解锁记录
func TestResetKeepsHistory(t *testing.T) {
	c := NewController(testLevels())
	c.Start(types.PatternObserver, 2)
	c.CheckCompletion(satisfied)

	if !c.Reset() {
		t.Fatal("Reset() after completion should succeed")
	}
	snap := c.Snapshot()
	if snap.Status != types.StatusIdle || snap.CurrentPattern != types.PatternNone || snap.CurrentLevel != 1 {
		t.Errorf("after reset: %+v", snap)
	}
	if snap.TotalScore != 150 {
		t.Errorf("TotalScore = %d, want 150", snap.TotalScore)
	}
	if !c.IsPatternUnlocked(types.PatternFactory) {
		t.Error("level unlock rule should have unlocked factory")
	}

	c.Start(types.PatternObserver, 1)
	c.Fail()
	if !c.Reset() || c.Status() != types.StatusIdle {
		t.Error("Reset() after failure should return to idle")
	}
}

func TestFinalLevelCompletesPattern(t *testing.T) {
	c := NewController(testLevels())
	c.Start(types.PatternObserver, 3)
	c.CheckCompletion(satisfied)

	if !c.IsPatternCompleted(types.PatternObserver) {
		t.Error("final level should complete the pattern")
	}
	if !c.IsPatternUnlocked(types.PatternSingleton) {
		t.Error("final level should unlock the next pattern")
	}
	if c.Snapshot().LastUnlocked != types.PatternSingleton {
		t.Errorf("LastUnlocked = %q, want singleton", c.Snapshot().LastUnlocked)
	}
	if p := c.TakeUnlockNotice(); p != types.PatternSingleton {
		t.Errorf("TakeUnlockNotice() = %q, want singleton", p)
	}
	if p := c.TakeUnlockNotice(); p != types.PatternNone {
		t.Errorf("second TakeUnlockNotice() = %q, want none", p)
	}
	if _, ok := c.NextLevel(); ok {
		t.Error("final level has no next level")
	}
}

func TestUnlockPattern(t *testing.T) {
	c := NewController(testLevels())

	if !c.UnlockPattern(types.PatternSingleton) {
		t.Error("UnlockPattern(singleton) should return true")
	}
	if c.UnlockPattern(types.PatternSingleton) {
		t.Error("second UnlockPattern(singleton) should return false")
	}
	if !c.Start(types.PatternSingleton, 1) {
		t.Error("unlocked pattern should be startable")
	}
}

func TestNextLevel(t *testing.T) {
	c := NewController(testLevels())
	c.Start(types.PatternObserver, 1)

	next, ok := c.NextLevel()
	if !ok || next != 2 {
		t.Errorf("NextLevel() = %d, %v; want 2, true", next, ok)
	}
}

func TestResumeLevel(t *testing.T) {
	c := NewController(testLevels())
	if got := c.ResumeLevel(types.PatternObserver); got != 1 {
		t.Fatalf("ResumeLevel() = %d, want 1", got)
	}

	c.Start(types.PatternObserver, 1)
	c.CheckCompletion(satisfied)
	c.Reset()
	if got := c.ResumeLevel(types.PatternObserver); got != 2 {
		t.Errorf("ResumeLevel() after level 1 = %d, want 2", got)
	}
	if got := c.ResumeLevel(types.PatternStrategy); got != 1 {
		t.Errorf("ResumeLevel(unknown) = %d, want 1", got)
	}
}

func TestAddScoreAndResetProgress(t *testing.T) {
	c := NewController(testLevels())
	c.AddScore(30)
	c.AddScore(-10)
	c.AddScore(0)
	if c.Score() != 30 {
		t.Errorf("Score = %d, want 30", c.Score())
	}

	c.Start(types.PatternObserver, 3)
	c.CheckCompletion(satisfied)
	c.ResetProgress()

	snap := c.Snapshot()
	if snap.TotalScore != 0 || snap.Status != types.StatusIdle || len(snap.CompletedPatterns) != 0 {
		t.Errorf("ResetProgress() left state behind: %+v", snap)
	}
	if c.IsPatternUnlocked(types.PatternSingleton) {
		t.Error("ResetProgress() should relock patterns")
	}
}

func TestTransitionsAreBroadcast(t *testing.T) {
	c := NewController(testLevels())
	rec := &transitionRecorder{id: patterns.NewInstanceID("rec")}
	c.Events().Attach(rec)

	c.Start(types.PatternObserver, 1)
	c.Pause()
	c.Pause() // 空操作不广播
	c.Resume()
	c.CheckCompletion(satisfied)
	c.Reset()

	want := []types.GameStatus{
		types.StatusPlaying, types.StatusPaused, types.StatusPlaying,
		types.StatusCompleted, types.StatusIdle,
	}
	if len(rec.got) != len(want) {
		t.Fatalf("got %d transitions, want %d", len(rec.got), len(want))
	}
	for i, tr := range rec.got {
		if tr.To != want[i] {
			t.Errorf("transition %d to %v, want %v", i, tr.To, want[i])
		}
	}
	if rec.got[3].Reward != 100 || rec.got[3].Pattern != types.PatternObserver {
		t.Errorf("completed transition = %+v", rec.got[3])
	}
}

// TestControllerWithShippedLevels 使用内置关卡数据走完观察者模式
func TestControllerWithShippedLevels(t *testing.T) {
	content, err := config.LoadContentDir("../../data")
	if err != nil {
		t.Fatalf("LoadContentDir() error: %v", err)
	}
	c := NewController(content)

	set, _ := content.LevelSet(types.PatternObserver)
	total := 0
	for _, level := range set.Levels {
		if !c.Start(types.PatternObserver, level.ID) {
			t.Fatalf("Start(observer, %d) failed", level.ID)
		}
		c.CheckCompletion(satisfied)
		c.Reset()
		total += level.Reward
	}

	if c.Score() != total {
		t.Errorf("Score = %d, want %d", c.Score(), total)
	}
	if !c.IsPatternCompleted(types.PatternObserver) || !c.IsPatternUnlocked(types.PatternSingleton) {
		t.Error("finishing every observer level should complete observer and unlock singleton")
	}
}

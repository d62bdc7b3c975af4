package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/patternquest/pkg/logger"
	"github.com/decker502/patternquest/pkg/types"
)

// 动画速度范围
const (
	MinAnimationSpeed = 0.25
	MaxAnimationSpeed = 4.0
)

// ErrInvalidDifficulty 难度取值不合法
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// GameSettings 全局游戏设置
// 注意：设置是用户偏好，不属于关卡进度
type GameSettings struct {
	Difficulty     types.Difficulty `yaml:"difficulty" json:"difficulty"`
	SoundEnabled   bool             `yaml:"soundEnabled" json:"soundEnabled"`
	AnimationSpeed float64          `yaml:"animationSpeed" json:"animationSpeed"` // 动画速度倍率 0.25 ~ 4
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		Difficulty:     types.DifficultyEasy,
		SoundEnabled:   true,
		AnimationSpeed: 1,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
// 方法可以被多个 goroutine 同时调用
type SettingsManager struct {
	mu           sync.Mutex
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *GameSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，使用默认设置并记录警告
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		logger.For("SettingsManager").WithError(err).Warn("failed to load settings, using defaults")
	}
	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.settings = DefaultSettings()
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	sanitize(loaded)

	sm.settings = loaded
	logger.For("SettingsManager").Debug("settings loaded")
	return nil
}

// Save 保存设置到 gdata，降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	logger.For("SettingsManager").Debug("settings saved")
	return nil
}

// GetSettings 获取当前设置的副本
func (sm *SettingsManager) GetSettings() GameSettings {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return *sm.settings
}

// SettingsUpdate 部分更新，nil 字段保持原值
type SettingsUpdate struct {
	Difficulty     *types.Difficulty `json:"difficulty,omitempty"`
	SoundEnabled   *bool             `json:"soundEnabled,omitempty"`
	AnimationSpeed *float64          `json:"animationSpeed,omitempty"`
}

// Update 一次修改多个字段并返回修改后的设置
// 难度非法时返回 ErrInvalidDifficulty，不修改任何字段
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) Update(u SettingsUpdate) (GameSettings, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if u.Difficulty != nil && !u.Difficulty.Valid() {
		return *sm.settings, fmt.Errorf("%w: %q", ErrInvalidDifficulty, *u.Difficulty)
	}
	if u.Difficulty != nil {
		sm.settings.Difficulty = *u.Difficulty
	}
	if u.SoundEnabled != nil {
		sm.settings.SoundEnabled = *u.SoundEnabled
	}
	if u.AnimationSpeed != nil {
		sm.settings.AnimationSpeed = clampSpeed(*u.AnimationSpeed)
	}
	return *sm.settings, nil
}

// sanitize 修正存档中被手工改坏的字段
func sanitize(s *GameSettings) {
	if !s.Difficulty.Valid() {
		s.Difficulty = types.DifficultyEasy
	}
	s.AnimationSpeed = clampSpeed(s.AnimationSpeed)
}

func clampSpeed(speed float64) float64 {
	return min(max(speed, MinAnimationSpeed), MaxAnimationSpeed)
}

package config

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/patternquest/pkg/types"
)

// MaxCrystalEnergy 水晶能量上限，也是未配置时的初始能量
const MaxCrystalEnergy = 100

// LevelSet 单个设计模式的关卡列表
// 对应 data/levels/<pattern>.yaml
type LevelSet struct {
	Pattern types.PatternType `yaml:"pattern"` // 所属模式，如 "observer"
	Levels  []LevelConfig     `yaml:"levels"`  // 按顺序排列的关卡
}

// LevelConfig 关卡配置数据结构
// 公共字段之外，各模式只读取属于自己的资源字段
type LevelConfig struct {
	ID          int               `yaml:"id"`          // 关卡序号，从 1 开始
	Name        string            `yaml:"name"`        // 关卡名称
	Description string            `yaml:"description"` // 关卡描述（可选）
	Story       string            `yaml:"story"`       // 剧情文本（可选）
	Hints       []string          `yaml:"hints"`       // 提示列表（可选）
	Reward      int               `yaml:"reward"`      // 完成奖励分数，默认 100
	Unlocks     types.PatternType `yaml:"unlocks"`     // 完成后解锁的模式，默认为空
	Objectives  []ObjectiveConfig `yaml:"objectives"`  // 关卡目标

	// 观察者模式
	Towers    []TowerConfig    `yaml:"towers"`
	Creatures []CreatureConfig `yaml:"creatures"`

	// 单例模式
	Wizards         []WizardConfig `yaml:"wizards"`
	CrystalEnergy   int            `yaml:"crystalEnergy"`   // 水晶初始能量，默认 100
	WizardMaxEnergy int            `yaml:"wizardMaxEnergy"` // 魔法师能量上限，默认 50

	// 工厂模式
	Orders []OrderConfig `yaml:"orders"`

	// 策略模式
	Player              *FighterConfig `yaml:"player"`
	Enemies             []string       `yaml:"enemies"`             // 图鉴中的敌人 id，按出场顺序
	AvailableStrategies []string       `yaml:"availableStrategies"` // 默认为图鉴中的全部策略

	// 装饰器模式
	AvailableEquipments   []string `yaml:"availableEquipments"`
	AvailableEnchantments []string `yaml:"availableEnchantments"`
}

// ObjectiveConfig 声明式关卡目标
type ObjectiveConfig struct {
	Type        string  `yaml:"type"`        // 目标类型标签，如 "signal"、"total_stat"
	Target      float64 `yaml:"target"`      // 目标值
	Stat        string  `yaml:"stat"`        // 可选：属性名（total_stat）
	Subtype     string  `yaml:"subtype"`     // 可选：动作子类型（品质、策略、附魔）
	Description string  `yaml:"description"` // 显示文本
}

// TowerConfig 信号塔
type TowerConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// CreatureConfig 魔法生物，Kind 引用图鉴
type CreatureConfig struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`
}

// WizardConfig 魔法师
type WizardConfig struct {
	Name string `yaml:"name"`
}

// OrderConfig 武器订单
type OrderConfig struct {
	Weapon   string `yaml:"weapon"`
	Quality  string `yaml:"quality"`
	Customer string `yaml:"customer"`
	Reward   int    `yaml:"reward"`
}

// FighterConfig 玩家战斗属性
type FighterConfig struct {
	Name    string `yaml:"name"`
	HP      int    `yaml:"hp"`
	Attack  int    `yaml:"attack"`
	Defense int    `yaml:"defense"`
}

// Key 返回关卡的全局唯一标识，如 "observer-1"
func (l *LevelConfig) Key(pattern types.PatternType) string {
	return LevelKey(pattern, l.ID)
}

// LevelKey 由模式和关卡序号组成的标识
func LevelKey(pattern types.PatternType, id int) string {
	return fmt.Sprintf("%s-%d", pattern, id)
}

// Level 按序号查找关卡
func (s *LevelSet) Level(id int) (*LevelConfig, bool) {
	for i := range s.Levels {
		if s.Levels[i].ID == id {
			return &s.Levels[i], true
		}
	}
	return nil, false
}

// IsFinal 判断是否为本模式的最后一关
func (s *LevelSet) IsFinal(id int) bool {
	return len(s.Levels) > 0 && s.Levels[len(s.Levels)-1].ID == id
}

// LoadLevelSet 从YAML文件加载关卡列表
func LoadLevelSet(path string) (*LevelSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", path, err)
	}
	return parseLevelSet(data, path)
}

// LoadLevelSetFS 从文件系统（通常是嵌入的 data 目录）加载关卡列表
func LoadLevelSetFS(fsys fs.FS, path string) (*LevelSet, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", path, err)
	}
	return parseLevelSet(data, path)
}

func parseLevelSet(data []byte, path string) (*LevelSet, error) {
	var set LevelSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML from %s: %w", path, err)
	}

	for i := range set.Levels {
		applyDefaults(&set.Levels[i])
	}

	if err := validateLevelSet(&set); err != nil {
		return nil, fmt.Errorf("invalid level config in %s: %w", path, err)
	}

	return &set, nil
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(level *LevelConfig) {
	if level.Reward == 0 {
		level.Reward = 100
	}

	if level.CrystalEnergy == 0 {
		level.CrystalEnergy = MaxCrystalEnergy
	}

	if level.WizardMaxEnergy == 0 {
		level.WizardMaxEnergy = 50
	}

	if level.Player != nil && level.Player.Name == "" {
		level.Player.Name = "勇者"
	}

	// AvailableStrategies 为空时由策略游戏使用图鉴中的全部策略
}

// validateLevelSet 验证关卡列表的完整性和合法性
func validateLevelSet(set *LevelSet) error {
	if !set.Pattern.Valid() {
		return fmt.Errorf("unknown pattern %q", set.Pattern)
	}

	if len(set.Levels) == 0 {
		return fmt.Errorf("at least one level is required")
	}

	seen := make(map[int]bool, len(set.Levels))
	for i := range set.Levels {
		level := &set.Levels[i]
		if seen[level.ID] {
			return fmt.Errorf("duplicate level id %d", level.ID)
		}
		seen[level.ID] = true

		if err := validateLevelConfig(set.Pattern, level); err != nil {
			return fmt.Errorf("level %d: %w", level.ID, err)
		}
	}

	return nil
}

// validateLevelConfig 验证单个关卡
func validateLevelConfig(pattern types.PatternType, level *LevelConfig) error {
	if level.ID < 1 {
		return fmt.Errorf("level ID must be at least 1, got %d", level.ID)
	}

	if level.Name == "" {
		return fmt.Errorf("level name is required")
	}

	if level.Reward < 0 {
		return fmt.Errorf("reward cannot be negative, got %d", level.Reward)
	}

	if level.Unlocks != types.PatternNone && !level.Unlocks.Valid() {
		return fmt.Errorf("unlocks: unknown pattern %q", level.Unlocks)
	}

	for i, obj := range level.Objectives {
		if obj.Type == "" {
			return fmt.Errorf("objective %d: type is required", i)
		}
		if obj.Target < 0 {
			return fmt.Errorf("objective %d: target cannot be negative, got %v", i, obj.Target)
		}
	}

	switch pattern {
	case types.PatternObserver:
		if len(level.Towers) == 0 {
			return fmt.Errorf("at least one tower is required")
		}
		if len(level.Creatures) == 0 {
			return fmt.Errorf("at least one creature is required")
		}
		ids := make(map[string]bool)
		for i, tower := range level.Towers {
			if tower.ID == "" {
				return fmt.Errorf("tower %d: id is required", i)
			}
			if ids[tower.ID] {
				return fmt.Errorf("duplicate tower id %q", tower.ID)
			}
			ids[tower.ID] = true
		}
		for i, creature := range level.Creatures {
			if creature.ID == "" || creature.Kind == "" {
				return fmt.Errorf("creature %d: id and kind are required", i)
			}
			if ids[creature.ID] {
				return fmt.Errorf("duplicate creature id %q", creature.ID)
			}
			ids[creature.ID] = true
		}

	case types.PatternSingleton:
		if len(level.Wizards) == 0 {
			return fmt.Errorf("at least one wizard is required")
		}
		if level.CrystalEnergy < 0 || level.WizardMaxEnergy < 0 {
			return fmt.Errorf("energy values cannot be negative")
		}
		if level.CrystalEnergy > MaxCrystalEnergy {
			return fmt.Errorf("crystal energy cannot exceed %d, got %d", MaxCrystalEnergy, level.CrystalEnergy)
		}

	case types.PatternFactory:
		if len(level.Orders) == 0 {
			return fmt.Errorf("at least one order is required")
		}
		for i, order := range level.Orders {
			if order.Weapon == "" || order.Quality == "" {
				return fmt.Errorf("order %d: weapon and quality are required", i)
			}
			if order.Reward < 0 {
				return fmt.Errorf("order %d: reward cannot be negative, got %d", i, order.Reward)
			}
		}

	case types.PatternStrategy:
		if level.Player == nil {
			return fmt.Errorf("player is required")
		}
		if level.Player.HP < 1 {
			return fmt.Errorf("player hp must be at least 1, got %d", level.Player.HP)
		}
		if len(level.Enemies) == 0 {
			return fmt.Errorf("at least one enemy is required")
		}

	case types.PatternDecorator:
		if len(level.AvailableEquipments) == 0 {
			return fmt.Errorf("at least one equipment is required")
		}
		if len(level.AvailableEnchantments) == 0 {
			return fmt.Errorf("at least one enchantment is required")
		}
	}

	return nil
}

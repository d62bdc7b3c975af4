package config

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog 各小游戏共享的静态图鉴
// 对应 data/catalog.yaml，加载后只读
type Catalog struct {
	Signals      []SignalSpec      `yaml:"signals"`
	Creatures    []CreatureSpec    `yaml:"creatures"`
	Weapons      []WeaponSpec      `yaml:"weapons"`
	Qualities    []QualitySpec     `yaml:"qualities"`
	Strategies   []StrategySpec    `yaml:"strategies"`
	Enemies      []EnemySpec       `yaml:"enemies"`
	Enchantments []EnchantmentSpec `yaml:"enchantments"`
	Equipment    []EquipmentSpec   `yaml:"equipment"`
}

// StatBlock 装备四维属性
type StatBlock struct {
	Attack  int `yaml:"attack" json:"attack"`
	Defense int `yaml:"defense" json:"defense"`
	Magic   int `yaml:"magic" json:"magic"`
	Speed   int `yaml:"speed" json:"speed"`
}

// Add 返回逐项相加的结果
func (s StatBlock) Add(other StatBlock) StatBlock {
	return StatBlock{
		Attack:  s.Attack + other.Attack,
		Defense: s.Defense + other.Defense,
		Magic:   s.Magic + other.Magic,
		Speed:   s.Speed + other.Speed,
	}
}

// Get 按名称读取属性，未知名称返回 false
func (s StatBlock) Get(name string) (int, bool) {
	switch name {
	case "attack":
		return s.Attack, true
	case "defense":
		return s.Defense, true
	case "magic":
		return s.Magic, true
	case "speed":
		return s.Speed, true
	}
	return 0, false
}

// Total 属性总和
func (s StatBlock) Total() int {
	return s.Attack + s.Defense + s.Magic + s.Speed
}

// SignalSpec 信号类型
type SignalSpec struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// CreatureSpec 生物种类
type CreatureSpec struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	PreferredSignals []string `yaml:"preferredSignals"`
	Description      string   `yaml:"description"`
}

// WeaponSpec 武器种类
type WeaponSpec struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	BaseDamage  int    `yaml:"baseDamage"`
	Description string `yaml:"description"`
}

// QualitySpec 武器品质
type QualitySpec struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	DamageMultiplier float64 `yaml:"damageMultiplier"`
}

// StrategySpec 战斗策略参数
type StrategySpec struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	Description      string  `yaml:"description"`
	AttackScale      float64 `yaml:"attackScale"`
	DefenseReduction float64 `yaml:"defenseReduction"`
	SuperMultiplier  float64 `yaml:"superMultiplier"`
	WeakMultiplier   float64 `yaml:"weakMultiplier"`
	CritChance       float64 `yaml:"critChance"`
	CritMultiplier   float64 `yaml:"critMultiplier"`
	Beats            string  `yaml:"beats"`
	LosesTo          string  `yaml:"losesTo"`
}

// EnemySpec 敌人
type EnemySpec struct {
	ID                  string   `yaml:"id"`
	Name                string   `yaml:"name"`
	HP                  int      `yaml:"hp"`
	Attack              int      `yaml:"attack"`
	Defense             int      `yaml:"defense"`
	PreferredStrategies []string `yaml:"preferredStrategies"`
	Description         string   `yaml:"description"`
}

// EnchantmentSpec 附魔
type EnchantmentSpec struct {
	ID     string    `yaml:"id"`
	Name   string    `yaml:"name"`
	Prefix string    `yaml:"prefix"` // 叠加到装备名前
	Effect string    `yaml:"effect"` // 追加到效果列表
	Stats  StatBlock `yaml:"stats"`
}

// EquipmentSpec 基础装备
type EquipmentSpec struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Stats       StatBlock `yaml:"stats"`
}

// LoadCatalog 从YAML文件加载图鉴
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return parseCatalog(data, path)
}

// LoadCatalogFS 从文件系统加载图鉴
func LoadCatalogFS(fsys fs.FS, path string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return parseCatalog(data, path)
}

func parseCatalog(data []byte, path string) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML from %s: %w", path, err)
	}

	applyCatalogDefaults(&catalog)

	if err := validateCatalog(&catalog); err != nil {
		return nil, fmt.Errorf("invalid catalog in %s: %w", path, err)
	}

	return &catalog, nil
}

func applyCatalogDefaults(c *Catalog) {
	for i := range c.Qualities {
		if c.Qualities[i].DamageMultiplier == 0 {
			c.Qualities[i].DamageMultiplier = 1
		}
	}
	for i := range c.Strategies {
		s := &c.Strategies[i]
		if s.AttackScale == 0 {
			s.AttackScale = 1
		}
		if s.SuperMultiplier == 0 {
			s.SuperMultiplier = 1
		}
		if s.WeakMultiplier == 0 {
			s.WeakMultiplier = 1
		}
		if s.CritMultiplier == 0 {
			s.CritMultiplier = 1
		}
	}
}

// validateCatalog 检查 id 唯一以及交叉引用
func validateCatalog(c *Catalog) error {
	signals := make(map[string]bool)
	for i, s := range c.Signals {
		if s.ID == "" {
			return fmt.Errorf("signal %d: id is required", i)
		}
		if signals[s.ID] {
			return fmt.Errorf("duplicate signal id %q", s.ID)
		}
		signals[s.ID] = true
	}

	seen := make(map[string]bool)
	for i, cr := range c.Creatures {
		if cr.ID == "" || seen[cr.ID] {
			return fmt.Errorf("creature %d: missing or duplicate id %q", i, cr.ID)
		}
		seen[cr.ID] = true
		for _, sig := range cr.PreferredSignals {
			if !signals[sig] {
				return fmt.Errorf("creature %q: unknown preferred signal %q", cr.ID, sig)
			}
		}
	}

	clear(seen)
	for i, w := range c.Weapons {
		if w.ID == "" || seen[w.ID] {
			return fmt.Errorf("weapon %d: missing or duplicate id %q", i, w.ID)
		}
		seen[w.ID] = true
		if w.BaseDamage < 0 {
			return fmt.Errorf("weapon %q: baseDamage cannot be negative", w.ID)
		}
	}

	clear(seen)
	for i, q := range c.Qualities {
		if q.ID == "" || seen[q.ID] {
			return fmt.Errorf("quality %d: missing or duplicate id %q", i, q.ID)
		}
		seen[q.ID] = true
		if q.DamageMultiplier < 0 {
			return fmt.Errorf("quality %q: damageMultiplier cannot be negative", q.ID)
		}
	}

	strategies := make(map[string]bool)
	for i, s := range c.Strategies {
		if s.ID == "" || strategies[s.ID] {
			return fmt.Errorf("strategy %d: missing or duplicate id %q", i, s.ID)
		}
		strategies[s.ID] = true
		if s.CritChance < 0 || s.CritChance > 1 {
			return fmt.Errorf("strategy %q: critChance must be between 0 and 1, got %v", s.ID, s.CritChance)
		}
	}
	for _, s := range c.Strategies {
		if s.Beats != "" && !strategies[s.Beats] {
			return fmt.Errorf("strategy %q: beats unknown strategy %q", s.ID, s.Beats)
		}
		if s.LosesTo != "" && !strategies[s.LosesTo] {
			return fmt.Errorf("strategy %q: losesTo unknown strategy %q", s.ID, s.LosesTo)
		}
	}

	clear(seen)
	for i, e := range c.Enemies {
		if e.ID == "" || seen[e.ID] {
			return fmt.Errorf("enemy %d: missing or duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true
		if e.HP < 1 {
			return fmt.Errorf("enemy %q: hp must be at least 1, got %d", e.ID, e.HP)
		}
		if len(e.PreferredStrategies) == 0 {
			return fmt.Errorf("enemy %q: at least one preferred strategy is required", e.ID)
		}
		for _, s := range e.PreferredStrategies {
			if !strategies[s] {
				return fmt.Errorf("enemy %q: unknown strategy %q", e.ID, s)
			}
		}
	}

	clear(seen)
	for i, e := range c.Enchantments {
		if e.ID == "" || seen[e.ID] {
			return fmt.Errorf("enchantment %d: missing or duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true
	}

	clear(seen)
	for i, e := range c.Equipment {
		if e.ID == "" || seen[e.ID] {
			return fmt.Errorf("equipment %d: missing or duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true
	}

	return nil
}

// Creature 按 id 查找生物种类
func (c *Catalog) Creature(id string) (CreatureSpec, bool) {
	for _, s := range c.Creatures {
		if s.ID == id {
			return s, true
		}
	}
	return CreatureSpec{}, false
}

// Signal 按 id 查找信号类型
func (c *Catalog) Signal(id string) (SignalSpec, bool) {
	for _, s := range c.Signals {
		if s.ID == id {
			return s, true
		}
	}
	return SignalSpec{}, false
}

// Weapon 按 id 查找武器种类
func (c *Catalog) Weapon(id string) (WeaponSpec, bool) {
	for _, s := range c.Weapons {
		if s.ID == id {
			return s, true
		}
	}
	return WeaponSpec{}, false
}

// Quality 按 id 查找品质
func (c *Catalog) Quality(id string) (QualitySpec, bool) {
	for _, s := range c.Qualities {
		if s.ID == id {
			return s, true
		}
	}
	return QualitySpec{}, false
}

// Strategy 按 id 查找策略
func (c *Catalog) Strategy(id string) (StrategySpec, bool) {
	for _, s := range c.Strategies {
		if s.ID == id {
			return s, true
		}
	}
	return StrategySpec{}, false
}

// Enemy 按 id 查找敌人
func (c *Catalog) Enemy(id string) (EnemySpec, bool) {
	for _, s := range c.Enemies {
		if s.ID == id {
			return s, true
		}
	}
	return EnemySpec{}, false
}

// Enchantment 按 id 查找附魔
func (c *Catalog) Enchantment(id string) (EnchantmentSpec, bool) {
	for _, s := range c.Enchantments {
		if s.ID == id {
			return s, true
		}
	}
	return EnchantmentSpec{}, false
}

// BaseEquipment 按 id 查找基础装备
func (c *Catalog) BaseEquipment(id string) (EquipmentSpec, bool) {
	for _, s := range c.Equipment {
		if s.ID == id {
			return s, true
		}
	}
	return EquipmentSpec{}, false
}

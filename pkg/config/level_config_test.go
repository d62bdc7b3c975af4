package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/patternquest/pkg/types"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return file
}

// TestLoadLevelSet 测试关卡文件加载
func TestLoadLevelSet(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		file := writeTemp(t, "observer.yaml", `pattern: observer
levels:
  - id: 1
    name: "Test Level"
    towers:
      - {id: t1, name: North}
    creatures:
      - {id: c1, kind: dragon}
    objectives:
      - {type: signal, target: 2}
  - id: 2
    name: "Second"
    reward: 250
    unlocks: singleton
    towers:
      - {id: t1, name: North}
    creatures:
      - {id: c1, kind: fairy}
`)

		set, err := LoadLevelSet(file)
		if err != nil {
			t.Fatalf("LoadLevelSet() failed: %v", err)
		}
		if set.Pattern != types.PatternObserver {
			t.Errorf("Pattern = %q", set.Pattern)
		}
		if len(set.Levels) != 2 {
			t.Fatalf("Expected 2 levels, got %d", len(set.Levels))
		}

		first := set.Levels[0]
		if first.Reward != 100 {
			t.Errorf("Expected default reward 100, got %d", first.Reward)
		}
		if first.CrystalEnergy != 100 || first.WizardMaxEnergy != 50 {
			t.Errorf("energy defaults = %d/%d", first.CrystalEnergy, first.WizardMaxEnergy)
		}
		if first.Objectives[0].Target != 2 {
			t.Errorf("objective target = %v", first.Objectives[0].Target)
		}
		if first.Key(set.Pattern) != "observer-1" {
			t.Errorf("Key() = %q", first.Key(set.Pattern))
		}

		second, ok := set.Level(2)
		if !ok || second.Reward != 250 || second.Unlocks != types.PatternSingleton {
			t.Errorf("level 2 = %+v", second)
		}
		if !set.IsFinal(2) || set.IsFinal(1) {
			t.Error("IsFinal should only be true for the last level")
		}
	})

	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadLevelSet(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		file := writeTemp(t, "bad.yaml", "pattern: [observer\n")
		if _, err := LoadLevelSet(file); err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}

// TestValidateLevelConfig 测试各模式的必填资源
func TestValidateLevelConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "未知模式",
			yaml:    "pattern: visitor\nlevels:\n  - {id: 1, name: x}\n",
			wantErr: "unknown pattern",
		},
		{
			name:    "没有关卡",
			yaml:    "pattern: observer\nlevels: []\n",
			wantErr: "at least one level",
		},
		{
			name:    "缺少名称",
			yaml:    "pattern: singleton\nlevels:\n  - id: 1\n    wizards: [{name: a}]\n",
			wantErr: "level name is required",
		},
		{
			name:    "重复的关卡序号",
			yaml:    "pattern: singleton\nlevels:\n  - {id: 1, name: a, wizards: [{name: a}]}\n  - {id: 1, name: b, wizards: [{name: b}]}\n",
			wantErr: "duplicate level id",
		},
		{
			name:    "观察者缺少信号塔",
			yaml:    "pattern: observer\nlevels:\n  - id: 1\n    name: a\n    creatures: [{id: c, kind: dragon}]\n",
			wantErr: "at least one tower",
		},
		{
			name:    "塔与生物 id 冲突",
			yaml:    "pattern: observer\nlevels:\n  - id: 1\n    name: a\n    towers: [{id: x}]\n    creatures: [{id: x, kind: dragon}]\n",
			wantErr: "duplicate creature id",
		},
		{
			name:    "水晶能量超过上限",
			yaml:    "pattern: singleton\nlevels:\n  - id: 1\n    name: a\n    wizards: [{name: a}]\n    crystalEnergy: 150\n",
			wantErr: "crystal energy cannot exceed 100",
		},
		{
			name:    "工厂缺少订单",
			yaml:    "pattern: factory\nlevels:\n  - {id: 1, name: a}\n",
			wantErr: "at least one order",
		},
		{
			name:    "策略缺少玩家",
			yaml:    "pattern: strategy\nlevels:\n  - id: 1\n    name: a\n    enemies: [goblin]\n",
			wantErr: "player is required",
		},
		{
			name:    "装饰器缺少附魔",
			yaml:    "pattern: decorator\nlevels:\n  - id: 1\n    name: a\n    availableEquipments: [sword]\n",
			wantErr: "at least one enchantment",
		},
		{
			name:    "目标缺少类型",
			yaml:    "pattern: singleton\nlevels:\n  - id: 1\n    name: a\n    wizards: [{name: a}]\n    objectives: [{target: 1}]\n",
			wantErr: "type is required",
		},
		{
			name:    "目标值为负",
			yaml:    "pattern: singleton\nlevels:\n  - id: 1\n    name: a\n    wizards: [{name: a}]\n    objectives: [{type: connect, target: -1}]\n",
			wantErr: "target cannot be negative",
		},
		{
			name:    "解锁未知模式",
			yaml:    "pattern: singleton\nlevels:\n  - id: 1\n    name: a\n    unlocks: builder\n    wizards: [{name: a}]\n",
			wantErr: "unlocks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeTemp(t, "level.yaml", tt.yaml)
			_, err := LoadLevelSet(file)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestStrategyPlayerDefaultName(t *testing.T) {
	file := writeTemp(t, "strategy.yaml", `pattern: strategy
levels:
  - id: 1
    name: a
    player: {hp: 100, attack: 15, defense: 10}
    enemies: [goblin]
`)
	set, err := LoadLevelSet(file)
	if err != nil {
		t.Fatalf("LoadLevelSet() failed: %v", err)
	}
	if set.Levels[0].Player.Name == "" {
		t.Error("player name should receive a default")
	}
}

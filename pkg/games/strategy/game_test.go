package strategy

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/objective"
	"github.com/decker502/patternquest/pkg/patterns"
)

// fixedRand 固定输出的随机源
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) IntN(n int) int { return r.n % n }

func loadCatalog(t *testing.T) *config.Catalog {
	t.Helper()
	catalog, err := config.LoadCatalog("../../../data/catalog.yaml")
	if err != nil {
		t.Fatalf("LoadCatalog() failed: %v", err)
	}
	return catalog
}

func strategyFor(t *testing.T, id string, rng Rand) *BattleStrategy {
	t.Helper()
	spec, ok := loadCatalog(t).Strategy(id)
	if !ok {
		t.Fatalf("strategy %q not in catalog", id)
	}
	return NewBattleStrategy(spec, rng)
}

// TestEffectivenessCycle 猛攻克制魔法，魔法克制防御，防御克制猛攻
func TestEffectivenessCycle(t *testing.T) {
	rng := fixedRand{f: 0.99}
	tests := []struct {
		self, other string
		want        patterns.Effectiveness
	}{
		{"attack", "magic", patterns.EffectSuper},
		{"magic", "defense", patterns.EffectSuper},
		{"defense", "attack", patterns.EffectSuper},
		{"magic", "attack", patterns.EffectWeak},
		{"defense", "magic", patterns.EffectWeak},
		{"attack", "defense", patterns.EffectWeak},
		{"attack", "attack", patterns.EffectNeutral},
		{"magic", "", patterns.EffectNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.self+"_vs_"+tt.other, func(t *testing.T) {
			s := strategyFor(t, tt.self, rng)
			if got := s.EffectivenessAgainst(tt.other); got != tt.want {
				t.Errorf("EffectivenessAgainst(%q) = %s, want %s", tt.other, got, tt.want)
			}
		})
	}
}

// TestStrategyDamage 测试各策略的伤害公式
func TestStrategyDamage(t *testing.T) {
	tests := []struct {
		name          string
		strategy      string
		defenderStrat string
		crit          bool
		attack        int
		defense       int
		wantDamage    int
	}{
		{"猛攻克制魔法", "attack", "magic", false, 15, 5, 21},    // 15*1.5 - 5*0.3 = 21
		{"猛攻克制魔法暴击", "attack", "magic", true, 15, 5, 31},   // 21*1.5 = 31.5
		{"猛攻被防御克制", "attack", "defense", false, 12, 10, 3}, // 12*0.5 - 10*0.3 = 3
		{"猛攻最少 1 点", "attack", "defense", false, 2, 50, 1},
		{"防御克制猛攻", "defense", "attack", false, 15, 5, 9}, // 15*0.5*1.3 = 9.75
		{"防御反击", "defense", "attack", true, 15, 5, 11},   // 9.75*1.2 = 11.7
		{"魔法克制防御", "magic", "defense", false, 15, 5, 20}, // 15*0.9*1.5 = 20.25
		{"魔法暴击", "magic", "", true, 20, 5, 36},           // 20*0.9*2 = 36
		{"魔法被猛攻克制", "magic", "attack", false, 18, 5, 8},  // 18*0.9*0.5 = 8.1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := fixedRand{f: 0.99}
			if tt.crit {
				rng.f = 0
			}
			attacker := newFighter("a", "A", 100, tt.attack, 0)
			defender := newFighter("d", "D", 100, 0, tt.defense)
			if tt.defenderStrat != "" {
				defender.SetStrategy(strategyFor(t, tt.defenderStrat, rng))
			}

			res := strategyFor(t, tt.strategy, rng).Execute(attacker, defender)
			if res.Damage != tt.wantDamage {
				t.Errorf("Damage = %d, want %d", res.Damage, tt.wantDamage)
			}
			if res.Critical != tt.crit {
				t.Errorf("Critical = %v, want %v", res.Critical, tt.crit)
			}
		})
	}
}

func newLevel(player config.FighterConfig, enemies ...string) *config.LevelConfig {
	return &config.LevelConfig{ID: 1, Player: &player, Enemies: enemies}
}

// TestBattleAgainstGoblin 防御对猛攻：每回合 9 点伤害，承受 3 点反击
func TestBattleAgainstGoblin(t *testing.T) {
	level := newLevel(config.FighterConfig{Name: "Hero", HP: 100, Attack: 15, Defense: 10}, "goblin")
	g, err := New(level, loadCatalog(t), fixedRand{f: 0.99, n: 0})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if _, err := g.ExecuteRound(); !errors.Is(err, patterns.ErrNoStrategy) {
		t.Fatalf("round without strategy error = %v", err)
	}
	if err := g.SetStrategy("defense"); err != nil {
		t.Fatalf("SetStrategy() error: %v", err)
	}

	var last Round
	for i := 0; i < 6; i++ {
		last, err = g.ExecuteRound()
		if err != nil {
			t.Fatalf("round %d error: %v", i+1, err)
		}
		if last.Player.Damage != 9 {
			t.Errorf("round %d player damage = %d, want 9", i+1, last.Player.Damage)
		}
	}

	if !last.EnemyDefeated || !last.Victory || last.Counter != nil {
		t.Errorf("final round = %+v", last)
	}
	if !g.Won() || g.Lost() || !g.Over() {
		t.Error("battle should be won")
	}

	snap := g.Snapshot()
	if snap.Player.HP != 85 {
		t.Errorf("player hp = %d, want 85", snap.Player.HP)
	}

	c := g.Counters()
	if c.Get(objective.Qualified(objective.MetricStrategyUsed, "defense")) != 6 {
		t.Error("defense should be counted 6 times")
	}
	if c.Get(objective.MetricSuperEffective) != 6 {
		t.Errorf("super effective = %d, want 6", c.Get(objective.MetricSuperEffective))
	}
	if c.Get(objective.MetricBattlesWon) != 1 || c.Get(objective.MetricFlawlessWins) != 0 {
		t.Error("one battle won, not flawless")
	}

	if _, err := g.ExecuteRound(); !errors.Is(err, ErrBattleOver) {
		t.Errorf("round after victory error = %v, want ErrBattleOver", err)
	}
}

func TestEnemyProgression(t *testing.T) {
	level := newLevel(config.FighterConfig{Name: "Hero", HP: 500, Attack: 200, Defense: 10}, "goblin", "stone_golem")
	g, err := New(level, loadCatalog(t), fixedRand{f: 0.99})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.SetStrategy("attack")

	first, _ := g.ExecuteRound()
	if !first.EnemyDefeated || first.Victory {
		t.Fatalf("first round = %+v", first)
	}
	if snap := g.Snapshot(); snap.EnemyIndex != 1 || snap.Enemy.ID != "stone_golem" {
		t.Errorf("next enemy = %+v", snap.Enemy)
	}

	second, _ := g.ExecuteRound()
	if !second.Victory {
		t.Errorf("second round = %+v", second)
	}
	if got := g.Counters().Get(objective.MetricFlawlessWins); got != 2 {
		t.Errorf("flawless wins = %d, want 2", got)
	}
}

func TestPlayerDefeat(t *testing.T) {
	level := newLevel(config.FighterConfig{Name: "Hero", HP: 5, Attack: 15, Defense: 0}, "fire_dragon")
	g, err := New(level, loadCatalog(t), fixedRand{f: 0.99, n: 0})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.SetStrategy("magic")

	round, err := g.ExecuteRound()
	if err != nil {
		t.Fatalf("ExecuteRound() error: %v", err)
	}
	if !round.Defeat || round.Counter == nil {
		t.Errorf("round = %+v, want defeat", round)
	}
	if !g.Lost() || g.Won() {
		t.Error("player should have lost")
	}
	if g.Snapshot().Player.HP != 0 {
		t.Error("hp should be clamped at 0")
	}
}

// TestHolderUsesLatestStrategy 测试切换策略后立即生效
func TestHolderUsesLatestStrategy(t *testing.T) {
	level := newLevel(config.FighterConfig{Name: "Hero", HP: 100, Attack: 15, Defense: 10}, "stone_golem")
	g, _ := New(level, loadCatalog(t), fixedRand{f: 0.99, n: 0})

	g.SetStrategy("attack")
	g.SetStrategy("magic")
	round, _ := g.ExecuteRound()
	if round.Player.Strategy != "magic" {
		t.Errorf("used %q, want magic", round.Player.Strategy)
	}
	if round.Player.Effectiveness != patterns.EffectSuper {
		t.Errorf("magic vs defense should be super, got %s", round.Player.Effectiveness)
	}
}

func TestStrategyErrors(t *testing.T) {
	catalog := loadCatalog(t)

	level := newLevel(config.FighterConfig{HP: 10}, "goblin")
	level.AvailableStrategies = []string{"attack"}
	g, err := New(level, catalog, fixedRand{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := g.SetStrategy("magic"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("unavailable strategy error = %v", err)
	}

	if _, err := New(newLevel(config.FighterConfig{HP: 10}, "troll"), catalog, fixedRand{}); !errors.Is(err, ErrUnknownEnemy) {
		t.Errorf("unknown enemy error = %v", err)
	}
}

// TestSeededBattleIsReproducible 相同种子得到相同的战斗过程
func TestSeededBattleIsReproducible(t *testing.T) {
	run := func() []Round {
		level := newLevel(config.FighterConfig{Name: "Hero", HP: 150, Attack: 22, Defense: 15}, "shadow_mage", "skeleton", "fire_dragon")
		g, err := New(level, loadCatalog(t), rand.New(rand.NewPCG(7, 11)))
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		g.SetStrategy("attack")
		for !g.Over() {
			if _, err := g.ExecuteRound(); err != nil {
				t.Fatalf("ExecuteRound() error: %v", err)
			}
		}
		return g.Snapshot().Rounds
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("round counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Player != b[i].Player || a[i].EnemyStrategy != b[i].EnemyStrategy {
			t.Fatalf("round %d differs", i+1)
		}
	}
}

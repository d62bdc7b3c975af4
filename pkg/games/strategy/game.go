// Package strategy 策略模式小游戏：魔法战斗竞技场
//
// 玩家在运行时切换战斗策略，敌人按自己的偏好随机出招。
// 猛攻克制魔法，魔法克制防御，防御克制猛攻。
package strategy

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/logger"
	"github.com/decker502/patternquest/pkg/objective"
	"github.com/decker502/patternquest/pkg/patterns"
)

// Round 一个回合的记录
type Round struct {
	Number        int     `json:"number"`
	Enemy         string  `json:"enemy"`
	EnemyStrategy string  `json:"enemyStrategy"`
	Player        Result  `json:"player"`
	Counter       *Result `json:"counter,omitempty"` // 敌人未被击败时的反击
	EnemyDefeated bool    `json:"enemyDefeated"`
	Victory       bool    `json:"victory"`
	Defeat        bool    `json:"defeat"`
}

// Game 策略小游戏状态
type Game struct {
	rng        Rand
	strategies map[string]*BattleStrategy
	available  []string

	player  *Fighter
	enemies []config.EnemySpec
	current int
	enemy   *Fighter

	damageTaken int // 当前敌人战斗中玩家受到的伤害
	rounds      []Round
	over        bool
	won         bool

	counters *objective.Counters
}

// New 根据关卡配置创建游戏
func New(level *config.LevelConfig, catalog *config.Catalog, rng Rand) (*Game, error) {
	g := &Game{
		rng:        rng,
		strategies: make(map[string]*BattleStrategy),
		counters:   objective.NewCounters(),
	}

	for _, spec := range catalog.Strategies {
		g.strategies[spec.ID] = NewBattleStrategy(spec, rng)
	}
	g.available = slices.Clone(level.AvailableStrategies)
	if len(g.available) == 0 {
		for _, spec := range catalog.Strategies {
			g.available = append(g.available, spec.ID)
		}
	}
	for _, id := range g.available {
		if _, ok := g.strategies[id]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, id)
		}
	}

	p := level.Player
	if p == nil {
		return nil, fmt.Errorf("strategy level %d has no player", level.ID)
	}
	g.player = newFighter("player", p.Name, p.HP, p.Attack, p.Defense)

	for _, id := range level.Enemies {
		spec, ok := catalog.Enemy(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEnemy, id)
		}
		g.enemies = append(g.enemies, spec)
	}
	if len(g.enemies) == 0 {
		return nil, fmt.Errorf("strategy level %d has no enemies", level.ID)
	}
	g.spawnEnemy(0)

	return g, nil
}

func (g *Game) spawnEnemy(i int) {
	spec := g.enemies[i]
	g.current = i
	g.enemy = newFighter(spec.ID, spec.Name, spec.HP, spec.Attack, spec.Defense)
	g.damageTaken = 0
}

// SetStrategy 玩家切换策略
func (g *Game) SetStrategy(id string) error {
	if !slices.Contains(g.available, id) {
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, id)
	}
	g.player.SetStrategy(g.strategies[id])
	return nil
}

// ExecuteRound 进行一个回合
//
// 敌人先从偏好列表中随机选定策略，玩家按当前策略出招；
// 敌人未被击败则反击。击败敌人后自动进入下一个敌人。
func (g *Game) ExecuteRound() (Round, error) {
	if g.over {
		return Round{}, ErrBattleOver
	}
	if g.player.StrategyName() == "" {
		return Round{}, patterns.ErrNoStrategy
	}

	prefs := g.enemies[g.current].PreferredStrategies
	enemyStrategy := prefs[g.rng.IntN(len(prefs))]
	g.enemy.SetStrategy(g.strategies[enemyStrategy])

	round := Round{
		Number:        len(g.rounds) + 1,
		Enemy:         g.enemy.Name,
		EnemyStrategy: enemyStrategy,
	}

	res, err := g.player.Strike(g.enemy)
	if err != nil {
		return Round{}, err
	}
	round.Player = res
	g.counters.Inc(objective.Qualified(objective.MetricStrategyUsed, res.Strategy))
	if res.Effectiveness == patterns.EffectSuper {
		g.counters.Inc(objective.MetricSuperEffective)
	}

	if g.enemy.Defeated() {
		round.EnemyDefeated = true
		g.counters.Inc(objective.MetricBattlesWon)
		if g.damageTaken == 0 {
			g.counters.Inc(objective.MetricFlawlessWins)
		}
		logger.For("StrategyGame").WithFields(logrus.Fields{
			"enemy": g.enemy.ID,
			"round": round.Number,
		}).Debug("enemy defeated")

		if g.current+1 < len(g.enemies) {
			g.spawnEnemy(g.current + 1)
		} else {
			g.over = true
			g.won = true
			round.Victory = true
		}
	} else {
		counter, err := g.enemy.Strike(g.player)
		if err != nil {
			return Round{}, err
		}
		round.Counter = &counter
		g.damageTaken += counter.Damage
		if g.player.Defeated() {
			g.over = true
			round.Defeat = true
		}
	}

	g.rounds = append(g.rounds, round)
	return round, nil
}

// Over 战斗是否结束
func (g *Game) Over() bool { return g.over }

// Won 是否击败了所有敌人
func (g *Game) Won() bool { return g.won }

// Lost 玩家是否被击败
func (g *Game) Lost() bool { return g.over && !g.won }

// Values 实现 objective.Source，策略目标均为计数型
func (g *Game) Values() objective.Values {
	return objective.Values{}
}

// Counters 实现 objective.Source
func (g *Game) Counters() *objective.Counters {
	return g.counters
}

// StrategyView 策略说明
type StrategyView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Beats       string `json:"beats"`
	LosesTo     string `json:"losesTo"`
}

// Snapshot 游戏的只读视图
type Snapshot struct {
	Player     FighterView    `json:"player"`
	Enemy      FighterView    `json:"enemy"`
	EnemyIndex int            `json:"enemyIndex"`
	EnemyCount int            `json:"enemyCount"`
	Strategies []StrategyView `json:"strategies"`
	Rounds     []Round        `json:"rounds"`
	Over       bool           `json:"over"`
	Won        bool           `json:"won"`
}

// Snapshot 返回当前状态的副本
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Player:     g.player.view(),
		Enemy:      g.enemy.view(),
		EnemyIndex: g.current,
		EnemyCount: len(g.enemies),
		Rounds:     slices.Clone(g.rounds),
		Over:       g.over,
		Won:        g.won,
	}
	for _, id := range g.available {
		spec := g.strategies[id].Spec()
		snap.Strategies = append(snap.Strategies, StrategyView{
			ID:          spec.ID,
			Name:        spec.Name,
			Description: spec.Description,
			Beats:       spec.Beats,
			LosesTo:     spec.LosesTo,
		})
	}
	return snap
}

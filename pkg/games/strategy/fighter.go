package strategy

import (
	"github.com/decker502/patternquest/pkg/patterns"
)

// Fighter 战斗者，持有当前策略
type Fighter struct {
	ID      string
	Name    string
	HP      int
	MaxHP   int
	Attack  int
	Defense int

	holder *patterns.Holder[*Fighter, Result]
}

func newFighter(id, name string, hp, attack, defense int) *Fighter {
	return &Fighter{
		ID:      id,
		Name:    name,
		HP:      hp,
		MaxHP:   hp,
		Attack:  attack,
		Defense: defense,
		holder:  patterns.NewHolder[*Fighter, Result](nil),
	}
}

// StrategyName 当前策略 id，未选择时为空
func (f *Fighter) StrategyName() string {
	return f.holder.Name()
}

// SetStrategy 切换策略
func (f *Fighter) SetStrategy(s *BattleStrategy) {
	f.holder.SetStrategy(s)
}

// Strike 用当前策略攻击目标并扣减目标生命值
func (f *Fighter) Strike(target *Fighter) (Result, error) {
	res, err := f.holder.Execute(f, target)
	if err != nil {
		return Result{}, err
	}
	target.takeDamage(res.Damage)
	return res, nil
}

func (f *Fighter) takeDamage(n int) {
	f.HP = max(0, f.HP-n)
}

// Defeated 生命值归零
func (f *Fighter) Defeated() bool {
	return f.HP <= 0
}

// FighterView 战斗者的只读视图
type FighterView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	HP       int    `json:"hp"`
	MaxHP    int    `json:"maxHp"`
	Attack   int    `json:"attack"`
	Defense  int    `json:"defense"`
	Strategy string `json:"strategy,omitempty"`
}

func (f *Fighter) view() FighterView {
	return FighterView{
		ID:       f.ID,
		Name:     f.Name,
		HP:       f.HP,
		MaxHP:    f.MaxHP,
		Attack:   f.Attack,
		Defense:  f.Defense,
		Strategy: f.StrategyName(),
	}
}

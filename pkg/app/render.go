package app

import (
	"fmt"
	"strings"

	"github.com/decker502/patternquest/pkg/games/decorator"
	"github.com/decker502/patternquest/pkg/games/factory"
	"github.com/decker502/patternquest/pkg/games/observer"
	"github.com/decker502/patternquest/pkg/games/singleton"
	"github.com/decker502/patternquest/pkg/games/strategy"
	"github.com/decker502/patternquest/pkg/session"
)

// Render 把会话快照渲染为调试文本
func Render(snap session.Snapshot) string {
	var b strings.Builder
	p := snap.Progress
	fmt.Fprintf(&b, "pattern=%s level=%d status=%s score=%d\n",
		p.CurrentPattern, p.CurrentLevel, p.Status, p.TotalScore)
	if snap.Level != nil {
		fmt.Fprintf(&b, "%s\n", snap.Level.Name)
	}

	for _, st := range snap.Objectives {
		mark := " "
		if st.Satisfied {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s %g/%g\n", mark, st.Objective.Type, st.Current, st.Objective.Target)
	}
	b.WriteString("\n")

	switch g := snap.Game.(type) {
	case observer.Snapshot:
		renderObserver(&b, g)
	case singleton.Snapshot:
		renderSingleton(&b, g)
	case factory.Snapshot:
		renderFactory(&b, g)
	case strategy.Snapshot:
		renderStrategy(&b, g)
	case decorator.Snapshot:
		renderDecorator(&b, g)
	}
	return b.String()
}

func renderObserver(b *strings.Builder, g observer.Snapshot) {
	for _, t := range g.Towers {
		state := "on"
		if !t.Active {
			state = "off"
		}
		fmt.Fprintf(b, "tower %s (%s) <- %s\n", t.ID, state, strings.Join(t.Subscribers, ","))
	}
	for _, c := range g.Creatures {
		anim := ""
		if c.Animating {
			anim = " *"
		}
		fmt.Fprintf(b, "%s %s happiness=%d%s\n", c.ID, c.Kind, c.Happiness, anim)
	}
	fmt.Fprintf(b, "average happiness %.1f\n", g.AverageHappiness)
}

func renderSingleton(b *strings.Builder, g singleton.Snapshot) {
	if g.Crystal != nil {
		fmt.Fprintf(b, "crystal %s energy=%d/%d\n", g.Crystal.ID, g.Crystal.Energy, g.Crystal.Capacity)
	} else {
		b.WriteString("crystal: none\n")
	}
	fmt.Fprintf(b, "creation attempts %d\n", g.CreationAttempts)
	for _, w := range g.Wizards {
		stale := ""
		if w.Stale {
			stale = " (stale)"
		}
		fmt.Fprintf(b, "%s energy=%d/%d%s\n", w.ID, w.Energy, w.MaxEnergy, stale)
	}
}

func renderFactory(b *strings.Builder, g factory.Snapshot) {
	fmt.Fprintf(b, "weapons: %s\n", strings.Join(g.WeaponTypes, ","))
	fmt.Fprintf(b, "forged %d total damage %d\n", g.CreatedCount, g.TotalDamage)
	for _, w := range g.Inventory {
		fmt.Fprintf(b, "  %s %s/%s dmg=%d\n", w.ID, w.Quality, w.Type, w.Damage)
	}
	for _, o := range g.Orders {
		done := " "
		if o.Fulfilled {
			done = "x"
		}
		fmt.Fprintf(b, "[%s] %s wants %s/%s +%d\n", done, o.ID, o.Quality, o.Weapon, o.Reward)
	}
}

func renderStrategy(b *strings.Builder, g strategy.Snapshot) {
	fmt.Fprintf(b, "player HP %d/%d strategy=%s\n", g.Player.HP, g.Player.MaxHP, g.Player.Strategy)
	fmt.Fprintf(b, "enemy %d/%d %s HP %d/%d\n", g.EnemyIndex+1, g.EnemyCount, g.Enemy.ID, g.Enemy.HP, g.Enemy.MaxHP)
	fmt.Fprintf(b, "rounds %d\n", len(g.Rounds))
	if g.Over {
		if g.Won {
			b.WriteString("victory\n")
		} else {
			b.WriteString("defeat\n")
		}
	}
}

func renderDecorator(b *strings.Builder, g decorator.Snapshot) {
	for _, e := range g.Equipment {
		s := e.Gear.Stats
		fmt.Fprintf(b, "%s depth=%d atk=%d def=%d mag=%d spd=%d\n",
			e.ID, e.Depth, s.Attack, s.Defense, s.Magic, s.Speed)
	}
	fmt.Fprintf(b, "enchantments %d\n", len(g.Enchantments))
}

// Help 渲染按键说明
func Help(bindings []Binding) string {
	var b strings.Builder
	for _, bd := range bindings {
		fmt.Fprintf(&b, "%s: %s\n", bd.Key, bd.Label)
	}
	b.WriteString("P: pause  Esc: menu")
	return b.String()
}

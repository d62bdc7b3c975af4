package factory

import (
	"fmt"
	"math"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/patterns"
)

// Weapon 工厂产品
type Weapon struct {
	ID          patterns.InstanceID `json:"id"`
	Type        string              `json:"type"`
	Quality     string              `json:"quality"`
	Name        string              `json:"name"`
	Damage      int                 `json:"damage"`
	Description string              `json:"description"`
}

// Damage 伤害 = floor(基础伤害 × 品质倍率)
func Damage(baseDamage int, multiplier float64) int {
	return int(math.Floor(float64(baseDamage) * multiplier))
}

// NewWeaponFactory 按图鉴注册每种武器
// 创建参数为品质 id
func NewWeaponFactory(catalog *config.Catalog) *patterns.Factory[string, Weapon] {
	f := patterns.NewFactory[string, Weapon]()
	for _, spec := range catalog.Weapons {
		f.Register(spec.ID, func(quality string) (Weapon, error) {
			q, ok := catalog.Quality(quality)
			if !ok {
				return Weapon{}, fmt.Errorf("%w: %q", ErrUnknownQuality, quality)
			}
			return Weapon{
				ID:          patterns.NewInstanceID(spec.ID),
				Type:        spec.ID,
				Quality:     q.ID,
				Name:        q.Name + spec.Name,
				Damage:      Damage(spec.BaseDamage, q.DamageMultiplier),
				Description: spec.Description,
			}, nil
		})
	}
	return f
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/decker502/patternquest/pkg/embedded"
	"github.com/decker502/patternquest/pkg/types"
)

const (
	// CatalogFile 图鉴文件，相对于数据根目录
	CatalogFile = "catalog.yaml"
	// LevelsDir 关卡目录，相对于数据根目录
	LevelsDir = "levels"
)

// Content 完整的游戏内容：图鉴加上每个模式的关卡列表
type Content struct {
	Catalog *Catalog
	Levels  map[types.PatternType]*LevelSet
}

// LevelSet 返回指定模式的关卡列表
func (c *Content) LevelSet(p types.PatternType) (*LevelSet, bool) {
	set, ok := c.Levels[p]
	return set, ok
}

// Level 查找指定模式的指定关卡
func (c *Content) Level(p types.PatternType, id int) (*LevelConfig, bool) {
	set, ok := c.Levels[p]
	if !ok {
		return nil, false
	}
	return set.Level(id)
}

// LoadContent 从数据根目录加载全部内容
// fsys 的根对应 data/ 目录（包含 catalog.yaml 与 levels/）
func LoadContent(fsys fs.FS) (*Content, error) {
	catalog, err := LoadCatalogFS(fsys, CatalogFile)
	if err != nil {
		return nil, err
	}

	content := &Content{
		Catalog: catalog,
		Levels:  make(map[types.PatternType]*LevelSet, len(types.AllPatterns)),
	}

	for _, p := range types.AllPatterns {
		file := path.Join(LevelsDir, string(p)+".yaml")
		set, err := LoadLevelSetFS(fsys, file)
		if err != nil {
			return nil, err
		}
		if set.Pattern != p {
			return nil, fmt.Errorf("%s declares pattern %q, expected %q", file, set.Pattern, p)
		}
		content.Levels[p] = set
	}

	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	return content, nil
}

// LoadContentDir 从磁盘目录加载内容
func LoadContentDir(dir string) (*Content, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("data directory %s: %w", dir, err)
	}
	return LoadContent(os.DirFS(dir))
}

// LoadEmbeddedContent 从嵌入的 data/ 目录加载内容
// 需要先调用 embedded.Init
func LoadEmbeddedContent() (*Content, error) {
	sub, err := embedded.Sub("data")
	if err != nil {
		return nil, err
	}
	return LoadContent(sub)
}

// ValidateContent 检查关卡对图鉴的引用，返回所有问题的合并错误
func ValidateContent(c *Content) error {
	var errs []error
	cat := c.Catalog

	for _, p := range types.AllPatterns {
		set, ok := c.Levels[p]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: no levels", p))
			continue
		}
		for i := range set.Levels {
			level := &set.Levels[i]
			prefix := level.Key(p)

			if level.Unlocks == p {
				errs = append(errs, fmt.Errorf("%s: level cannot unlock its own pattern", prefix))
			}

			for _, cr := range level.Creatures {
				if _, ok := cat.Creature(cr.Kind); !ok {
					errs = append(errs, fmt.Errorf("%s: unknown creature kind %q", prefix, cr.Kind))
				}
			}
			for _, o := range level.Orders {
				if _, ok := cat.Weapon(o.Weapon); !ok {
					errs = append(errs, fmt.Errorf("%s: unknown weapon %q", prefix, o.Weapon))
				}
				if _, ok := cat.Quality(o.Quality); !ok {
					errs = append(errs, fmt.Errorf("%s: unknown quality %q", prefix, o.Quality))
				}
			}
			for _, id := range level.Enemies {
				if _, ok := cat.Enemy(id); !ok {
					errs = append(errs, fmt.Errorf("%s: unknown enemy %q", prefix, id))
				}
			}
			for _, id := range level.AvailableStrategies {
				if _, ok := cat.Strategy(id); !ok {
					errs = append(errs, fmt.Errorf("%s: unknown strategy %q", prefix, id))
				}
			}
			for _, id := range level.AvailableEquipments {
				if _, ok := cat.BaseEquipment(id); !ok {
					errs = append(errs, fmt.Errorf("%s: unknown equipment %q", prefix, id))
				}
			}
			for _, id := range level.AvailableEnchantments {
				if _, ok := cat.Enchantment(id); !ok {
					errs = append(errs, fmt.Errorf("%s: unknown enchantment %q", prefix, id))
				}
			}
		}
	}

	return errors.Join(errs...)
}

// validate_levels 检查 data/ 下的图鉴与关卡文件
//
// 用法：go run ./cmd/validate_levels -data data
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/patternquest/pkg/config"
	"github.com/decker502/patternquest/pkg/objective"
	"github.com/decker502/patternquest/pkg/types"
)

func main() {
	dir := flag.String("data", "data", "数据目录")
	flag.Parse()

	content, err := config.LoadContentDir(*dir)
	if err != nil {
		fmt.Printf("❌ 加载失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 图鉴: %d 种信号, %d 种生物, %d 种武器, %d 种策略, %d 种附魔\n",
		len(content.Catalog.Signals), len(content.Catalog.Creatures), len(content.Catalog.Weapons),
		len(content.Catalog.Strategies), len(content.Catalog.Enchantments))

	failed := 0
	for _, p := range types.AllPatterns {
		set, _ := content.LevelSet(p)
		for _, level := range set.Levels {
			objs := objective.FromConfig(level.Objectives)
			if err := objective.Validate(p, objs); err != nil {
				fmt.Printf("❌ %s: %v\n", level.Key(p), err)
				failed++
			}
		}
		fmt.Printf("✅ %-10s %d 关\n", p, len(set.Levels))
	}

	if failed > 0 {
		fmt.Printf("❌ 有 %d 个关卡目标无法评估\n", failed)
		os.Exit(1)
	}
	fmt.Printf("✅ 所有关卡目标均可评估\n")
}

package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/mybridge/internal/config"
	"github.com/palemoky/mybridge/internal/logger"
	"github.com/palemoky/mybridge/internal/sound"
	"github.com/palemoky/mybridge/internal/ui"
	"github.com/palemoky/mybridge/internal/ui/model"
)

func main() {
	name := flag.String("name", "玩家", "玩家名")
	seed := flag.Uint64("seed", 0, "随机种子，0 表示随机")
	configPath := flag.String("config", "", "配置文件路径，用于读取规则")
	flag.Parse()

	if err := logger.Init(""); err != nil {
		log.Printf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("加载配置文件失败: %v", err)
		}
		cfg = loaded
	}

	rules, err := cfg.Rules.ToRules()
	if err != nil {
		log.Fatalf("规则配置无效: %v", err)
	}

	sm := sound.NewSoundManager("")
	if err := sm.Init(); err != nil {
		logger.LogError("加载音效失败: %v", err)
	}
	defer sm.Close()

	m, err := ui.NewLocalModel(model.Options{
		Name:     *name,
		Seed:     *seed,
		Rules:    rules,
		BotDelay: cfg.Game.BotDelayDuration(),
		Sound:    sm,
	})
	if err != nil {
		log.Fatalf("创建牌桌失败: %v", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("启动客户端时出错: %v", err)
	}
}

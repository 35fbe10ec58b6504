package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/nvall/grimhold/internal/game"
)

func main() {
	var configPath string
	var levelPath string
	var watch bool
	var seed int64

	flag.StringVar(&configPath, "config", "", "YAML config file (defaults used when empty)")
	flag.StringVar(&levelPath, "level", "", "YAML level file (built-in level when empty)")
	flag.BoolVar(&watch, "watch", false, "hot-reload the level file on change")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	cfg := game.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = game.LoadConfig(configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	level := game.DefaultLevel()
	if levelPath != "" {
		var err error
		level, err = game.LoadLevel(levelPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g, err := game.New(cfg, level, seed)
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	if watch {
		if levelPath == "" {
			log.Fatal("-watch requires -level")
		}
		if err := g.WatchLevel(levelPath); err != nil {
			log.Fatal(err)
		}
	}

	ebiten.SetWindowTitle("Grimhold")
	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetTPS(cfg.Screen.TargetFPS)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

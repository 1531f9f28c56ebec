// Command sandbox opens a window with two local players on one keyboard.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/brawl/configs"
	"github.com/younwookim/brawl/internal/application/engine"
	"github.com/younwookim/brawl/internal/application/game"
	"github.com/younwookim/brawl/internal/application/replay"
	"github.com/younwookim/brawl/internal/application/scene/fight"
	"github.com/younwookim/brawl/internal/infrastructure/config"
)

func main() {
	configDir := flag.String("config", "", "Config directory (default: embedded configs)")
	stage := flag.String("stage", "arena", "Stage ID")
	p1 := flag.String("p1", "boxer", "Player 1 character")
	p2 := flag.String("p2", "grappler", "Player 2 character")
	record := flag.Bool("record", false, "Record input to a timestamped replay file")
	trace := flag.String("trace", "", "Write every frame to a trace file")
	flag.Parse()

	loader := config.NewFSLoader(configs.FS, "configs")
	if *configDir != "" {
		loader = config.NewLoader(*configDir)
	}
	cfg, err := loader.LoadAll(*stage)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	m, err := engine.NewMatch(cfg, *p1, *p2)
	if err != nil {
		log.Fatalf("Failed to set up match: %v", err)
	}

	opts := fight.Options{
		Display: cfg.Engine.Display,
		Keymaps: fight.DefaultKeymaps(),
		Stage:   *stage,
		Trace:   *trace,
	}
	if *record {
		opts.Record = replay.GenerateFilename()
		log.Printf("Recording to %s", opts.Record)
	}

	d := cfg.Engine.Display
	g := game.New(fight.New(m.NewEngine, opts), d.ScreenWidth, d.ScreenHeight)

	ebiten.SetWindowSize(d.ScreenWidth*d.Scale, d.ScreenHeight*d.Scale)
	ebiten.SetWindowTitle("Brawl Sandbox")
	ebiten.SetTPS(d.Framerate)

	err = ebiten.RunGame(g)
	g.Close()
	if err != nil {
		log.Fatal(err)
	}
}

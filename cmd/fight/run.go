package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/younwookim/brawl/configs"
	"github.com/younwookim/brawl/internal/application/engine"
	"github.com/younwookim/brawl/internal/application/replay"
	"github.com/younwookim/brawl/internal/application/state"
	"github.com/younwookim/brawl/internal/domain/entity"
	"github.com/younwookim/brawl/internal/infrastructure/config"
)

// idleTail is how long a run continues after the last input by default
const idleTail = 300

type options struct {
	configDir string
	stage     string
	p1, p2    string
	script    string
	replay    string
	record    string
	trace     string
	compare   string
	ticks     int
	syncTest  bool
	verbose   bool
}

type result struct {
	frame    entity.Frame
	phase    state.Phase
	wins     [2]int
	checksum string
}

func run(o options) (*result, error) {
	loader := config.NewFSLoader(configs.FS, "configs")
	if o.configDir != "" {
		loader = config.NewLoader(o.configDir)
	}

	data := &replay.Data{Version: replay.Version}
	stage, p1, p2 := o.stage, o.p1, o.p2
	switch {
	case o.replay != "":
		d, err := replay.LoadReplay(o.replay)
		if err != nil {
			return nil, err
		}
		data = d
		stage, p1, p2 = d.Stage, d.Characters[0], d.Characters[1]
		log.Printf("Replaying %s: match %s, %d events", o.replay, d.MatchID, len(d.Events))
	case o.script != "":
		d, err := replay.LoadScript(o.script)
		if err != nil {
			return nil, err
		}
		data = d
	}

	cfg, err := loader.LoadAll(stage)
	if err != nil {
		return nil, err
	}
	if o.syncTest {
		cfg.Engine.Rollback.SyncTest = true
	}

	m, err := engine.NewMatch(cfg, p1, p2)
	if err != nil {
		return nil, err
	}
	e := m.NewEngine()
	if o.verbose {
		e.Logger = log.New(os.Stderr, "engine: ", log.LstdFlags)
	}
	e.OnRoundEnd = func(winner int) {
		log.Printf("Round over at frame %d, winner %d", e.CurrentFrame(), winner)
	}
	e.OnFightEnd = func(winner int) {
		log.Printf("Fight over at frame %d, winner %d", e.CurrentFrame(), winner)
	}

	tick := 0
	var sink replay.Sink = e
	var rec *replay.Recorder
	if o.record != "" {
		rec = replay.NewRecorder(stage, m.CharacterNames())
		sink = rec.Tee(e, func() int { return tick })
	}

	var tw *replay.TraceWriter
	if o.trace != "" {
		if tw, err = replay.CreateTrace(o.trace); err != nil {
			return nil, err
		}
		defer func() {
			if tw != nil {
				_ = tw.Close()
			}
		}()
	}

	r := replay.NewReplayer(*data)
	n := o.ticks
	if n <= 0 {
		n = r.LastTick() + idleTail
	}

	var frames []entity.Frame
	e.Start()
	for tick = 1; tick <= n; tick++ {
		if err := r.Feed(tick, sink); err != nil {
			// Tick reports the consequence
			log.Printf("Input rejected: %v", err)
		}
		if err := e.Tick(); err != nil {
			return nil, fmt.Errorf("tick %d: %w", tick, err)
		}

		f := e.Frame()
		if tw != nil {
			if err := tw.Write(f); err != nil {
				return nil, err
			}
		}
		if o.compare != "" {
			frames = append(frames, f)
		}
	}

	if rec != nil {
		if err := rec.Save(o.record); err != nil && !errors.Is(err, replay.ErrNoEvents) {
			return nil, err
		}
		log.Printf("Recording saved: %s (%d events)", o.record, rec.EventCount())
	}
	if tw != nil {
		if err := tw.Close(); err != nil {
			return nil, err
		}
		tw = nil
	}

	if o.compare != "" {
		want, err := replay.LoadTrace(o.compare)
		if err != nil {
			return nil, err
		}
		if at, diverged := replay.Diverged(want, frames); diverged {
			return nil, fmt.Errorf("run diverges from %s at tick %d: %w", o.compare, at+1, engine.ErrDesync)
		}
		log.Printf("Run matches %s (%d frames)", o.compare, len(frames))
	}

	res := &result{frame: e.Frame(), phase: e.Phase()}
	for i := range res.wins {
		res.wins[i], _ = e.Wins(i)
	}
	if res.checksum, err = res.frame.Checksum(); err != nil {
		return nil, err
	}
	return res, nil
}


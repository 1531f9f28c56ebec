// Command fight runs a match without a window. Input comes from a YAML
// script or a recorded replay; the run can be recorded, traced frame by
// frame and compared against an earlier trace.
package main

import (
	"flag"
	"log"
)

func main() {
	var o options
	flag.StringVar(&o.configDir, "config", "", "Config directory (default: embedded configs)")
	flag.StringVar(&o.stage, "stage", "arena", "Stage ID")
	flag.StringVar(&o.p1, "p1", "boxer", "Player 1 character")
	flag.StringVar(&o.p2, "p2", "boxer", "Player 2 character")
	flag.StringVar(&o.script, "script", "", "YAML input script (e.g., -script scripts/exchange.yaml)")
	flag.StringVar(&o.replay, "replay", "", "Replay file to play back; overrides -stage, -p1 and -p2")
	flag.StringVar(&o.record, "record", "", "Record input events to a replay file")
	flag.StringVar(&o.trace, "trace", "", "Write every frame to a trace file")
	flag.StringVar(&o.compare, "compare", "", "Trace file the run must reproduce")
	flag.IntVar(&o.ticks, "ticks", 0, "Ticks to run (default: last input tick plus 300)")
	flag.BoolVar(&o.syncTest, "synctest", false, "Re-simulate every tick and check frame checksums")
	flag.BoolVar(&o.verbose, "v", false, "Log rollbacks and round transitions")
	flag.Parse()

	if o.script != "" && o.replay != "" {
		log.Fatal("-script and -replay are mutually exclusive")
	}

	res, err := run(o)
	if err != nil {
		log.Fatalf("Fight failed: %v", err)
	}

	log.Printf("Finished at frame %d: %s, score %d-%d, health %d/%d",
		res.frame.Number, res.phase, res.wins[0], res.wins[1], res.frame.P[0].Health, res.frame.P[1].Health)
	log.Printf("Checksum: %s", res.checksum)
}

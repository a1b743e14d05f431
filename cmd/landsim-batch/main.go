// Command landsim-batch drives a campaign manifest: a batch of Core A/B
// scenarios run strictly sequentially, one process invocation per
// manifest instead of one per scenario. Repurposed from the historical
// tool family's small single-purpose utility binaries into a batch
// runner over the same per-scenario config/landscape/annealer plumbing
// the other two commands use directly.
package main

import (
	"flag"
	"log"
	"runtime"
	"time"

	landsim "github.com/kentwait-lab/landsim"
)

func main() {
	numCPUPtr := flag.Int("threads", runtime.NumCPU(), "number of CPU threads")
	seedNum := flag.Int64("seed", 0, "random seed; 0 means derive from wall clock XOR pid")
	flag.Parse()

	runtime.GOMAXPROCS(*numCPUPtr)

	manifestPath := flag.Arg(0)
	if manifestPath == "" {
		log.Fatal("usage: landsim-batch <manifest.toml>")
	}
	campaign, err := landsim.LoadCampaign(manifestPath)
	if err != nil {
		log.Fatal(err)
	}

	var rng *landsim.RNG
	if *seedNum != 0 {
		rng = landsim.NewRNG(uint64(*seedNum))
	} else {
		rng = landsim.NewProcessRNG()
	}

	firstStart := time.Now()
	for _, sc := range campaign.Scenario {
		start := time.Now()
		runID, err := landsim.RunScenario(sc, rng)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("scenario %q (run %s) took %s\n", sc.Name, runID, time.Since(start))
	}
	log.Printf("completed campaign in %s.", time.Since(firstStart))
}

// Command samplingannealing runs Core B: it loads a simulated ensemble
// from disk, precomputes detection probabilities, and searches for a
// surveillance pattern via simulated annealing, writing the objective
// trace to the configured output file.
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
	ensembleStub := flag.String("stub", "", "out_stub used when the ensemble was written")
	flag.Parse()

	runtime.GOMAXPROCS(*numCPUPtr)

	var rng *landsim.RNG
	if *seedNum != 0 {
		rng = landsim.NewRNG(uint64(*seedNum))
	} else {
		rng = landsim.NewProcessRNG()
	}

	configPath := flag.Arg(0)
	var overrides []string
	if configPath == "" {
		configPath = "samplingannealing.cfg"
	} else {
		overrides = flag.Args()[1:]
	}
	cfg, err := landsim.LoadAnnealConfig(configPath, overrides)
	if err != nil {
		log.Fatal(err)
	}

	stub := *ensembleStub
	if stub == "" {
		stub = cfg.InputDirectory
	}
	ensemble, err := landsim.LoadEnsemble(cfg.InputDirectory, stub)
	if err != nil {
		log.Fatal(err)
	}
	landsim.ComputeDetectionProbabilities(ensemble, cfg)

	annealer := &landsim.Annealer{
		Ensemble:        ensemble,
		Mode:            landsim.ObjMode(cfg.ObjMode),
		NumSites:        cfg.NumSites,
		AllowDuplicates: cfg.AllowDuplicates,
		Cool:            cfg.Cool,
		Alpha:           cfg.Alpha,
		NumIters:        cfg.SimAnnN,
	}

	start := time.Now()
	trace, err := annealer.Run(rng)
	if err != nil {
		log.Fatal(err)
	}
	summary := landsim.SummarizeTrace(trace)
	log.Printf("annealer finished %d iterations in %s (objective mean=%.4f stddev=%.4f best=%.4f)",
		cfg.SimAnnN, time.Since(start), summary.Mean, summary.StdDev, summary.Best)

	objLogger := landsim.NewCSVObjectiveLogger(cfg.ObjFuncOut)
	if err := objLogger.Init(); err != nil {
		log.Fatal(err)
	}
	for _, entry := range trace {
		if err := objLogger.WriteEntry(entry); err != nil {
			log.Fatal(err)
		}
	}
}

// Command landsim runs the Core A landscape-scale epidemic simulator: it
// loads a raster landscape and a key=value configuration file, then
// produces the configured number of independent realisations, writing
// one run's output per iteration.
package main

import (
	"flag"
	"log"
	"os"
	"runtime"
	"time"

	landsim "github.com/kentwait-lab/landsim"
)

func main() {
	numCPUPtr := flag.Int("threads", runtime.NumCPU(), "number of CPU threads")
	loggerType := flag.String("logger", "csv", "run logger type (csv|sqlite)")
	seedNum := flag.Int64("seed", 0, "random seed; 0 means derive from wall clock XOR pid")
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
		configPath = cfgPathForArgv0(os.Args[0])
	} else {
		overrides = flag.Args()[1:]
	}
	cfg, err := landsim.LoadSimConfig(configPath, overrides)
	if err != nil {
		log.Fatal(err)
	}

	land, err := landsim.LoadLandscape(cfg.FilePropFull, cfg.FileRelInf, cfg.FileRelPri, cfg.FileRelSus, cfg.CellThresh)
	if err != nil {
		log.Fatal(err)
	}

	epi, err := landsim.NewEpidemic(land, cfg)
	if err != nil {
		log.Fatal(err)
	}

	firstStart := time.Now()
	for i := 1; i <= cfg.NumIts; i++ {
		log.Printf("starting instance %03d\n", i)
		start := time.Now()

		var logger landsim.RunLogger
		switch *loggerType {
		case "csv":
			logger = landsim.NewCSVRunLogger(cfg.OutStub, i)
		case "sqlite":
			logger = landsim.NewSQLiteRunLogger(cfg.OutStub, i)
		default:
			log.Fatalf("%s is not a valid logger type (csv|sqlite)", *loggerType)
		}
		if err := logger.Init(); err != nil {
			log.Fatal(err)
		}

		trace, err := epi.Run(rng)
		if err != nil {
			log.Fatal(err)
		}
		if err := logger.WriteRun(land, trace, epi.BulkUp); err != nil {
			log.Fatal(err)
		}
		log.Printf("finished instance %03d in %s\n", i, time.Since(start))
	}
	log.Printf("completed all runs in %s.", time.Since(firstStart))
}

func cfgPathForArgv0(argv0 string) string {
	return argv0 + ".cfg"
}

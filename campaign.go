package landsim

import (
	"log"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

// ScenarioConfig is one entry in a campaign manifest: a Core A run,
// optionally chained straight into a Core B run over the same output.
type ScenarioConfig struct {
	Name        string `toml:"name"`
	CoreAConfig string `toml:"core_a_config"`
	CoreBConfig string `toml:"core_b_config"`
	Logger      string `toml:"logger"` // "csv" | "sqlite"
	Threads     int    `toml:"threads"`
}

// Campaign is an ordered batch of scenarios, run strictly sequentially so
// that the single process-wide RNG's draw order stays a function only of
// the manifest and the seed (see §5 / §4.10).
type Campaign struct {
	Scenario []ScenarioConfig `toml:"scenario"`
}

// LoadCampaign decodes a TOML campaign manifest.
func LoadCampaign(path string) (*Campaign, error) {
	var c Campaign
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, errors.Wrapf(err, "decoding campaign manifest %s", path)
	}
	for i := range c.Scenario {
		if c.Scenario[i].Logger == "" {
			c.Scenario[i].Logger = "csv"
		}
		if c.Scenario[i].Threads <= 0 {
			c.Scenario[i].Threads = 1
		}
	}
	return &c, nil
}

// RunScenario executes one scenario's Core A instances and, if a Core B
// config is chained to it, feeds the resulting ensemble straight into the
// annealer without round-tripping through the on-disk ensemble format. It
// returns a sortable run identifier that tags every log line emitted for
// this invocation, so concurrent scenarios in a shared log stream can be
// told apart.
func RunScenario(sc ScenarioConfig, rng *RNG) (string, error) {
	runID := ksuid.New().String()
	log.Printf("[%s] scenario %q: starting", runID, sc.Name)

	simCfg, err := LoadSimConfig(sc.CoreAConfig, nil)
	if err != nil {
		return runID, errors.Wrapf(err, "scenario %s: loading core A config", sc.Name)
	}
	land, err := LoadLandscape(simCfg.FilePropFull, simCfg.FileRelInf, simCfg.FileRelPri, simCfg.FileRelSus, simCfg.CellThresh)
	if err != nil {
		return runID, errors.Wrapf(err, "scenario %s: loading landscape", sc.Name)
	}
	epi, err := NewEpidemic(land, simCfg)
	if err != nil {
		return runID, errors.Wrapf(err, "scenario %s: building epidemic engine", sc.Name)
	}

	var logger RunLogger
	switch sc.Logger {
	case "csv":
		logger = NewCSVRunLogger(simCfg.OutStub, 1)
	case "sqlite":
		logger = NewSQLiteRunLogger(simCfg.OutStub, 1)
	default:
		return runID, errors.Errorf("scenario %s: unknown logger kind %q", sc.Name, sc.Logger)
	}

	traces := make([]*EpidemicTrace, 0, simCfg.NumIts)
	for i := 1; i <= simCfg.NumIts; i++ {
		logger.SetBasePath(simCfg.OutStub, i)
		if err := logger.Init(); err != nil {
			return runID, errors.Wrapf(err, "scenario %s: instance %d: init logger", sc.Name, i)
		}
		trace, err := epi.Run(rng)
		if err != nil {
			return runID, errors.Wrapf(err, "scenario %s: instance %d: running epidemic", sc.Name, i)
		}
		if err := logger.WriteRun(land, trace, epi.BulkUp); err != nil {
			return runID, errors.Wrapf(err, "scenario %s: instance %d: writing run", sc.Name, i)
		}
		traces = append(traces, trace)
	}

	if sc.CoreBConfig == "" {
		log.Printf("[%s] scenario %q: finished (core A only)", runID, sc.Name)
		return runID, nil
	}

	annCfg, err := LoadAnnealConfig(sc.CoreBConfig, nil)
	if err != nil {
		return runID, errors.Wrapf(err, "scenario %s: loading core B config", sc.Name)
	}
	ensemble := NewEnsembleFromTraces(land, traces)
	ComputeDetectionProbabilities(ensemble, annCfg)

	annealer := &Annealer{
		Ensemble:        ensemble,
		Mode:            ObjMode(annCfg.ObjMode),
		NumSites:        annCfg.NumSites,
		AllowDuplicates: annCfg.AllowDuplicates,
		Cool:            annCfg.Cool,
		Alpha:           annCfg.Alpha,
		NumIters:        annCfg.SimAnnN,
	}
	trace, err := annealer.Run(rng)
	if err != nil {
		return runID, errors.Wrapf(err, "scenario %s: running annealer", sc.Name)
	}

	objLogger := NewCSVObjectiveLogger(annCfg.ObjFuncOut)
	if err := objLogger.Init(); err != nil {
		return runID, errors.Wrapf(err, "scenario %s: init objective logger", sc.Name)
	}
	for _, entry := range trace {
		if err := objLogger.WriteEntry(entry); err != nil {
			return runID, errors.Wrapf(err, "scenario %s: writing objective trace", sc.Name)
		}
	}

	summary := SummarizeTrace(trace)
	log.Printf("[%s] scenario %q: finished, objective mean=%.4f stddev=%.4f best=%.4f",
		runID, sc.Name, summary.Mean, summary.StdDev, summary.Best)
	return runID, nil
}

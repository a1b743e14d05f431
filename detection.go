package landsim

import "math"

const daysPerYear = 365.0

// ComputeDetectionProbabilities fills in PDetect for every run in the
// ensemble, given the survey cadence delta, test sensitivity, detection
// lag, samples per site, and the bulk-up shape shared with Core A (the
// detection model reuses §4.4's logistic curve with host density standing
// in for prop_full).
func ComputeDetectionProbabilities(e *Ensemble, cfg AnnealConfig) {
	bulk := BulkUpModel{R: cfg.WithinCellBulkUp, W0: cfg.WithinCellMin, TrueMinFlag: cfg.TrueMinFlag}
	offsetStep := 1.0 / daysPerYear

	for ri := range e.Runs {
		run := &e.Runs[ri]
		run.PDetect = make([]float64, len(run.HostIDs))
		for hi := range run.HostIDs {
			run.PDetect[hi] = detectionProbabilityForHost(
				run.TInf[hi], run.HostDensity[hi], run.MaxTimeInf, cfg, bulk, offsetStep)
		}
	}
}

func detectionProbabilityForHost(tH, density, maxTimeInf float64, cfg AnnealConfig, bulk BulkUpModel, offsetStep float64) float64 {
	j := bulk.shapeJ(density)
	sum := 0.0
	count := 0

	const eps = 1e-9
	lastSurvey := int(math.Floor((maxTimeInf + eps) / cfg.Delta))

	for o := 0.0; o < cfg.Delta; o += offsetStep {
		pDontDetect := 1.0
		for k := 0; k <= lastSurvey; k++ {
			tK := o + float64(k)*cfg.Delta
			if tK < tH || tK > maxTimeInf {
				continue
			}
			s := tK - tH
			var p1 float64
			if s < cfg.DetLag {
				p1 = 0
			} else {
				p1 = cfg.TestSens / (1 + j*math.Exp(-bulk.R*(s-cfg.DetLag)))
			}
			pSurvey := 1 - math.Pow(1-p1, float64(cfg.SamplesPerSite))
			pDontDetect *= 1 - pSurvey
		}
		sum += 1 - pDontDetect
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

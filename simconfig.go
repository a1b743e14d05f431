package landsim

// SimConfig holds every Core A parameter named in the external
// configuration interface. NewEpidemic keeps its own copy in Epidemic.Cfg
// and rescales that copy's RateSecInf by the dispersal kernel's
// renormalisation factor; the caller's SimConfig is left unchanged.
type SimConfig struct {
	CellThresh float64
	NumIts     int

	FilePropFull string
	FileRelInf   string
	FileRelSus   string
	FileRelPri   string
	OutStub      string

	MaxTime          float64
	RatePriInf       float64
	RateSecInf       float64
	DispScale        float64
	ReportTime       float64
	MaxIncidence     float64
	WithinCellBulkUp float64
	WithinCellMin    float64
	TrueMinFlag      bool
}

// LoadSimConfig reads a Core A key=value configuration file, applying any
// key=value command-line overrides.
func LoadSimConfig(path string, overrides []string) (SimConfig, error) {
	var c SimConfig
	kv, err := loadKVConfig(path, overrides)
	if err != nil {
		return c, err
	}

	var errs []error
	get := func(f func() error) {
		if err := f(); err != nil {
			errs = append(errs, err)
		}
	}
	get(func() (err error) { c.CellThresh, err = kv.requireFloat("cell_thresh"); return })
	get(func() (err error) { c.NumIts, err = kv.requireInt("num_its"); return })
	get(func() (err error) { c.FilePropFull, err = kv.requireString("file_prop_full"); return })
	get(func() (err error) { c.FileRelInf, err = kv.requireString("file_rel_inf"); return })
	get(func() (err error) { c.FileRelSus, err = kv.requireString("file_rel_sus"); return })
	get(func() (err error) { c.FileRelPri, err = kv.requireString("file_rel_pri"); return })
	get(func() (err error) { c.OutStub, err = kv.requireString("out_stub"); return })
	get(func() (err error) { c.MaxTime, err = kv.requireFloat("max_time"); return })
	get(func() (err error) { c.RatePriInf, err = kv.requireFloat("rate_pri_inf"); return })
	get(func() (err error) { c.RateSecInf, err = kv.requireFloat("rate_sec_inf"); return })
	get(func() (err error) { c.DispScale, err = kv.requireFloat("disp_scale"); return })
	get(func() (err error) { c.ReportTime, err = kv.requireFloat("report_time"); return })
	get(func() (err error) { c.MaxIncidence, err = kv.requireFloat("max_incidence"); return })
	get(func() (err error) { c.WithinCellBulkUp, err = kv.requireFloat("within_cell_bulk_up"); return })
	get(func() (err error) { c.WithinCellMin, err = kv.requireFloat("within_cell_min"); return })
	get(func() (err error) { c.TrueMinFlag, err = kv.requireBool("true_min_flag"); return })

	if len(errs) > 0 {
		return c, errs[0]
	}
	return c, nil
}

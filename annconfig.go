package landsim

// AnnealConfig holds every Core B parameter named in the external
// configuration interface, plus the three bulk-up shape parameters the
// detection-probability computation reuses from §4.4.
type AnnealConfig struct {
	InputDirectory  string
	NumIts          int
	AllowDuplicates bool
	NumSites        int
	SamplesPerSite  int
	TestSens        float64
	DetLag          float64
	Delta           float64
	Cool            float64
	Alpha           float64
	SimAnnN         int
	ObjFuncOut      string
	ObjMode         int

	WithinCellBulkUp float64
	WithinCellMin    float64
	TrueMinFlag      bool
}

// LoadAnnealConfig reads a Core B key=value configuration file, applying
// any key=value command-line overrides.
func LoadAnnealConfig(path string, overrides []string) (AnnealConfig, error) {
	var c AnnealConfig
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
	get(func() (err error) { c.InputDirectory, err = kv.requireString("input_directory"); return })
	get(func() (err error) { c.NumIts, err = kv.requireInt("num_its"); return })
	get(func() (err error) { c.AllowDuplicates, err = kv.requireBool("allow_duplicates"); return })
	get(func() (err error) { c.NumSites, err = kv.requireInt("num_sites"); return })
	get(func() (err error) { c.SamplesPerSite, err = kv.requireInt("samples_per_site"); return })
	get(func() (err error) { c.TestSens, err = kv.requireFloat("test_sens"); return })
	get(func() (err error) { c.DetLag, err = kv.requireFloat("det_lag"); return })
	get(func() (err error) { c.Delta, err = kv.requireFloat("delta"); return })
	get(func() (err error) { c.Cool, err = kv.requireFloat("cool"); return })
	get(func() (err error) { c.Alpha, err = kv.requireFloat("alpha"); return })
	get(func() (err error) { c.SimAnnN, err = kv.requireInt("simann_n"); return })
	get(func() (err error) { c.ObjFuncOut, err = kv.requireString("obj_func_out"); return })
	get(func() (err error) { c.ObjMode, err = kv.requireInt("obj_mode"); return })
	get(func() (err error) { c.WithinCellBulkUp, err = kv.requireFloat("within_cell_bulk_up"); return })
	get(func() (err error) { c.WithinCellMin, err = kv.requireFloat("within_cell_min"); return })
	get(func() (err error) { c.TrueMinFlag, err = kv.requireBool("true_min_flag"); return })

	if len(errs) > 0 {
		return c, errs[0]
	}
	return c, nil
}

package landsim

// Error message templates, consumed by fmt.Errorf and wrapped with
// github.com/pkg/errors where a caller needs to add context. Kept as
// plain string constants rather than a typed error hierarchy, matching
// how the rest of this family of tools reports failures.
const (
	MissingConfigKeyError   = "missing required configuration key %q"
	InvalidConfigValueError = "invalid value %q for configuration key %q: %s"

	RasterHeaderError      = "raster header: expected token %q on header line %d, got %q"
	RasterRowCountError    = "raster %s: expected %d rows, got %d"
	RasterRowLengthError   = "raster %s: row %d: expected %d columns, got %d"
	RasterNodataAtActive   = "raster %s: cell (%d,%d) is active in prop_full but NODATA here"
	RasterParseNumberError = "raster %s: row %d, col %d: cannot parse %q as a number"

	HeapUnderflowError        = "pop_min called on an empty secondary-event heap"
	HeapOverflowError         = "heap insert would exceed the %d active-cell capacity"
	SecondaryFromInvalidError = "secondary event scheduled from cell %d which is not active"
	ZeroKernelMassError       = "dispersal kernel has zero total mass for disp_scale %g"

	EnsembleLineFieldsError = "ensemble file %s: line %d: expected at least %d whitespace-separated fields, got %d"
	EnsembleRunCountError   = "ensemble: lastRunNumber.txt says %d runs, found %d run files"

	UnrecognizedObjectiveModeError = "objective mode %d is not one of 0 (prob-any), 1 (bernoulli), 2 (expected-finds)"
)

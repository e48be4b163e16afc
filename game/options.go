package game

// Options configures a viewer session.
type Options struct {
	Headless bool

	// OutputDir receives runs.csv, perf.csv, config.yaml and relative
	// snapshot/STL paths. Empty disables file output.
	OutputDir string

	// STLPath, when set, exports every build's mesh.
	STLPath string

	// SnapshotPath overrides the configured snapshot path. In headless
	// mode a snapshot is only rendered when this is set.
	SnapshotPath string
}

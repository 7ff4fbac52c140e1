package cli

// ScanCmd summarizes every session log under the projects directory
type ScanCmd struct {
	Dir     string `arg:"" optional:"" help:"Directory to scan (default: scan.projects_dir)"`
	Reports bool   `short:"r" help:"Also print a report for each file"`
}

// Run executes the scan command
func (c *ScanCmd) Run(globals *Globals) error {
	dir := c.Dir
	if dir == "" {
		dir = projectsDir(globals)
	}
	globals.Debug("scanning %s", dir)

	_, err := runAnalysis(globals, analysisRequest{
		Paths:   []string{dir},
		Reports: c.Reports,
		Record:  true,
	})
	return err
}

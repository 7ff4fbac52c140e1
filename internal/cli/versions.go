package cli

import (
	"github.com/vburojevic/clw/internal/logschema"
	"github.com/vburojevic/clw/internal/output"
)

// VersionsCmd lists the log schema versions clw understands
type VersionsCmd struct{}

// Run executes the versions command
func (c *VersionsCmd) Run(globals *Globals) error {
	maybeNoStyle(globals)
	supported := logschema.SupportedVersions()
	descriptors := logschema.Descriptors()

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteVersions(supported, descriptors)
	}
	return output.NewTextWriter(globals.Stdout).WriteVersions(supported, descriptors)
}

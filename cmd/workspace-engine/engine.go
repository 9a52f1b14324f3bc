package main

import (
	"github.com/warchest-gg/workspace-engine/pkg/capability"
	"github.com/warchest-gg/workspace-engine/pkg/clock"
	"github.com/warchest-gg/workspace-engine/pkg/compose"
	"github.com/warchest-gg/workspace-engine/pkg/logging"
	"github.com/warchest-gg/workspace-engine/pkg/volume"
	"github.com/warchest-gg/workspace-engine/pkg/workspace/cas"
	"github.com/warchest-gg/workspace-engine/pkg/workspace/fileops"
)

// newEngine constructs a compose.Engine wired to the real filesystem and CAS
// store rooted at casRoot, used by every subcommand.
func newEngine(casRoot string) *compose.Engine {
	store := cas.New(casRoot)
	prober := volume.Posix{}
	ops := fileops.NewLocal(store, prober, logging.RootLogger.Sublogger("fileops"))
	probe := capability.NewDefault()
	return compose.New(ops, prober, probe, clock.System{})
}

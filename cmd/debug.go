package cmd

import (
	"os"

	"github.com/RiverApril/Chip8Emu/emu/cpu"
	"github.com/bradleyjkemp/memviz"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

const statsViewAddress = "localhost:12600"

// launchStatsView serves runtime graphs on statsViewAddress/debug/statsview
// and pprof on statsViewAddress/debug/pprof.
func launchStatsView() {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(statsViewAddress))
		mgr := statsview.New()
		mgr.Start()
	}()
	logger.Info("Stats server available", log.String("url", "http://"+statsViewAddress+"/debug/statsview"))
}

// dumpState writes the machine as a graphviz graph.
func dumpState(path string, emu *cpu.EMU) {
	f, err := os.Create(path)
	if err != nil {
		logger.Error("Creating state dump failed", log.Err(err))
		return
	}
	defer f.Close()

	memviz.Map(f, emu)
	logger.Info("Wrote state dump", log.String("file", path))
}

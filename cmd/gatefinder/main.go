package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/cnfopt/gatefinder/gate"
	"github.com/cnfopt/gatefinder/internal/dimacsload"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagSeed = flag.Int64(
	"seed",
	1,
	"seed for the solver's random source, makes a synthesis pass reproducible",
)

var flagVerbosity = flag.Int(
	"verbosity",
	1,
	"gate subsystem verbosity (0 = silent)",
)

var flagMaxGateSize = flag.Int(
	"max_gate_size",
	gate.DefaultConfig.MaxGateSize,
	"largest clause the finder will attempt to recognize as a gate",
)

var flagDot = flag.String(
	"dot",
	"",
	"if set, write the discovered gate-dependency graph to this file",
)

type config struct {
	instanceFile string
	memProfile   bool
	cpuProfile   bool
	seed         int64
	dotFile      string
	gateConfig   gate.Config
}

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}

	cfg := gate.DefaultConfig
	cfg.Verbosity = *flagVerbosity
	cfg.MaxGateSize = *flagMaxGateSize

	return &config{
		instanceFile: flag.Arg(0),
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
		seed:         *flagSeed,
		dotFile:      *flagDot,
		gateConfig:   cfg,
	}, nil
}

func run(cfg *config) error {
	loaded, err := dimacsload.Load(cfg.instanceFile, cfg.seed)
	if err != nil {
		return fmt.Errorf("could not load instance: %w", err)
	}

	fmt.Printf("c variables: %d\n", loaded.Solver.NumVars())
	fmt.Printf("c clauses:   %d\n", loaded.Subsumer.NumClauses())

	engine := gate.NewEngine(loaded.Solver, loaded.Subsumer, cfg.gateConfig)

	t := time.Now()

	findStats := engine.FindOrGates(true)
	if cfg.gateConfig.Verbosity >= 1 {
		fmt.Print(findStats.String())
	}

	applyStats, ok := engine.TreatOrGates()
	if !ok {
		fmt.Println("c UNSAT detected while applying gates")
		return nil
	}
	if cfg.gateConfig.Verbosity >= 1 {
		fmt.Print(applyStats.String())
	}

	synthStats, ok := engine.ExtendedResolution()
	if !ok {
		fmt.Println("c UNSAT detected while synthesizing gates")
		return nil
	}
	if cfg.gateConfig.Verbosity >= 1 {
		fmt.Print(synthStats.String())
	}

	applyStats2, ok := engine.TreatOrGates()
	if !ok {
		fmt.Println("c UNSAT detected while applying synthesized gates")
		return nil
	}
	if cfg.gateConfig.Verbosity >= 1 {
		fmt.Print(applyStats2.String())
	}

	elapsed := time.Since(t)
	fmt.Printf("c time (sec):    %f\n", elapsed.Seconds())
	fmt.Printf("c gates found:   %d\n", engine.Store.NumLive())
	fmt.Printf("c store stats:   %+v\n", engine.Store.DebugStats())
	fmt.Printf("c cumulative:\n%s", engine.Cumulative.String())

	if cfg.dotFile != "" {
		f, err := os.Create(cfg.dotFile)
		if err != nil {
			return fmt.Errorf("could not create dot file: %w", err)
		}
		defer f.Close()
		if err := engine.Finder.WriteDot(f); err != nil {
			return fmt.Errorf("could not write dot file: %w", err)
		}
	}

	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}

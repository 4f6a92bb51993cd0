// Command pigeonpur runs the DPLL branching search over a DIMACS CNF
// instance, with the in-line pigeon-hole detector enabled by default.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/pigeonpur/pigeonpur/internal/dimacs"
	"github.com/pigeonpur/pigeonpur/internal/pigeon"
	"github.com/pigeonpur/pigeonpur/internal/sampling"
	"github.com/pigeonpur/pigeonpur/internal/search"
	"github.com/pigeonpur/pigeonpur/internal/verify"
)

var (
	minPigeons  = flag.Int("min-pigeons", 2, "shortest reference clause the detector will consider")
	maxPigeons  = flag.Int("max-pigeons", 64, "longest reference clause the detector will consider")
	noDetect    = flag.Bool("no-detect", false, "disable the in-line pigeon-hole detector")
	debug       = flag.Bool("debug", false, "log every decision and backtrack")
	doVerify    = flag.Bool("verify", false, "cross-check every found witness against an independent SAT solver")
	sampleMode  = flag.Bool("sample", false, "run the sampling exploration mode instead of a single DPLL search")
	ratioBranch = flag.Int("sample-ratio", 100, "keep every Nth leaf reached by the sampling search")
	maxBranches = flag.Int("sample-max-branches", 100, "stop the sampling search after this many kept leaves")
)

func main() {
	flag.Parse()

	log := logrus.New()
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pigeonpur [flags] instance.cnf")
		os.Exit(2)
	}

	if err := run(log, flag.Arg(0)); err != nil {
		log.WithError(err).Error("pigeonpur: failed")
		os.Exit(1)
	}
}

func run(log *logrus.Logger, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening instance")
	}
	defer f.Close()

	parsed, err := dimacs.Read(f)
	if err != nil {
		return errors.Wrap(err, "parsing DIMACS instance")
	}

	if *sampleMode {
		return runSample(log, parsed)
	}
	return runSolve(log, parsed)
}

func runSolve(log *logrus.Logger, parsed dimacs.Result) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Warn("pigeonpur: interrupted, flushing witness cache")
		cancel()
	}()

	cfg := search.Config{
		DetectPigeons: !*noDetect,
		MinPigeons:    *minPigeons,
		MaxPigeons:    *maxPigeons,
		Log:           log,
	}
	if *debug {
		cfg.Tracer = search.LoggingTracer{Writer: os.Stderr}
	}

	result, err := search.Solve(ctx, parsed, cfg)
	if err != nil {
		if errors.Is(err, search.Incomplete) {
			flushWitnesses(result.Witnesses)
			return errors.New("interrupted")
		}
		return err
	}

	if result.Satisfiable {
		fmt.Println("SAT")
	} else {
		fmt.Println("UNSAT")
	}
	flushWitnesses(result.Witnesses)

	if *doVerify {
		for _, w := range result.Witnesses {
			ok, err := verify.Witness(w)
			if err != nil {
				log.WithError(err).WithField("witness", w.Name).Warn("pigeonpur: verification failed to run")
				continue
			}
			log.WithFields(logrus.Fields{"witness": w.Name, "confirmed": ok}).Info("pigeonpur: verification result")
		}
	}

	return nil
}

func runSample(log *logrus.Logger, parsed dimacs.Result) error {
	cfg := sampling.Config{
		RatioBranches: *ratioBranch,
		MaxBranches:   *maxBranches,
		MaxPigeons:    *maxPigeons,
		Log:           log,
	}

	branches := sampling.Explore(parsed.Formula, cfg)
	log.WithField("branches", len(branches)).Info("pigeonpur: sampling search complete")

	cache := pigeon.NewCache()
	reports := sampling.TryDetection(parsed.Formula, branches, cache, *maxPigeons)

	for _, r := range reports {
		if r.Found {
			fmt.Printf("%v -> %s\n", r.Decisions, r.Witness.Name)
		} else {
			fmt.Printf("%v -> []\n", r.Decisions)
		}
	}

	flushWitnesses(cache.Entries())
	return nil
}

func flushWitnesses(witnesses []pigeon.Canonical) {
	if len(witnesses) == 0 {
		return
	}
	fmt.Println("\nDetected pigeons:")
	for _, w := range witnesses {
		fmt.Printf("\n%s = %v\n", w.Name, w.Clauses)
	}
}

// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command flatsetbench runs every bulk-insert strategy over randomly
// generated (existing set, batch) pairs and reports comparison/move/
// allocation counters per strategy, for comparing the eight variants the
// way a benchmark harness compares algorithm variants.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/flatset-go/flatset"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	setSize := flag.Int("set-size", 10000, "size of the existing set before each insert")
	batchSize := flag.Int("batch-size", 100, "size of the batch inserted")
	trials := flag.Int("trials", 50, "number of random trials per strategy")
	seed := flag.Int64("seed", 1, "random seed")
	strategyName := flag.String("strategy", "", "run only the named strategy (default: all)")
	flag.Parse()

	log := buildLogger()
	defer log.Sync()

	strategies := flatset.Strategies
	if *strategyName != "" {
		found := false
		for _, st := range strategies {
			if st.String() == *strategyName {
				strategies = []flatset.Strategy{st}
				found = true
				break
			}
		}
		if !found {
			log.Fatal("unknown strategy", zap.String("strategy", *strategyName))
		}
	}

	results := make([]report, len(strategies))
	g, _ := errgroup.WithContext(context.Background())
	for i, strategy := range strategies {
		i, strategy := i, strategy
		g.Go(func() error {
			results[i] = runTrials(strategy, *setSize, *batchSize, *trials, *seed+int64(i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("benchmark run failed", zap.Error(err))
	}

	sort.Slice(results, func(i, j int) bool { return results[i].strategy < results[j].strategy })
	for _, r := range results {
		log.Info("strategy result",
			zap.String("strategy", r.strategy),
			zap.Int("trials", *trials),
			zap.Duration("totalTime", r.elapsed),
			zap.Uint64("comparisons", r.stats.Comparisons),
			zap.Uint64("moves", r.stats.Moves),
			zap.Uint64("allocations", r.stats.Allocations),
			zap.Int("finalLen", r.finalLen),
		)
	}
}

type report struct {
	strategy string
	elapsed  time.Duration
	stats    flatset.Stats
	finalLen int
}

func runTrials(strategy flatset.Strategy, setSize, batchSize, trials int, seed int64) report {
	rng := rand.New(rand.NewSource(seed))
	r := report{strategy: strategy.String()}

	start := time.Now()
	for t := 0; t < trials; t++ {
		existing := randomSortedUnique(rng, setSize)
		batch := randomInts(rng, batchSize, setSize*2)
		s := flatset.FromSorted(existing, func(a, b int) bool { return a < b })
		if err := s.InsertWith(strategy, batch); err != nil {
			fmt.Fprintf(os.Stderr, "strategy %s trial %d: %v\n", strategy, t, err)
			continue
		}
		st := s.Stats()
		r.stats.Comparisons += st.Comparisons
		r.stats.Moves += st.Moves
		r.stats.BulkCopies += st.BulkCopies
		r.stats.Allocations += st.Allocations
		r.finalLen = s.Len()
	}
	r.elapsed = time.Since(start)
	return r
}

func randomSortedUnique(rng *rand.Rand, n int) []int {
	out := make([]int, 0, n)
	v := 0
	for len(out) < n {
		v += 1 + rng.Intn(3)
		out = append(out, v)
	}
	return out
}

func randomInts(rng *rand.Rand, n, bound int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rng.Intn(bound + 1)
	}
	return out
}

func buildLogger() *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	logConfig.Level.SetLevel(zap.InfoLevel)
	return zap.Must(logConfig.Build())
}

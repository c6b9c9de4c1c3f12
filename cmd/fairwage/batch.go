package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/okian/fairwage/internal/adapters/mq/queue"
	"github.com/okian/fairwage/internal/adapters/mq/worker"
	"github.com/okian/fairwage/internal/domain/model"
	"github.com/okian/fairwage/pkg/logger"
)

const maxBatchLine = 1 << 20

var (
	batchIn      string
	batchOut     string
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run JSON lines of calculation jobs through a worker pool",
	Long: "batch reads one job per line, {\"kind\": \"impact|worth|negotiation\", \"request\": {...}}, " +
		"and writes one result per line in input order.",
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchIn, "in", "i", "-", "Input JSON lines file, - for stdin")
	batchCmd.Flags().StringVar(&batchOut, "out", "-", "Output JSON lines file, - for stdout")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Worker count (overrides FAIRWAGE_BATCH_WORKERS)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := setup(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if batchWorkers > 0 {
		cfg.BatchWorkers = batchWorkers
	}

	in := cmd.InOrStdin()
	if batchIn != "-" {
		f, err := os.Open(batchIn)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	out := cmd.OutOrStdout()
	if batchOut != "-" {
		f, err := os.Create(batchOut)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	svc, err := newService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Stop()

	results, err := runJobs(ctx, in, svc, cfg.BatchWorkers, cfg.BatchQueueSize, log)
	if err != nil {
		return err
	}
	return writeResults(out, results)
}

// runJobs feeds every input line through a worker pool and returns the
// results ordered by line. Lines that do not parse become error results.
func runJobs(ctx context.Context, in io.Reader, p worker.Processor, workers, capacity int, log logger.Logger) ([]model.JobResult, error) {
	q := queue.NewInMemoryQueue(queue.WithCapacity(capacity))
	sink := &worker.Collector{}
	pool := worker.NewPool(workers, q, p, sink, worker.WithLogger(log.Named("batch")))
	pool.Start(ctx)

	var rejected []model.JobResult
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64<<10), maxBatchLine)
	seq := 0
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var j model.Job
		if err := json.Unmarshal(line, &j); err != nil {
			rejected = append(rejected, model.JobResult{Seq: seq, Error: fmt.Sprintf("invalid job line: %v", err)})
			seq++
			continue
		}
		j.Seq = seq
		seq++
		if err := q.Put(ctx, j); err != nil {
			_ = pool.Shutdown(ctx)
			return nil, fmt.Errorf("enqueue job %d: %w", j.Seq, err)
		}
	}
	scanErr := sc.Err()

	if err := pool.Shutdown(ctx); err != nil {
		return nil, err
	}
	if scanErr != nil {
		return nil, fmt.Errorf("failed to read input: %w", scanErr)
	}

	done := sink.Results()
	results := make([]model.JobResult, 0, len(done)+len(rejected))
	results = append(results, done...)
	results = append(results, rejected...)
	sort.Slice(results, func(i, j int) bool { return results[i].Seq < results[j].Seq })

	log.Info(ctx, "batch complete",
		logger.Int("jobs", len(results)),
		logger.Int("rejected", len(rejected)),
		logger.Any("processed", pool.Processed()),
	)
	return results, nil
}

func writeResults(w io.Writer, results []model.JobResult) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("write result %d: %w", r.Seq, err)
		}
	}
	return bw.Flush()
}

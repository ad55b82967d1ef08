package batch

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/catalog"
	"github.com/san-kum/mechsolver/internal/logging"
	"github.com/san-kum/mechsolver/internal/storage"
)

// Outcome is the result of one job. Err is set when evaluation or saving
// failed; a failed save still carries Result.
type Outcome struct {
	Job    Job
	Args   catalog.Args
	Result *calc.Result
	Err    error
	RunID  string
}

type Runner struct {
	Registry *catalog.Registry
	// Presets resolves Job.Preset; nil disables presets.
	Presets func(formula, name string) map[string]any
	// Store receives jobs marked Save; nil disables saving.
	Store   *storage.Store
	Workers int
	Log     *slog.Logger
}

func NewRunner(reg *catalog.Registry) *Runner {
	return &Runner{
		Registry: reg,
		Workers:  runtime.NumCPU(),
		Log:      logging.NewNop(),
	}
}

// Run evaluates jobs concurrently. Outcomes keep job order. A cancelled
// context stops unstarted jobs, which report ctx.Err().
func (r *Runner) Run(ctx context.Context, jobs []Job) []Outcome {
	out := make([]Outcome, len(jobs))
	workers := max(1, min(r.Workers, len(jobs)))
	log := r.Log
	if log == nil {
		log = logging.NewNop()
	}

	idx := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				out[i] = r.runOne(ctx, jobs[i])
				if err := out[i].Err; err != nil {
					log.Warn("job failed", "job", jobs[i].Name, "formula", jobs[i].Formula, "error", err)
				} else {
					log.Debug("job done", "job", jobs[i].Name, "formula", jobs[i].Formula)
				}
			}
		}()
	}

	for i := range jobs {
		select {
		case idx <- i:
		case <-ctx.Done():
			out[i] = Outcome{Job: jobs[i], Err: ctx.Err()}
		}
	}
	close(idx)
	wg.Wait()
	return out
}

func (r *Runner) runOne(ctx context.Context, job Job) Outcome {
	o := Outcome{Job: job}
	if err := ctx.Err(); err != nil {
		o.Err = err
		return o
	}

	args := catalog.Args{}
	if job.Preset != "" {
		var preset map[string]any
		if r.Presets != nil {
			preset = r.Presets(job.Formula, job.Preset)
		}
		if preset == nil {
			o.Err = &calc.LookupError{Table: "preset", Key: job.Formula + ":" + job.Preset}
			return o
		}
		for k, v := range preset {
			args[k] = v
		}
	}
	for k, v := range job.Args {
		args[k] = v
	}
	o.Args = args

	o.Result, o.Err = r.Registry.Evaluate(job.Formula, args)
	if o.Err != nil || !job.Save || r.Store == nil {
		return o
	}
	o.RunID, o.Err = r.Store.Save(job.Formula, args, o.Result)
	return o
}

// Failed counts outcomes with an error.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

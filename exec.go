package graymap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/esimov/graymap/utils"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Default naming convention of the batch conversion.
const (
	DefaultPattern = "JX%d"
	DefaultSrcExt  = ".ppm"
	DefaultDstExt  = ".pgm"
)

// Job is a single conversion from Src to Dst.
type Job struct {
	Index int
	Src   string
	Dst   string
}

// Ops holds the batch conversion options.
type Ops struct {
	Jobs []Job
	// Workers is the number of images converted concurrently. It is
	// clamped to [1, maxWorkers]; with a single worker the jobs run in order.
	// When a failure stops the run, the images converted past it are removed.
	Workers int
	// KeepGoing continues with the remaining jobs after a failure.
	KeepGoing bool
	// Out receives one "<index>\t<milliseconds>" line per converted image.
	Out io.Writer
	// Err receives the failure messages.
	Err io.Writer
}

// result holds the relevant information about a finished job.
type result struct {
	pos int
	job Job
	res *Result
	err error
}

// task is a job tagged with its position in the job list.
type task struct {
	pos int
	job Job
}

// PatternJobs generates the jobs first..last by substituting the index into
// pattern, which must hold exactly one %d verb. Files are looked up in dir.
func PatternJobs(dir, pattern string, first, last int, srcExt, dstExt string) ([]Job, error) {
	if strings.Count(pattern, "%d") != 1 || strings.Count(pattern, "%") != 1 {
		return nil, fmt.Errorf("naming pattern %q must contain exactly one %%d verb", pattern)
	}
	if first > last {
		return nil, fmt.Errorf("invalid index range: %d > %d", first, last)
	}

	jobs := make([]Job, 0, last-first+1)
	for i := first; i <= last; i++ {
		name := fmt.Sprintf(pattern, i)
		jobs = append(jobs, Job{
			Index: i,
			Src:   filepath.Join(dir, name+srcExt),
			Dst:   filepath.Join(dir, name+dstExt),
		})
	}
	return jobs, nil
}

// DirJobs walks the src directory tree in lexical order and creates a job
// for every regular file with the pixmap extension. The graymaps keep their
// path relative to src; the matching subdirectories are created under dst.
func DirJobs(src, dst string) ([]Job, error) {
	var jobs []Job
	err := filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !f.Mode().IsRegular() || filepath.Ext(f.Name()) != DefaultSrcExt {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		out := filepath.Join(dst, strings.TrimSuffix(rel, DefaultSrcExt)+DefaultDstExt)
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return err
		}
		jobs = append(jobs, Job{
			Index: len(jobs),
			Src:   path,
			Dst:   out,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// checkDestinations makes sure no two jobs write the same file.
func checkDestinations(jobs []Job) error {
	seen := make(map[string]int, len(jobs))
	for _, job := range jobs {
		if job.Dst == PipeName {
			continue
		}
		dst := filepath.Clean(job.Dst)
		if i, ok := seen[dst]; ok {
			return fmt.Errorf("images %d and %d would both be saved as %s", i, job.Index, job.Dst)
		}
		seen[dst] = job.Index
	}
	return nil
}

// Execute runs the batch conversion. The results are reported in job order,
// independently of the number of workers. Unless KeepGoing is set the first
// failure stops the run and is returned; otherwise all failures are joined.
func (p *Processor) Execute(ctx context.Context, op *Ops) error {
	if len(op.Jobs) == 0 {
		return nil
	}
	if err := checkDestinations(op.Jobs); err != nil {
		return err
	}
	out, errw := op.Out, op.Err
	if out == nil {
		out = os.Stdout
	}
	if errw == nil {
		errw = os.Stderr
	}

	if p.Spinner != nil {
		p.Spinner.Start()
		defer p.Spinner.Stop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var errs []error
	handle := func(r result) bool {
		if r.err != nil {
			fmt.Fprintln(errw, utils.DecorateText(
				fmt.Sprintf("Error converting image %d: %v", r.job.Index, r.err), utils.ErrorMessage),
			)
			errs = append(errs, r.err)
			return op.KeepGoing
		}
		fmt.Fprintf(out, "%d\t%f\n", r.job.Index, utils.Milliseconds(r.res.Elapsed))
		return true
	}

	workers := utils.Min(utils.Clamp(op.Workers, 1, maxWorkers), len(op.Jobs))

	var done int
	if workers == 1 {
		done = p.runSerial(ctx, op.Jobs, handle)
	} else {
		done = p.runParallel(ctx, cancel, op.Jobs, workers, handle)
	}

	switch {
	case len(errs) == 0 && done < len(op.Jobs):
		return ctx.Err()
	case len(errs) == 1:
		return errs[0]
	default:
		return errors.Join(errs...)
	}
}

// runSerial converts the jobs one by one and returns the number of handled jobs.
func (p *Processor) runSerial(ctx context.Context, jobs []Job, handle func(result) bool) int {
	for i, job := range jobs {
		if ctx.Err() != nil {
			return i
		}
		res, err := p.Convert(job.Src, job.Dst)
		if !handle(result{pos: i, job: job, res: res, err: err}) {
			return i + 1
		}
	}
	return len(jobs)
}

// runParallel fans out the jobs to the workers and hands over the results
// in job order. It returns the number of handled jobs.
func (p *Processor) runParallel(
	ctx context.Context,
	cancel context.CancelFunc,
	jobs []Job,
	workers int,
	handle func(result) bool,
) int {
	var wg sync.WaitGroup

	tasks := feed(ctx.Done(), jobs)
	ch := make(chan result)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			p.consumer(ctx.Done(), tasks, ch)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var (
		pending = make(map[int]result)
		next    int
		stopped bool
	)
	for res := range ch {
		if stopped {
			discard(res)
			continue
		}
		pending[res.pos] = res
		for !stopped {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if !handle(r) {
				stopped = true
				cancel()
			}
		}
	}
	// The conversions finished after the failure are never reported.
	for _, r := range pending {
		discard(r)
	}
	return next
}

// discard removes the output of a conversion which is not going to be reported.
func discard(r result) {
	if r.err == nil && r.job.Dst != PipeName {
		os.Remove(r.job.Dst)
	}
}

// feed starts a goroutine sending the jobs to the returned channel.
// It finishes in case the done channel is getting closed.
func feed(done <-chan struct{}, jobs []Job) <-chan task {
	tasks := make(chan task)
	go func() {
		defer close(tasks)
		for i, job := range jobs {
			select {
			case <-done:
				return
			case tasks <- task{pos: i, job: job}:
			}
		}
	}()
	return tasks
}

// consumer reads the jobs from the tasks channel, converts them and
// sends the results to the res channel.
func (p *Processor) consumer(done <-chan struct{}, tasks <-chan task, res chan<- result) {
	for t := range tasks {
		select {
		case <-done:
			return
		default:
		}
		r, err := p.Convert(t.job.Src, t.job.Dst)
		out := result{pos: t.pos, job: t.job, res: r, err: err}

		select {
		case <-done:
			discard(out)
			return
		case res <- out:
		}
	}
}

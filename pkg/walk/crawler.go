package walk

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// crawler holds the state of one walk. Only the goroutine running
// runSequential or runConcurrent touches it.
type crawler struct {
	w *Walker

	// frontier is the FIFO of identities still to visit. seen covers the
	// frontier, files in flight, and visited files.
	frontier []string
	seen     map[string]bool
	visited  map[string]*FileRecord
	inFlight int
}

type result struct {
	path string
	rec  *FileRecord
	err  error
}

func newCrawler(w *Walker, root string) *crawler {
	c := &crawler{
		w:       w,
		seen:    make(map[string]bool),
		visited: make(map[string]*FileRecord),
	}
	c.enqueue(root)
	return c
}

func (c *crawler) enqueue(path string) {
	if c.seen[path] {
		return
	}
	c.seen[path] = true
	c.frontier = append(c.frontier, path)
}

func (c *crawler) dequeue() string {
	path := c.frontier[0]
	c.frontier = c.frontier[1:]
	return path
}

func (c *crawler) record(rec *FileRecord) {
	c.visited[rec.Path] = rec
	for _, dep := range rec.Deps {
		c.enqueue(dep)
	}
}

func (c *crawler) runSequential(ctx context.Context) error {
	for len(c.frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := c.w.visit(ctx, c.dequeue())
		if err != nil {
			return err
		}
		c.record(rec)
	}
	return nil
}

// runConcurrent hands frontier entries to a pool of workers and records
// their results. Workers never see the frontier or the visited set.
func (c *crawler) runConcurrent(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := c.w.opts.Workers
	jobs := make(chan string)
	results := make(chan result, workers)

	g, gctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			for path := range jobs {
				rec, err := c.w.visit(gctx, path)
				select {
				case results <- result{path: path, rec: rec, err: err}:
				case <-gctx.Done():
					return nil
				}
			}
			return nil
		})
	}

	err := c.collect(ctx, jobs, results)
	cancel()
	close(jobs)
	_ = g.Wait()
	return err
}

func (c *crawler) collect(ctx context.Context, jobs chan<- string, results <-chan result) error {
	for len(c.frontier) > 0 || c.inFlight > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		var (
			send chan<- string
			next string
		)
		if len(c.frontier) > 0 {
			send = jobs
			next = c.frontier[0]
		}

		select {
		case send <- next:
			c.dequeue()
			c.inFlight++
		case r := <-results:
			c.inFlight--
			if r.err != nil {
				return r.err
			}
			c.record(r.rec)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

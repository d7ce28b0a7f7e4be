// Package indexer walks a project tree once and classifies every file into
// a single reusable FileIndex shared by all downstream analyzers.
package indexer

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/plumedev/plume/pkg/filesystem"
	"github.com/plumedev/plume/pkg/logger"
)

// Indexer builds FileIndexes.
type Indexer struct {
	workers int
	log     logger.Logger
}

// New creates an Indexer with a worker per CPU.
func New() *Indexer {
	return &Indexer{
		workers: runtime.NumCPU(),
		log:     logger.NewDefault(),
	}
}

// WithLogger returns a new Indexer using the specified logger.
func (ix *Indexer) WithLogger(log logger.Logger) *Indexer {
	return &Indexer{workers: ix.workers, log: log}
}

// WithWorkers returns a new Indexer with the given worker count.
func (ix *Indexer) WithWorkers(n int) *Indexer {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return &Indexer{workers: n, log: ix.log}
}

// fileJob is one file awaiting stat/line-count work.
type fileJob struct {
	relPath string
	absPath string
	size    int64
}

// Index walks rootDir and returns the index. It never fails: filesystem
// errors mid-walk (a directory deleted concurrently, an unreadable file)
// degrade to a partial index, and a cancelled context stops the walk
// gracefully with whatever was collected. Partial results are valid
// results.
func (ix *Indexer) Index(ctx context.Context, rootDir string) *FileIndex {
	idx := &FileIndex{
		Root:        rootDir,
		Files:       make(map[string]FileRecord),
		Directories: make(map[string]DirSummary),
		Totals:      Totals{ByExtension: make(map[string]int)},
	}

	ix.log.Info("indexing project", logger.F("root", rootDir))

	// Phase one: a single walk collects directory structure and the list
	// of files to measure.
	jobs := ix.collectEntries(ctx, rootDir, idx)

	ix.log.Debug("walk complete",
		logger.F("files", len(jobs)),
		logger.F("directories", len(idx.Directories)))

	// Phase two: a bounded worker pool counts lines per file. Workers
	// only send results; the index is mutated by the single collector
	// loop below, never from a worker.
	results := make(chan FileRecord, len(jobs))
	jobCh := make(chan fileJob, len(jobs))
	var wg sync.WaitGroup

	for i := 0; i < ix.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				select {
				case <-ctx.Done():
					return
				default:
				}
				results <- ix.measure(job)
			}
		}()
	}

	go func() {
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				close(jobCh)
				return
			case jobCh <- job:
			}
		}
		close(jobCh)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for rec := range results {
		idx.Files[rec.Path] = rec
		idx.Totals.FileCount++
		idx.Totals.LineCount += rec.LineCount
		idx.Totals.ByExtension[filepath.Ext(rec.Name)]++
	}

	ix.log.Info("index built",
		logger.F("files", idx.Totals.FileCount),
		logger.F("lines", idx.Totals.LineCount))

	return idx
}

// collectEntries walks the tree, filling directory summaries and returning
// the file jobs for the measuring phase.
func (ix *Indexer) collectEntries(ctx context.Context, rootDir string, idx *FileIndex) []fileJob {
	var jobs []fileJob

	err := filesystem.Walk(rootDir, filesystem.WalkOptions{}, func(path string, info os.FileInfo) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if info.IsDir() {
			if _, ok := idx.Directories[rel]; !ok {
				idx.Directories[rel] = DirSummary{}
			}
			parent := parentDir(rel)
			if parent != "" {
				sum := idx.Directories[parent]
				sum.SubdirNames = append(sum.SubdirNames, info.Name())
				sort.Strings(sum.SubdirNames)
				idx.Directories[parent] = sum
			}
			return nil
		}

		parent := parentDir(rel)
		if parent != "" {
			sum := idx.Directories[parent]
			sum.FileCount++
			if isSourceFile(info.Name()) {
				sum.SourceFileCount++
			}
			idx.Directories[parent] = sum
		}

		jobs = append(jobs, fileJob{relPath: rel, absPath: path, size: info.Size()})
		return nil
	})

	if err != nil {
		// Cancellation or a root-level failure: keep what we have.
		ix.log.Warn("walk stopped early", logger.F("error", err))
	}

	return jobs
}

// measure produces the immutable record for one file. A read failure
// degrades to a zero line count rather than dropping the file.
func (ix *Indexer) measure(job fileJob) FileRecord {
	name := filepath.Base(job.relPath)
	ftype := classifyType(job.relPath, name)

	lines := 0
	if isSourceFile(name) || job.size < wholeReadThreshold {
		n, err := countLines(job.absPath, job.size)
		if err != nil {
			ix.log.Debug("line count failed", logger.F("path", job.relPath), logger.F("error", err))
		} else {
			lines = n
		}
	}

	return FileRecord{
		Path:       job.relPath,
		Name:       name,
		Type:       ftype,
		Importance: classifyImportance(job.relPath, ftype),
		LineCount:  lines,
		SizeBytes:  job.size,
	}
}

func parentDir(rel string) string {
	dir := filepath.ToSlash(filepath.Dir(rel))
	if dir == "." {
		return ""
	}
	return dir
}

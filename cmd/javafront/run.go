package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/corvidlang/javafront/ast"
	"github.com/corvidlang/javafront/diag"
	"github.com/corvidlang/javafront/parser"
	"github.com/corvidlang/javafront/source"
	"github.com/corvidlang/javafront/style"
)

var log = commonlog.GetLogger("javafront")

// fileResult is one file's worth of parsing output: its FileMap (needed to
// resolve spans when rendering), the parsed unit (nil on a fatal syntax
// error), and every diagnostic collected along the way, in emission order.
type fileResult struct {
	path    string
	fm      *source.FileMap
	unit    *ast.CompilationUnit
	reports []*diag.Report
}

// resultMap is the shared per-file outcome map the concurrent check step
// writes into; go-deadlock's RWMutex is promoted to a direct dependency
// here the same way source.FileMap uses it internally.
type resultMap struct {
	mu      deadlock.RWMutex
	results map[string]*fileResult
}

func newResultMap() *resultMap {
	return &resultMap{results: map[string]*fileResult{}}
}

func (m *resultMap) set(path string, r *fileResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[path] = r
}

func (m *resultMap) get(path string) *fileResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.results[path]
}

// runCheck parses every file in job.Files concurrently, one FileMap and
// diagnostics Collector per file, and renders the results afterward
// through a single serializing writer so concurrent output never
// interleaves.
func runCheck(job *Job) (*resultMap, error) {
	results := newResultMap()

	g := new(errgroup.Group)
	for _, path := range job.Files {
		path := path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "read %s", path)
			}
			if !utf8.Valid(data) {
				if !job.LossyDecoding {
					return errors.Errorf("%s: invalid UTF-8", path)
				}
				data = []byte(strings.ToValidUTF8(string(data), string(utf8.RuneError)))
			}
			fm := source.New(path, string(data))
			unit, reports := parser.ParseCompilationUnit(fm)
			results.set(path, &fileResult{path: path, fm: fm, unit: unit, reports: reports})
			if job.Verbose {
				log.Debugf("parsed %s: %d diagnostics", path, len(reports))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sink := newColorSink(os.Stdout)
	for _, path := range job.Files {
		r := results.get(path)
		if len(r.reports) > 0 {
			diag.Render(sink, r.fm, r.reports)
		}
	}

	return results, nil
}

// runAnalyze runs the requested passes against every successfully-parsed
// file, collecting each file's findings in a fresh Collector and rendering
// them the same way runCheck does.
func runAnalyze(job *Job, results *resultMap, passes []passKind) {
	sink := newColorSink(os.Stdout)
	for _, path := range job.Files {
		r := results.get(path)
		if r == nil || r.unit == nil {
			continue
		}
		var findings []*diag.Report
		d := &diag.Collector{}
		for _, p := range passes {
			switch p {
			case passStyle:
				style.NewChecker(style.DefaultConfig(), d).Check(r.unit)
			}
		}
		findings = d.Reports
		if len(findings) > 0 {
			diag.Render(sink, r.fm, findings)
		}
	}
}

// runPassThrough forwards the job's files to javac, matching job.rs's
// JobType::PassThrough.
func runPassThrough(job *Job) error {
	args := append([]string{}, job.Files...)
	cmd := exec.Command("javac", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "javac")
	}
	return nil
}

// runRun executes the compiled class of the job's first file, matching
// job.rs's JobType::Run, which fires after a successful PassThrough step.
func runRun(job *Job) error {
	if len(job.Files) == 0 {
		return errors.New("no files to run")
	}
	first := job.Files[0]
	dir := filepath.Dir(first)
	class := strings.TrimSuffix(filepath.Base(first), filepath.Ext(first))

	cmd := exec.Command("java", "-cp", dir, class)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "java %s", class)
	}
	return nil
}

// runJob executes job's steps in order, exactly as queued by newJob.
func runJob(job *Job) error {
	var results *resultMap

	for _, s := range job.Steps {
		switch s.kind {
		case stepCheck:
			r, err := runCheck(job)
			if err != nil {
				return err
			}
			results = r
		case stepAnalyze:
			if results == nil {
				r, err := runCheck(job)
				if err != nil {
					return err
				}
				results = r
			}
			runAnalyze(job, results, s.passes)
		case stepPassThrough:
			if err := runPassThrough(job); err != nil {
				return err
			}
		case stepRun:
			if err := runRun(job); err != nil {
				return err
			}
		}
	}

	if results != nil {
		for _, path := range job.Files {
			if r := results.get(path); r != nil {
				for _, rep := range r.reports {
					if rep.Severity == diag.Error {
						return errors.Errorf("%s: errors reported", path)
					}
				}
			}
		}
	}
	return nil
}

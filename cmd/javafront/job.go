package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// passKind names one pass a Job runs. Today the only pass is style, but the
// type exists so the --analyze flag can grow a second name without
// reworking Job.
type passKind int

const (
	passStyle passKind = iota
)

// stepKind is one stage of a Job's pipeline, queued in the order job.rs's
// Job::from_args builds it: Check, then Analyze, then PassThrough, then Run.
type stepKind int

const (
	stepCheck stepKind = iota
	stepAnalyze
	stepPassThrough
	stepRun
)

type step struct {
	kind   stepKind
	passes []passKind
}

// Job is the fully-resolved description of one javafront invocation: the
// file list to operate on and the ordered steps to run against it.
type Job struct {
	Files         []string
	Steps         []step
	Verbose       bool
	LossyDecoding bool
	Encoding      string
}

// jobArgs mirrors the flag surface a cobra command collects before it's
// folded into a Job.
type jobArgs struct {
	files         []string
	check         bool
	analyze       []string
	passThrough   bool
	run           bool
	verbose       bool
	lossyDecoding bool
	encoding      string
	isBuildOrRun  bool // true for the build/run subcommands, which imply flags
}

// newJob implements Job::from_args: flag implication (build/run imply
// --check --pass-through --analyze style; run additionally implies
// --run), file-list folding over directories, and the pass-through/run
// consistency check (`--run` requires `--pass-through`).
func newJob(a jobArgs) (*Job, error) {
	files := a.files
	if len(files) == 0 {
		files = []string{"."}
	}
	folded, err := foldFiles(files)
	if err != nil {
		return nil, errors.Wrap(err, "folding file list")
	}
	if len(folded) == 0 {
		return nil, errors.New("file list is empty")
	}

	job := &Job{
		Files:         folded,
		Verbose:       a.verbose,
		LossyDecoding: a.lossyDecoding,
		Encoding:      a.encoding,
	}

	analyze := append([]string{}, a.analyze...)
	if a.isBuildOrRun {
		analyze = append(analyze, "style")
	}

	wantCheck := a.check || len(analyze) > 0 || a.isBuildOrRun
	if wantCheck {
		job.Steps = append(job.Steps, step{kind: stepCheck})
	}

	if len(analyze) > 0 {
		passes := make([]passKind, 0, len(analyze))
		for _, name := range analyze {
			switch name {
			case "style":
				passes = append(passes, passStyle)
			default:
				return nil, errors.Errorf("invalid analysis pass %q", name)
			}
		}
		job.Steps = append(job.Steps, step{kind: stepAnalyze, passes: passes})
	}

	wantPassThrough := a.passThrough || a.isBuildOrRun
	if wantPassThrough {
		job.Steps = append(job.Steps, step{kind: stepPassThrough})
	}

	if a.run {
		if !wantPassThrough {
			return nil, errors.New("--run requires --pass-through")
		}
		job.Steps = append(job.Steps, step{kind: stepRun})
	}

	return job, nil
}

// foldFiles implements job.rs's fold_files: each argument that names a
// plain file is kept as-is; each argument that names a directory is
// walked non-recursively for .java/.jav files.
func foldFiles(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", arg)
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "read dir %s", arg)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := filepath.Ext(e.Name())
			if ext == ".java" || ext == ".jav" {
				out = append(out, filepath.Join(arg, e.Name()))
			}
		}
	}
	return out, nil
}

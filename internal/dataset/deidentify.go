package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Mode selects what happens to the video files.
type Mode string

const (
	ModeDryRun Mode = "dry-run" // compute names only
	ModeCopy   Mode = "copy"    // copy into OutputDir under the new name
	ModeRename Mode = "rename"  // rename inside VideoDir
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeDryRun, ModeCopy, ModeRename:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q: want dry-run, copy or rename", s)
}

// FileStatus is the outcome for one file.
type FileStatus string

const (
	StatusPlanned FileStatus = "planned"
	StatusCopied  FileStatus = "copied"
	StatusRenamed FileStatus = "renamed"
	StatusMissing FileStatus = "missing"
	StatusFailed  FileStatus = "failed"
)

// DefaultConcurrency bounds parallel file operations.
const DefaultConcurrency = 4

// Options configures Deidentify. VideoDir may be empty, in which case only the
// mapping is produced whatever the mode.
type Options struct {
	Mode        Mode
	VideoDir    string
	OutputDir   string
	Concurrency int
	Logger      *slog.Logger
}

// FileResult records what happened to one manifest row.
type FileResult struct {
	Original string
	Hashed   string
	Status   FileStatus
	Err      error
}

// Outcome is the result of a de-identification run.
type Outcome struct {
	// Mapping from original to hashed name. A filename listed twice keeps the
	// name computed for its last row.
	Mapping map[string]string
	// Hashed holds the new name of each manifest row, by row index.
	Hashed []string
	// Files holds one result per row. Rows naming the same file share a
	// single copy or rename, targeting the name in Mapping.
	Files []FileResult
}

// Count returns how many files ended with status.
func (o *Outcome) Count(status FileStatus) int {
	n := 0
	for _, f := range o.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// Deidentify computes a hashed name for every row and, outside dry-run mode,
// copies or renames the files. Per-file failures are recorded in the outcome
// and do not stop the run; only cancellation and an unusable output directory
// are returned as errors.
func Deidentify(ctx context.Context, m *Manifest, h *Hasher, opts Options) (*Outcome, error) {
	if opts.Mode == "" {
		opts.Mode = ModeDryRun
	}
	if opts.Mode == ModeCopy && opts.OutputDir == "" {
		return nil, errors.New("copy mode needs an output directory")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	out := &Outcome{
		Mapping: make(map[string]string, len(m.Rows)),
		Hashed:  make([]string, len(m.Rows)),
		Files:   make([]FileResult, len(m.Rows)),
	}
	for i, row := range m.Rows {
		hashed := h.HashedName(row.Filename, row.AgeRaw, row.MilestoneID)
		out.Mapping[row.Filename] = hashed
		out.Hashed[i] = hashed
	}
	for i, row := range m.Rows {
		out.Files[i] = FileResult{Original: row.Filename, Hashed: out.Mapping[row.Filename], Status: StatusPlanned}
	}

	if opts.Mode == ModeDryRun || opts.VideoDir == "" {
		if opts.VideoDir == "" && opts.Mode != ModeDryRun {
			logger.WarnContext(ctx, "no video directory given, only generating the mapping")
		}
		return out, nil
	}

	if opts.Mode == ModeCopy {
		if err := os.MkdirAll(opts.OutputDir, 0o750); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	// One file operation per distinct original; repeated rows share its result.
	first := make(map[string]int, len(out.Mapping))
	unique := make([]int, 0, len(out.Mapping))
	for i, f := range out.Files {
		if _, seen := first[f.Original]; !seen {
			first[f.Original] = i
			unique = append(unique, i)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for _, i := range unique {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f := &out.Files[i]
			f.Status, f.Err = processFile(opts, f.Original, f.Hashed)
			switch f.Status {
			case StatusMissing:
				logger.WarnContext(gctx, "video file not found", "file", f.Original)
			case StatusFailed:
				logger.ErrorContext(gctx, "video file not de-identified", "file", f.Original, "error", f.Err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("de-identify: %w", err)
	}
	for i := range out.Files {
		lead := out.Files[first[out.Files[i].Original]]
		out.Files[i].Status, out.Files[i].Err = lead.Status, lead.Err
	}
	return out, nil
}

func processFile(opts Options, original, hashed string) (FileStatus, error) {
	src := filepath.Join(opts.VideoDir, filepath.Base(original))
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return StatusMissing, nil
		}
		return StatusFailed, err
	}

	if opts.Mode == ModeCopy {
		if err := copyFile(src, filepath.Join(opts.OutputDir, hashed)); err != nil {
			return StatusFailed, err
		}
		return StatusCopied, nil
	}
	if err := os.Rename(src, filepath.Join(opts.VideoDir, hashed)); err != nil {
		return StatusFailed, err
	}
	return StatusRenamed, nil
}

// copyFile copies contents, permission bits and modification time.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// WriteMapping writes the original-to-hashed mapping as indented JSON.
func WriteMapping(path string, mapping map[string]string) error {
	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write mapping: %w", err)
	}
	return nil
}

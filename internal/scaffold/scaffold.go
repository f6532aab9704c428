package scaffold

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/capegen-labs/capegen/internal/caperr"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// Result holds the outcome of a Materialize call.
type Result struct {
	// Path is the cape directory, relative to the scaffolder's filesystem.
	Path string

	// Reused is set when an existing cape was kept as-is.
	Reused bool

	// Removed is set when an existing cape was deleted before cloning.
	Removed bool

	// Files lists rewritten files relative to Path, in walk order.
	Files []string

	// Replacements is the total number of identifiers rewritten.
	Replacements int

	// SkippedBinary lists binary files that contain the template identifier.
	// They are copied byte for byte and never rewritten.
	SkippedBinary []string
}

// Scaffolder clones template capes inside FS.
type Scaffolder struct {
	// FS is rooted at the cape storage directory.
	FS billy.Filesystem

	// Out receives progress lines; nil discards them.
	Out io.Writer

	Log *zap.Logger
}

// Materialize creates the cape newCape from the template cape. If newCape
// already exists it is reused untouched, unless force is set, in which case
// it is deleted and cloned again.
func (s *Scaffolder) Materialize(template, newCape string, force bool) (*Result, error) {
	out := s.Out
	if out == nil {
		out = io.Discard
	}
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}

	res := &Result{Path: newCape}

	fmt.Fprintf(out, "Checking for existing cape in: %s\n", newCape)
	_, err := s.FS.Stat(newCape)
	switch {
	case err == nil:
		fmt.Fprintf(out, "Existing cape found: %s\n", newCape)
		if !force {
			fmt.Fprintf(out, "Using existing cape: %s\n", newCape)
			res.Reused = true
			return res, nil
		}
		fmt.Fprintf(out, "Force flag set. Deleting: %s\n", newCape)
		if err := util.RemoveAll(s.FS, newCape); err != nil {
			return nil, caperr.Wrap(caperr.KindIO, err, "removing existing cape %s", newCape)
		}
		res.Removed = true
	case !errors.Is(err, os.ErrNotExist):
		return nil, caperr.Wrap(caperr.KindIO, err, "checking for existing cape %s", newCape)
	}

	info, err := s.FS.Stat(template)
	if err != nil || !info.IsDir() {
		return nil, caperr.New(caperr.KindIO, "template cape directory %s not found", template)
	}

	fmt.Fprintf(out, "Cloning %s, into %s\n", template, newCape)
	if err := copyDir(s.FS, template, newCape); err != nil {
		return nil, caperr.Wrap(caperr.KindIO, err, "cloning %s into %s", template, newCape)
	}

	if err := s.renameAll(res, NewRenamer(template, newCape), log); err != nil {
		return nil, err
	}

	log.Info("cape cloned",
		zap.String("template", template),
		zap.String("cape", newCape),
		zap.Int("files_rewritten", len(res.Files)),
		zap.Int("replacements", res.Replacements))
	return res, nil
}

// renameAll rewrites every text file under res.Path.
func (s *Scaffolder) renameAll(res *Result, r *Renamer, log *zap.Logger) error {
	return util.Walk(s.FS, res.Path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return caperr.Wrap(caperr.KindIO, err, "walking %s", path)
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(res.Path, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		data, err := util.ReadFile(s.FS, path)
		if err != nil {
			return caperr.Wrap(caperr.KindIO, err, "reading %s", path)
		}

		if !IsText(data) {
			if r.Count(data) > 0 {
				res.SkippedBinary = append(res.SkippedBinary, rel)
				log.Warn("binary file contains the template name; left unchanged", zap.String("file", rel))
			}
			return nil
		}

		renamed, n := r.Rename(data)
		if n == 0 {
			return nil
		}
		if err := util.WriteFile(s.FS, path, renamed, info.Mode().Perm()); err != nil {
			return caperr.Wrap(caperr.KindIO, err, "writing %s", path)
		}
		res.Files = append(res.Files, rel)
		res.Replacements += n
		log.Debug("renamed identifiers", zap.String("file", rel), zap.Int("count", n))
		return nil
	})
}

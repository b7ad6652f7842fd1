// Package packager drives one packaging run: it walks every layer entry of a
// project descriptor, resolves and copies the referenced resources into the
// package layout, rewrites the references, and builds the final archive.
//
// Per-entry failures (stale references, malformed container syntax,
// incomplete datasets) are logged and counted as skips; the run continues.
// I/O failures while copying or writing are fatal because a half-written
// package is unsafe to deliver.
package packager

import (
	"context"
	"errors"
	"path/filepath"
	"slices"

	"github.com/qpack-dev/qpack/internal/logger"
	"github.com/qpack-dev/qpack/pkg/archive"
	"github.com/qpack-dev/qpack/pkg/copier"
	qerrors "github.com/qpack-dev/qpack/pkg/errors"
	"github.com/qpack-dev/qpack/pkg/fsutil"
	"github.com/qpack-dev/qpack/pkg/hook"
	"github.com/qpack-dev/qpack/pkg/layout"
	"github.com/qpack-dev/qpack/pkg/locator"
	"github.com/qpack-dev/qpack/pkg/project"
	"github.com/qpack-dev/qpack/pkg/reference"
)

// PackagedSuffix is appended to the project name to form the output
// directory and archive names.
const PackagedSuffix = "_packaged"

// Packager orchestrates a packaging run.
type Packager struct {
	Locator FileLocator
	Copier  ResourceCopier
	Archive *archive.Manager
	Hooks   hook.Manager // optional
}

// New creates a Packager with the given collaborators. Hooks may be nil.
func New(loc FileLocator, cop ResourceCopier, hooks hook.Manager) *Packager {
	return &Packager{
		Locator: loc,
		Copier:  cop,
		Archive: archive.NewManager(),
		Hooks:   hooks,
	}
}

// run carries the per-run mutable state so Packager itself stays reusable.
type run struct {
	p     *Packager
	state State
	alloc *layout.Allocator
	// containers maps a resolved container path to its allocation, so every
	// reference into the same container shares one physical copy.
	containers map[string]layout.Allocated
}

// Run packages proj. The output directory <name>_packaged next to the
// project file is wiped and recreated, so re-running is idempotent.
func (p *Packager) Run(ctx context.Context, proj *project.Project, opts Options) (*Result, error) {
	if proj.BelowMinVersion() {
		logger.Warnf("project %s predates descriptor version %s, packaging anyway", proj.Name, project.MinSupportedVersion)
	}

	outputDir := filepath.Join(proj.Dir, proj.Name+PackagedSuffix)
	linksDir := filepath.Join(outputDir, layout.LinksDirName)
	if err := fsutil.RecreateDir(outputDir); err != nil {
		return nil, qerrors.Wrap(qerrors.ErrPackageOutput, err.Error())
	}
	if err := fsutil.EnsureDir(linksDir); err != nil {
		return nil, qerrors.Wrap(qerrors.ErrPackageOutput, err.Error())
	}
	logger.Info("package directory created", logger.Fields{"dir": outputDir})

	hookCtx := hook.Context{
		ProjectName: proj.Name,
		ProjectPath: proj.Path,
		OutputDir:   outputDir,
	}
	if p.Hooks != nil {
		if err := p.Hooks.Execute(hook.PrePackage, hookCtx); err != nil {
			return nil, qerrors.Wrap(err, "pre-package hook failed")
		}
	}

	r := &run{
		p:          p,
		alloc:      layout.New(linksDir),
		containers: make(map[string]layout.Allocated),
	}

	for _, entry := range proj.Entries() {
		if err := r.processEntry(entry, opts); err != nil {
			return nil, err
		}
	}

	result := &Result{
		OutputDir:      outputDir,
		DescriptorPath: filepath.Join(outputDir, proj.Name+project.ExtQGS),
		ArchivePath:    outputDir + ".zip",
		Processed:      r.state.Processed,
		Skipped:        r.state.Skipped,
	}

	if err := proj.WriteTo(result.DescriptorPath); err != nil {
		return nil, err
	}
	logger.Info("descriptor saved", logger.Fields{"path": result.DescriptorPath})

	if proj.FromArchive {
		qgzPath := filepath.Join(outputDir, proj.Name+project.ExtQGZ)
		if err := proj.RebuildArchive(ctx, result.DescriptorPath, qgzPath); err != nil {
			return nil, qerrors.Wrap(qerrors.ErrPackageArchive, err.Error())
		}
		logger.Info("project archive rebuilt", logger.Fields{"path": qgzPath})
	}

	if err := p.Archive.CreateFromDir(ctx, outputDir, result.ArchivePath); err != nil {
		return nil, qerrors.Wrap(qerrors.ErrPackageArchive, err.Error())
	}

	if p.Hooks != nil {
		hookCtx.Vars = map[string]interface{}{
			"processed":   result.Processed,
			"skipped":     result.Skipped,
			"archivePath": result.ArchivePath,
		}
		if err := p.Hooks.Execute(hook.PostPackage, hookCtx); err != nil {
			logger.Warnf("post-package hook failed: %v", err)
		}
	}

	logger.Successf("packaged %s: %d layers processed, %d skipped", proj.Name, result.Processed, result.Skipped)
	return result, nil
}

// processEntry handles a single layer entry. It returns an error only for
// fatal I/O failures; every per-entry problem is logged, counted as a skip,
// and swallowed.
func (r *run) processEntry(entry *project.Entry, opts Options) error {
	if entry.Provider == "" || entry.Source == "" {
		r.skip(entry, project.ErrMissingFields.Error())
		return nil
	}
	if slices.Contains(opts.SkipProviders, entry.Provider) {
		r.skip(entry, "provider "+entry.Provider+" is excluded")
		return nil
	}

	ref, err := reference.Parse(entry.Source)
	if err != nil {
		r.skip(entry, "invalid container reference: "+entry.Source)
		return nil
	}

	if ref.Container {
		return r.processContainer(entry, ref)
	}
	return r.processPlain(entry, ref)
}

// processContainer copies the container file once and rewrites the reference
// to address into the copy.
func (r *run) processContainer(entry *project.Entry, ref reference.Ref) error {
	resolved, err := r.p.Locator.Resolve(ref.Path)
	if err != nil {
		r.skip(entry, "container not found: "+ref.Path)
		return nil
	}

	allocated, copied := r.containers[resolved.Path]
	if !copied {
		allocated = r.alloc.Allocate(resolved.Path)
		if err := r.p.Copier.CopyFile(resolved.Path, allocated.Dest); err != nil {
			return qerrors.Wrapf(err, "copying container %s", resolved.Path)
		}
		r.alloc.MarkUsed(allocated.Dest)
		r.containers[resolved.Path] = allocated
		logger.Info("copied container", logger.Fields{"path": allocated.Rel})
	}

	entry.SetSource(ref.Rewrite(allocated.Rel))
	r.state.Processed++
	return nil
}

// processPlain copies a regular file or sidecar dataset and rewrites the
// reference to its package-relative location.
func (r *run) processPlain(entry *project.Entry, ref reference.Ref) error {
	resolved, err := r.p.Locator.Resolve(ref.Path)
	if err != nil {
		r.skip(entry, "file not found: "+ref.Path)
		return nil
	}

	allocated := r.alloc.Allocate(resolved.Path)

	if resolved.Kind == locator.KindSidecarSet {
		files, err := r.p.Copier.CopySidecars(resolved.Path, allocated.Dest)
		switch {
		case errors.Is(err, copier.ErrIncompleteDataset):
			r.skip(entry, "dataset components missing: "+resolved.Path)
			return nil
		case err != nil:
			return qerrors.Wrapf(err, "copying dataset %s", resolved.Path)
		}
		logger.Info("copied dataset", logger.Fields{"path": allocated.Rel, "files": len(files)})
	} else {
		if err := r.p.Copier.CopyFile(resolved.Path, allocated.Dest); err != nil {
			return qerrors.Wrapf(err, "copying %s", resolved.Path)
		}
		logger.Info("copied", logger.Fields{"path": allocated.Rel})
	}

	r.alloc.MarkUsed(allocated.Dest)
	entry.SetSource(ref.Rewrite(allocated.Rel))
	r.state.Processed++
	return nil
}

func (r *run) skip(entry *project.Entry, reason string) {
	logger.Warn("layer skipped", logger.Fields{"layer": entry.Name, "reason": reason})
	r.state.Skipped++
}

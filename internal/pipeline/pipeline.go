// Package pipeline drives the per-target acquisition flow: resolve the
// latest release, select assets by platform tag, download, verify when
// materials exist, expand archives, locate executables, and run the host
// analysis tools. Targets run independently; one target's failure never
// stops another.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ZebulonRouseFrantzich/binspect/internal/analyze"
	"github.com/ZebulonRouseFrantzich/binspect/internal/extract"
	"github.com/ZebulonRouseFrantzich/binspect/internal/fetch"
	"github.com/ZebulonRouseFrantzich/binspect/internal/hosttools"
	"github.com/ZebulonRouseFrantzich/binspect/internal/logging"
	"github.com/ZebulonRouseFrantzich/binspect/internal/registry"
	"github.com/ZebulonRouseFrantzich/binspect/internal/release"
)

// Outcome summarizes one target's run. Err is set only when the pipeline
// could not run at all (workspace or release-resolution failure); zero
// matching assets, failed downloads, and partial progress are reported
// through the counters, not as errors.
type Outcome struct {
	Target      string
	ReleaseTag  string
	Assets      []string
	Executables int
	OutputFiles int
	Err         error
}

// Pipeline wires the stages together for one decomp root.
type Pipeline struct {
	root     string
	releases *release.Client
	dl       *fetch.Downloader
	verifier *fetch.Verifier
	expander *extract.Expander
	runner   *analyze.Runner
	log      *slog.Logger
}

// New builds a pipeline rooted at root. The release client is injectable so
// tests can point it at an httptest server.
func New(root string, releases *release.Client, tools hosttools.Toolset) *Pipeline {
	return &Pipeline{
		root:     root,
		releases: releases,
		dl:       fetch.NewDownloader("binspect"),
		verifier: fetch.NewVerifier(filepath.Join(root, "keyrings")),
		expander: extract.NewExpander(tools),
		runner:   analyze.NewRunner(tools),
		log:      logging.New("pipeline"),
	}
}

// ProcessAll runs every registry target concurrently and returns one outcome
// per target, in registry order. Failures are recorded in the outcome, never
// propagated as cancellation to sibling targets.
func (p *Pipeline) ProcessAll(ctx context.Context, reg *registry.Registry) []Outcome {
	targets := reg.Targets()
	outcomes := make([]Outcome, len(targets))

	var g errgroup.Group
	for i, target := range targets {
		g.Go(func() error {
			outcomes[i] = p.ProcessTarget(ctx, target)
			return nil
		})
	}
	// Workers always return nil; errors live in the outcomes.
	g.Wait()

	return outcomes
}

// ProcessTarget runs the full pipeline for one target.
func (p *Pipeline) ProcessTarget(ctx context.Context, target registry.Target) Outcome {
	out := Outcome{Target: target.Name}

	layout, err := EnsureLayout(p.root, target.Name)
	if err != nil {
		out.Err = fmt.Errorf("prepare workspace: %w", err)
		return out
	}

	rel, err := p.releases.Latest(ctx, target.Repo)
	if err != nil {
		out.Err = fmt.Errorf("resolve latest release of %s: %w", target.Repo, err)
		return out
	}
	out.ReleaseTag = rel.TagName
	p.log.Info("resolved release", "target", target.Name, "tag", rel.TagName, "assets", len(rel.Assets))

	// Zero matches is not an error: the target simply has no downstream
	// work, and the batch result stays clean.
	matched := release.Match(rel.Assets, target.Platforms)
	if len(matched) == 0 {
		p.log.Warn("no assets match platform tags",
			"target", target.Name, "tag", rel.TagName, "tags", target.Platforms)
		return out
	}

	for _, asset := range matched {
		if isCompanion(asset.Name) {
			// Signatures and checksum manifests can match platform tags
			// too ("demo-linux.tar.gz.sig"); they are fetched on demand
			// during verification, never analyzed.
			continue
		}
		assetPath, err := p.acquire(ctx, rel, asset, target.Name, layout)
		if err != nil {
			p.log.Warn("asset skipped", "target", target.Name, "asset", asset.Name, "error", err)
			continue
		}
		out.Assets = append(out.Assets, asset.Name)

		if extract.IsArchive(asset.Name) {
			if err := p.expander.Expand(ctx, assetPath, layout.ExtractedDir); err != nil {
				p.log.Warn("extraction failed", "target", target.Name, "asset", asset.Name, "error", err)
			}
			continue
		}

		// Raw binary asset: make it executable so the locator picks it up.
		dest := filepath.Join(layout.ExtractedDir, asset.Name)
		if err := os.Rename(assetPath, dest); err != nil {
			p.log.Warn("stage raw binary", "target", target.Name, "asset", asset.Name, "error", err)
			continue
		}
		if err := os.Chmod(dest, 0755); err != nil {
			p.log.Warn("mark raw binary executable", "target", target.Name, "asset", asset.Name, "error", err)
		}
	}

	executables, err := analyze.FindExecutables(layout.ExtractedDir)
	if err != nil {
		out.Err = fmt.Errorf("locate executables: %w", err)
		return out
	}
	out.Executables = len(executables)

	for _, exe := range executables {
		// Each binary gets its own directory under analysis/ so two
		// executables from one release do not clobber each other's output.
		outDir := filepath.Join(layout.AnalysisDir, filepath.Base(exe))
		n, err := p.runner.Run(ctx, exe, outDir)
		if err != nil {
			p.log.Warn("analysis failed", "target", target.Name, "binary", exe, "error", err)
			continue
		}
		out.OutputFiles += n
	}

	// All downloads failing still counts as a processed target; the skips
	// were logged above and the outcome shows zero assets.
	return out
}

// isCompanion reports whether an asset exists to verify other assets rather
// than to be analyzed itself.
func isCompanion(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".sig") ||
		strings.HasSuffix(lower, ".asc") ||
		strings.Contains(lower, "checksums") ||
		strings.Contains(lower, "sha256sums")
}

// acquire downloads one asset and verifies it when verification materials
// are available. A failed verification removes the download and reports an
// error; missing materials are not an error.
func (p *Pipeline) acquire(ctx context.Context, rel *release.Release, asset release.Asset, target string, layout *Layout) (string, error) {
	assetPath := filepath.Join(layout.TargetDir, asset.Name)
	if err := p.dl.DownloadToFile(ctx, asset.BrowserDownloadURL, assetPath); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}

	if err := p.verify(ctx, rel, asset, target, assetPath, layout); err != nil {
		os.Remove(assetPath)
		return "", fmt.Errorf("verify: %w", err)
	}

	return assetPath, nil
}

func (p *Pipeline) verify(ctx context.Context, rel *release.Release, asset release.Asset, target, assetPath string, layout *Layout) error {
	if sig, ok := release.SignatureFor(rel, asset.Name); ok && p.verifier.HasKeyring(target) {
		sigPath := filepath.Join(layout.TargetDir, sig.Name)
		if err := p.dl.DownloadToFile(ctx, sig.BrowserDownloadURL, sigPath); err != nil {
			return fmt.Errorf("download signature: %w", err)
		}
		if err := p.verifier.VerifyGPG(assetPath, sigPath, target); err != nil {
			return fmt.Errorf("gpg: %w", err)
		}
		p.log.Info("signature verified", "target", target, "asset", asset.Name)
	}

	if sums, ok := release.ChecksumsFor(rel); ok {
		sumsPath := filepath.Join(layout.TargetDir, sums.Name)
		if err := p.dl.DownloadToFile(ctx, sums.BrowserDownloadURL, sumsPath); err != nil {
			return fmt.Errorf("download checksums: %w", err)
		}
		switch err := p.verifier.VerifySHA256(assetPath, sumsPath); {
		case errors.Is(err, fetch.ErrNotInManifest):
			p.log.Debug("asset not listed in checksum manifest", "target", target, "asset", asset.Name)
		case err != nil:
			return fmt.Errorf("sha256: %w", err)
		default:
			p.log.Info("checksum verified", "target", target, "asset", asset.Name)
		}
	}

	return nil
}

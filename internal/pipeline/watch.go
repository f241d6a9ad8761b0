// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"romboss/internal/toolchain"
	"romboss/internal/watch"
)

// PhaseWatch is the long-running rebuild loop.
const PhaseWatch Phase = "watch"

// Watch builds the host binary (and installs it when install is set), then
// repeats that after every burst of source changes below the project
// directory until ctx is canceled. Build failures are logged and the loop
// keeps going; only a broken file watcher ends it with an error.
func (p *Pipeline) Watch(ctx context.Context, install bool, debounce time.Duration) error {
	rebuild := func(ctx context.Context) error {
		if install {
			_, err := p.Install(ctx)
			return err
		}
		_, err := p.Build(ctx)
		return err
	}

	// The first failure is already logged by the phase; keep watching so
	// the fix can be picked up.
	_ = rebuild(ctx)

	kind := p.toolchain.Kind()
	w, err := watch.New(watch.Config{
		Root:     string(p.cfg.ProjectDir),
		Skip:     []string{string(p.cfg.TargetDir), string(p.cfg.ReleaseDir)},
		Match:    func(rel string) bool { return toolchain.IsSource(kind, filepath.ToSlash(rel)) },
		Debounce: debounce,
		Logger:   p.logger,
		OnChange: func(ctx context.Context, changed []string) error {
			p.logger.Info("sources changed", "phase", PhaseWatch, "files", len(changed))
			_ = rebuild(ctx)
			return nil
		},
	})
	if err != nil {
		return err
	}

	p.logger.Info("watching for changes", "phase", PhaseWatch, "dir", p.cfg.ProjectDir)
	return w.Run(ctx)
}

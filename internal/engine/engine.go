// Package engine reconciles the local plugin inventory against the registry
// and decides which artifacts to upgrade, keep, or report as unresolved.
package engine

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/craftpkg/craftpkg/internal/inventory"
	"github.com/craftpkg/craftpkg/pkg/logger"
	"github.com/craftpkg/craftpkg/pkg/registry"
)

// Kind classifies one planned action.
type Kind int

const (
	// KindNoOp means the installed artifact already is the latest version.
	KindNoOp Kind = iota
	// KindUpgrade means a newer version is available.
	KindUpgrade
	// KindUnresolved means the artifact could not be matched to a latest
	// version, either because the registry does not know its hash or because
	// the per-project version fetch failed (Err is set in that case).
	KindUnresolved
)

func (k Kind) String() string {
	switch k {
	case KindNoOp:
		return "up-to-date"
	case KindUpgrade:
		return "upgrade"
	case KindUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Action is one planned step for one installed artifact. Actions come back in
// inventory enumeration order.
type Action struct {
	Kind             Kind
	Filename         string
	ProjectID        string
	CurrentVersionID string
	CurrentVersion   string
	NewVersionID     string
	NewVersion       string
	File             registry.File
	Err              error
}

// BulkLookupError indicates the hash-based bulk registry call failed. No
// partial result is usable, so this aborts the whole reconciliation pass.
type BulkLookupError struct {
	Err error
}

func (e *BulkLookupError) Error() string {
	return fmt.Sprintf("bulk hash lookup failed: %v", e.Err)
}

func (e *BulkLookupError) Unwrap() error {
	return e.Err
}

// Planner computes upgrade plans against a registry client.
type Planner struct {
	client      registry.Client
	loaders     []string
	concurrency int
}

// NewPlanner creates a planner. Per-project version fetches run up to
// concurrency at a time; 1 gives strictly sequential behavior.
func NewPlanner(client registry.Client, loaders []string, concurrency int) *Planner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Planner{client: client, loaders: loaders, concurrency: concurrency}
}

type projectVersions struct {
	latest registry.Version
	err    error
}

// Plan joins the installed artifacts against the registry and emits one
// action per artifact, in the order given. An empty inventory short-circuits
// without any network calls. A failed bulk lookup is fatal; a failed
// per-project version fetch only degrades that project's artifacts to
// unresolved.
func (p *Planner) Plan(ctx context.Context, artifacts []inventory.Artifact) ([]Action, error) {
	if len(artifacts) == 0 {
		return nil, nil
	}

	hashes := distinctHashes(artifacts)
	matches, err := p.client.GetVersionsByHash(ctx, hashes)
	if err != nil {
		return nil, &BulkLookupError{Err: err}
	}

	// Multi-valued join: two files with identical content must both survive.
	byHash := make(map[string][]string)
	for _, a := range artifacts {
		byHash[a.Hash] = append(byHash[a.Hash], a.Filename)
	}
	for hash, names := range byHash {
		if _, matched := matches[hash]; matched && len(names) > 1 {
			logger.Warn("multiple artifacts share identical content",
				logger.String("hash", shortHash(hash)),
				logger.Int("count", len(names)))
		}
	}

	projects := distinctProjects(artifacts, matches)
	latest := p.fetchLatest(ctx, projects)

	actions := make([]Action, 0, len(artifacts))
	for _, a := range artifacts {
		current, matched := matches[a.Hash]
		if !matched {
			actions = append(actions, Action{Kind: KindUnresolved, Filename: a.Filename})
			continue
		}

		pv := latest[current.ProjectID]
		if pv.err != nil {
			actions = append(actions, Action{
				Kind:      KindUnresolved,
				Filename:  a.Filename,
				ProjectID: current.ProjectID,
				Err:       pv.err,
			})
			continue
		}

		action := Action{
			Filename:         a.Filename,
			ProjectID:        current.ProjectID,
			CurrentVersionID: current.ID,
			CurrentVersion:   current.VersionNumber,
			NewVersionID:     pv.latest.ID,
			NewVersion:       pv.latest.VersionNumber,
		}
		if pv.latest.ID == current.ID {
			action.Kind = KindNoOp
			actions = append(actions, action)
			continue
		}

		file, ok := pv.latest.PrimaryFile()
		if !ok {
			action.Kind = KindUnresolved
			action.Err = fmt.Errorf("latest version %s of %s has no files", pv.latest.VersionNumber, current.ProjectID)
			actions = append(actions, action)
			continue
		}
		action.Kind = KindUpgrade
		action.File = file
		actions = append(actions, action)
	}
	return actions, nil
}

// fetchLatest resolves the newest compatible version per project. The
// registry returns versions most recent first, so the first element wins.
// Errors are captured per project, never propagated through the group.
func (p *Planner) fetchLatest(ctx context.Context, projectIDs []string) map[string]projectVersions {
	results := make(map[string]projectVersions, len(projectIDs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, projectID := range projectIDs {
		projectID := projectID
		g.Go(func() error {
			versions, err := p.client.GetVersions(gctx, projectID, p.loaders)
			pv := projectVersions{err: err}
			if err == nil {
				if len(versions) == 0 {
					pv.err = fmt.Errorf("no compatible versions for project %s", projectID)
				} else {
					pv.latest = versions[0]
				}
			}
			mu.Lock()
			results[projectID] = pv
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func shortHash(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16] + "..."
}

func distinctHashes(artifacts []inventory.Artifact) []string {
	seen := make(map[string]struct{}, len(artifacts))
	hashes := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		if _, ok := seen[a.Hash]; ok {
			continue
		}
		seen[a.Hash] = struct{}{}
		hashes = append(hashes, a.Hash)
	}
	return hashes
}

func distinctProjects(artifacts []inventory.Artifact, matches map[string]registry.Version) []string {
	seen := make(map[string]struct{})
	projects := make([]string, 0)
	for _, a := range artifacts {
		version, ok := matches[a.Hash]
		if !ok {
			continue
		}
		if _, dup := seen[version.ProjectID]; dup {
			continue
		}
		seen[version.ProjectID] = struct{}{}
		projects = append(projects, version.ProjectID)
	}
	return projects
}

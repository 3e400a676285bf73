package ingest

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/gyeh/hisdash/internal/normalize"
	"github.com/gyeh/hisdash/internal/source"
)

// SourceInfo describes one resolved input.
type SourceInfo struct {
	Name string
	// Path, SHA256 and Size are set for file sources only.
	Path   string
	SHA256 string
	Size   int64
}

// PreflightResult holds the context resolved before loading.
type PreflightResult struct {
	Sources []SourceInfo
}

// Preflight checks that at least one source is configured and that file
// sources exist, and fingerprints each file with SHA-256.
func Preflight(ctx context.Context, log zerolog.Logger, srcs []source.Source) (*PreflightResult, error) {
	if len(srcs) == 0 {
		return nil, fmt.Errorf("no data source configured")
	}

	res := &PreflightResult{Sources: make([]SourceInfo, 0, len(srcs))}
	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info := SourceInfo{Name: src.Name(), Path: filePath(src)}
		if info.Path != "" {
			stat, err := os.Stat(info.Path)
			if err != nil {
				return nil, fmt.Errorf("preflight stat: %w", err)
			}
			sha, err := normalize.FileHash(info.Path)
			if err != nil {
				return nil, fmt.Errorf("preflight hash: %w", err)
			}
			info.SHA256 = sha
			info.Size = stat.Size()
		}

		log.Info().
			Str("source", info.Name).
			Str("sha256", info.SHA256).
			Int64("bytes", info.Size).
			Msg("source resolved")
		res.Sources = append(res.Sources, info)
	}
	return res, nil
}

func filePath(src source.Source) string {
	if f, ok := src.(source.File); ok {
		return f.FilePath()
	}
	return ""
}

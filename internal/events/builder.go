package events

import (
	"context"

	"github.com/nickagliano/hookplayer/internal/logging"
	"github.com/nickagliano/hookplayer/internal/registry"
)

// EventMap maps an event name to sound references of the form
// "<pack>/<basename>", relative to the sounds directory.
type EventMap map[string][]string

// Source is the registry surface the builder needs. *registry.Client
// satisfies it.
type Source interface {
	FetchIndex(ctx context.Context) (*registry.Index, error)
	BaseContentURL(p registry.Pack) string
	FetchManifest(ctx context.Context, baseURL string) (*registry.Manifest, error)
}

// Builder merges the translated sounds of several packs into one EventMap.
type Builder struct {
	source Source
	table  Table
}

// NewBuilder creates a Builder. A nil table uses DefaultTable.
func NewBuilder(source Source, table Table) *Builder {
	if table == nil {
		table = DefaultTable()
	}
	return &Builder{source: source, table: table}
}

// Build fetches the index once, resolves every pack name before touching
// any manifest, then appends each pack's translated sounds in pack order
// and manifest order. Sounds are never deduplicated across packs. On any
// error nothing is returned, so callers never persist a partial map.
func (b *Builder) Build(ctx context.Context, names []string) (EventMap, error) {
	logger := logging.GetLogger("events")

	idx, err := b.source.FetchIndex(ctx)
	if err != nil {
		return nil, err
	}

	packs := make([]*registry.Pack, 0, len(names))
	for _, name := range names {
		p, err := idx.Resolve(name)
		if err != nil {
			return nil, err
		}
		packs = append(packs, p)
	}

	result := EventMap{}
	for _, p := range packs {
		m, err := b.source.FetchManifest(ctx, b.source.BaseContentURL(*p))
		if err != nil {
			return nil, err
		}

		added := 0
		for _, cat := range m.Categories {
			ev, ok := b.table.Translate(cat.ID)
			if !ok {
				logger.Debug().Str("pack", p.Name).Str("category", cat.ID).Msg("category has no event, skipping")
				continue
			}
			for _, s := range cat.Sounds {
				base, ok := registry.Basename(s.File)
				if !ok {
					continue
				}
				result[ev] = append(result[ev], p.Name+"/"+base)
				added++
			}
		}
		logger.Info().Str("pack", p.Name).Int("sounds", added).Msg("pack merged")
	}
	return result, nil
}

// Lookup returns the sounds configured for event, falling back to the
// "unknown" event when the name has no entry of its own.
func (m EventMap) Lookup(event string) []string {
	if sounds, ok := m[event]; ok {
		return sounds
	}
	return m[EventUnknown]
}

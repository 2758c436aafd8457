// Package ioimport loads YAML seed files into the card lab and exports
// the lab back into the same format.
package ioimport

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cardlab/cardlab/pkg/filter"
	"github.com/cardlab/cardlab/pkg/lab"
	"github.com/cardlab/cardlab/pkg/lifecycle"
	"github.com/cardlab/cardlab/pkg/schema"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

type seeder struct {
	lab  lab.Lab
	jobs int
	// progress shows a progress bar for cards.
	progress bool
}

// New creates a Seeder working through l. Registries are imported by
// up to jobs goroutines.
func New(l lab.Lab, jobs int, progress bool) lifecycle.Seeder {
	if jobs < 1 {
		jobs = 1
	}
	return &seeder{lab: l, jobs: jobs, progress: progress}
}

func (s *seeder) Import(ctx context.Context, path string) error {
	start := time.Now()
	bs, err := os.ReadFile(path)
	if err != nil {
		return ReadSeedError(path, err)
	}
	var seed schema.Seed
	if err = yaml.Unmarshal(bs, &seed); err != nil {
		return ParseSeedError(path, err)
	}
	slog.Info("Importing seed", "path", path, "entities", seed.Total())

	if err = s.importCategories(ctx, &seed); err != nil {
		return err
	}
	for _, v := range seed.KeywordAbilities {
		if _, _, err = s.lab.EnsureAbility(ctx, v); err != nil {
			return EntityError("keyword ability", v.Name, err)
		}
	}
	for _, v := range seed.Passives {
		if _, _, err = s.lab.EnsurePassive(ctx, v); err != nil {
			return EntityError("passive", v.Name, err)
		}
	}
	if err = s.importCards(ctx, seed.Cards); err != nil {
		return err
	}
	for _, v := range seed.Locations {
		if _, err = s.lab.CreateLocation(ctx, v); err != nil {
			return EntityError("location", v.Name, err)
		}
	}

	dur := time.Since(start)
	slog.Info("Import complete",
		"path", path,
		"entities", seed.Total(),
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info("Imported %s cards, %s entities in total in <em>%s</em>",
		humanize.Comma(int64(len(seed.Cards))),
		humanize.Comma(int64(seed.Total())),
		gnfmt.TimeString(dur.Seconds()),
	)
	return nil
}

// importCategories fills the registries concurrently, one kind per
// goroutine. Entries of one kind keep their order.
func (s *seeder) importCategories(ctx context.Context, seed *schema.Seed) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.jobs)
	for kind, cats := range seed.Categories() {
		g.Go(func() error {
			for _, v := range cats {
				v.Kind = kind
				if _, _, err := s.lab.EnsureCategory(ctx, v); err != nil {
					return EntityError(string(kind), v.Name, err)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// importCards adds cards in file order, so they list in the same order.
func (s *seeder) importCards(ctx context.Context, cards []schema.Card) error {
	if len(cards) == 0 {
		return nil
	}
	var bar *pb.ProgressBar
	if s.progress {
		bar = pb.Full.Start(len(cards))
		bar.Set("prefix", "Importing cards: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}
	for _, v := range cards {
		if _, err := s.lab.CreateCard(ctx, v); err != nil {
			return EntityError("card", v.Name, err)
		}
		if bar != nil {
			bar.Increment()
		}
	}
	return nil
}

func (s *seeder) Export(ctx context.Context, path string) error {
	start := time.Now()
	seed, err := s.collect(ctx)
	if err != nil {
		return ExportError(path, err)
	}
	seed.StripIDs()

	bs, err := yaml.Marshal(seed)
	if err != nil {
		return ExportError(path, err)
	}
	if err = os.WriteFile(path, bs, 0o644); err != nil {
		return ExportError(path, err)
	}

	dur := time.Since(start)
	slog.Info("Export complete",
		"path", path,
		"entities", seed.Total(),
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info("Exported %s entities to <em>%s</em>",
		humanize.Comma(int64(seed.Total())), path)
	return nil
}

func (s *seeder) collect(ctx context.Context) (*schema.Seed, error) {
	var res schema.Seed
	var err error

	lists := []struct {
		kind schema.CategoryKind
		dst  *[]schema.Category
	}{
		{schema.CategoryPantheon, &res.Pantheons},
		{schema.CategoryArchetype, &res.Archetypes},
		{schema.CategoryTag, &res.Tags},
		{schema.CategoryAbilityTiming, &res.AbilityTimings},
	}
	for _, v := range lists {
		if *v.dst, err = s.lab.Categories(ctx, v.kind); err != nil {
			return nil, fmt.Errorf("list %ss: %w", v.kind, err)
		}
	}
	if res.KeywordAbilities, err = s.lab.Abilities(ctx); err != nil {
		return nil, err
	}
	if res.Passives, err = s.lab.Passives(ctx); err != nil {
		return nil, err
	}
	if res.Cards, err = s.lab.QueryCards(ctx, filter.Card{}); err != nil {
		return nil, err
	}
	if res.Locations, err = s.lab.QueryLocations(ctx, filter.Location{}); err != nil {
		return nil, err
	}
	return &res, nil
}

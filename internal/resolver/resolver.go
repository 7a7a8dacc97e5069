// Package resolver turns a DiceCloud creature export into a character sheet model.
//
// Resolution is one stable sort by the records' order field followed by a single
// linear scan. Each record is classified by type and folded into the sheet or into
// one of two id-keyed indices (attacks and spell lists). A short post-pass drains
// the indices, binds spells to their nearest enclosing spell list, marks the
// starting class and normalizes the race name.
package resolver

import (
	"cmp"
	"io"
	"log/slog"
	"slices"

	"github.com/KirkDiggler/dicecloud-sheet/internal/domain/property"
	"github.com/KirkDiggler/dicecloud-sheet/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/dicecloud-sheet/internal/errors"
)

// Config holds optional collaborators for a Resolver
type Config struct {
	// Logger receives debug output about skipped and discarded records.
	// Nil discards everything.
	Logger *slog.Logger
}

// Resolver builds character sheets. It keeps no state between calls and is
// safe for concurrent use.
type Resolver struct {
	logger *slog.Logger
}

// New creates a Resolver
func New(cfg *Config) *Resolver {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cfg != nil && cfg.Logger != nil {
		logger = cfg.Logger
	}
	return &Resolver{logger: logger}
}

// Resolve builds a sheet with a silent resolver
func Resolve(export *property.Export, races map[string]string) (*sheet.Character, error) {
	return New(nil).Resolve(export, races)
}

// Resolve builds the character sheet for one export. races maps exported race
// names to display names and may be nil.
//
// A missing character name, alignment or xp means the export is not a creature
// export at all and fails with a schema error. Every other gap falls back to a
// zero value and the scan carries on.
func (r *Resolver) Resolve(export *property.Export, races map[string]string) (*sheet.Character, error) {
	if export == nil {
		return nil, dnderr.InvalidArgument("export is required")
	}

	creature := export.Creature
	if creature.Name == nil {
		return nil, dnderr.MissingField(property.PathName)
	}
	if creature.Alignment == nil {
		return nil, dnderr.MissingField(property.PathAlignment)
	}
	if creature.XP == nil {
		return nil, dnderr.MissingField(property.PathXP)
	}

	records := make([]property.Record, 0, len(export.Properties))
	for _, rec := range export.Properties {
		if rec != nil {
			records = append(records, rec)
		}
	}
	slices.SortStableFunc(records, func(a, b property.Record) int {
		return cmp.Compare(a.Common().Order, b.Common().Order)
	})

	s := newScan(r.logger)
	for pos, rec := range records {
		s.visit(pos, rec)
	}

	char := s.finish(races)
	char.ID = creature.ID
	char.Name = *creature.Name
	char.Alignment = *creature.Alignment
	char.XP = *creature.XP
	char.Portrait = creature.AvatarPicture
	if char.Portrait == "" {
		char.Portrait = creature.Picture
	}

	r.logger.Debug("resolved character",
		"name", char.Name,
		"records", len(records),
		"skipped", s.skipped,
		"attacks", len(char.Attacks),
		"spell_lists", len(char.SpellLists),
	)

	return char, nil
}

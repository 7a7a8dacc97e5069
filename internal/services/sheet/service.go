package sheet

//go:generate mockgen -destination=mock/mock_service.go -package=mocksheet -source=service.go

import (
	"context"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dicecloud-sheet/internal/domain/property"
	sheetmodel "github.com/KirkDiggler/dicecloud-sheet/internal/domain/sheet"
	dnderr "github.com/KirkDiggler/dicecloud-sheet/internal/errors"
	"github.com/KirkDiggler/dicecloud-sheet/internal/resolver"
	"github.com/KirkDiggler/dicecloud-sheet/internal/uuid"
)

const defaultBatchConcurrency = 4

// RaceSource supplies the race name lookup table
type RaceSource interface {
	Races(ctx context.Context) (map[string]string, error)
}

// Service defines the sheet service interface
type Service interface {
	// Resolve builds the character sheet for one creature export
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)

	// ResolveBatch resolves several exports concurrently. Results keep the
	// order of the inputs; the first failure cancels the rest.
	ResolveBatch(ctx context.Context, input *ResolveBatchInput) (*ResolveBatchOutput, error)
}

// ResolveInput carries one raw creature export document
type ResolveInput struct {
	Export []byte
}

// ResolveOutput is one resolved sheet
type ResolveOutput struct {
	// SheetID is stable for a given creature id
	SheetID   string
	Character *sheetmodel.Character
	// Records is the number of decoded property records
	Records int
	// Skipped counts property entries that could not be decoded
	Skipped int
}

// ResolveBatchInput carries several raw exports
type ResolveBatchInput struct {
	Exports [][]byte
}

// ResolveBatchOutput holds one result per input export, in input order
type ResolveBatchOutput struct {
	Results []*ResolveOutput
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Races            RaceSource         // Required
	Resolver         *resolver.Resolver // Optional, built from Logger if nil
	UUIDGenerator    uuid.Generator     // Optional, will use default if nil
	Logger           *slog.Logger       // Optional, discards output if nil
	BatchConcurrency int                // Optional, defaults to 4
}

// Validate checks the required fields
func (c *ServiceConfig) Validate() error {
	if c == nil {
		return dnderr.InvalidArgument("config is required")
	}
	if c.Races == nil {
		return dnderr.InvalidArgument("race source is required")
	}
	if c.BatchConcurrency < 0 {
		return dnderr.InvalidArgumentf("batch concurrency cannot be negative, got %d", c.BatchConcurrency)
	}
	return nil
}

type service struct {
	races         RaceSource
	resolver      *resolver.Resolver
	uuidGenerator uuid.Generator
	logger        *slog.Logger
	concurrency   int
}

// NewService creates a new sheet service
func NewService(cfg *ServiceConfig) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	svc := &service{
		races:         cfg.Races,
		resolver:      cfg.Resolver,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        cfg.Logger,
		concurrency:   cfg.BatchConcurrency,
	}

	if svc.logger == nil {
		svc.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if svc.resolver == nil {
		svc.resolver = resolver.New(&resolver.Config{Logger: svc.logger})
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.concurrency == 0 {
		svc.concurrency = defaultBatchConcurrency
	}

	return svc, nil
}

// Resolve builds the character sheet for one creature export
func (s *service) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if len(input.Export) == 0 {
		return nil, dnderr.InvalidArgument("export is required")
	}

	races, err := s.loadRaces(ctx)
	if err != nil {
		return nil, err
	}

	log := s.logger.With("request_id", s.uuidGenerator.New())
	return s.resolve(ctx, log, input.Export, races)
}

// ResolveBatch resolves several exports with bounded concurrency
func (s *service) ResolveBatch(ctx context.Context, input *ResolveBatchInput) (*ResolveBatchOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	for i, export := range input.Exports {
		if len(export) == 0 {
			return nil, dnderr.InvalidArgumentf("export %d is empty", i)
		}
	}

	races, err := s.loadRaces(ctx)
	if err != nil {
		return nil, err
	}

	log := s.logger.With("request_id", s.uuidGenerator.New())
	log.Info("resolving batch", "exports", len(input.Exports), "concurrency", s.concurrency)

	results := make([]*ResolveOutput, len(input.Exports))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, export := range input.Exports {
		g.Go(func() error {
			out, err := s.resolve(gctx, log.With("index", i), export, races)
			if err != nil {
				return dnderr.Wrapf(err, "failed to resolve export %d", i).
					WithMeta("index", i)
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ResolveBatchOutput{Results: results}, nil
}

func (s *service) loadRaces(ctx context.Context) (map[string]string, error) {
	races, err := s.races.Races(ctx)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to load race table")
	}
	return races, nil
}

func (s *service) resolve(ctx context.Context, log *slog.Logger, data []byte, races map[string]string) (*ResolveOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	export, err := property.ParseExport(data)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to parse export")
	}

	char, err := s.resolver.Resolve(export, races)
	if err != nil {
		log.Warn("export rejected", "error", err)
		return nil, dnderr.Wrap(err, "failed to resolve character").
			WithMeta("creature_id", export.Creature.ID)
	}

	sheetID := s.uuidGenerator.New()
	if char.ID != "" {
		sheetID = s.uuidGenerator.FromName(char.ID)
	}

	log.Info("resolved sheet",
		"sheet_id", sheetID,
		"character", char.Name,
		"records", len(export.Properties),
		"skipped", export.Skipped,
	)

	return &ResolveOutput{
		SheetID:   sheetID,
		Character: char,
		Records:   len(export.Properties),
		Skipped:   export.Skipped,
	}, nil
}

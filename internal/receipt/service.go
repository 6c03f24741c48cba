package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Scorer computes the points a receipt is worth
type Scorer interface {
	Points(r Receipt) (int, error)
}

// IDGenerator generates unique IDs for receipts
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// uuidGenerator generates random (version 4) UUIDs
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles receipt operations
type Service struct {
	db          DB
	scorer      Scorer
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with a UUID generator and the wall clock
func NewService(db DB, scorer Scorer) *Service {
	return &Service{
		db:          db,
		scorer:      scorer,
		idGenerator: &uuidGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, scorer Scorer, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		scorer:      scorer,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// ProcessReceipt validates and stores a receipt, returning its new ID
func (s *Service) ProcessReceipt(ctx context.Context, r Receipt) (string, error) {
	if err := Validate(&r); err != nil {
		return "", err
	}

	record := &Record{
		ID:        s.idGenerator.Generate(),
		Receipt:   r.Clone(),
		CreatedAt: s.timeSource.Now(),
	}
	if err := s.db.SaveReceipt(ctx, record); err != nil {
		return "", fmt.Errorf("saving receipt: %w", err)
	}

	slog.Debug("Stored receipt", "id", record.ID, "retailer", r.Retailer, "items", len(r.Items))
	return record.ID, nil
}

// GetReceipt retrieves a stored receipt by ID
func (s *Service) GetReceipt(ctx context.Context, id string) (*Record, error) {
	record, err := s.db.GetReceipt(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting receipt: %w", err)
	}
	return record, nil
}

// GetPoints scores the receipt stored under id
func (s *Service) GetPoints(ctx context.Context, id string) (int, error) {
	record, err := s.GetReceipt(ctx, id)
	if err != nil {
		return 0, err
	}

	points, err := s.scorer.Points(record.Receipt)
	if err != nil {
		return 0, fmt.Errorf("scoring receipt %s: %w", id, err)
	}

	slog.Debug("Scored receipt", "id", id, "points", points)
	return points, nil
}

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dogmatch-workers/internal/scoring"

	"github.com/lib/pq"
)

const breedColumns = `id, name, size, exercise_needs, good_with_children, intelligence,
	training_difficulty, shedding, health_risk, breed_group, friendliness,
	COALESCE(life_expectancy, 0), COALESCE(average_weight, 0),
	description, temperament, care, history, images`

// PostgresStore reads and writes the dog_breeds table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// FetchBreeds implements Fetcher.
func (s *PostgresStore) FetchBreeds(ctx context.Context) ([]scoring.Breed, error) {
	return s.AllBreeds(ctx)
}

func (s *PostgresStore) AllBreeds(ctx context.Context) ([]scoring.Breed, error) {
	return s.query(ctx, `SELECT `+breedColumns+` FROM dog_breeds ORDER BY name`)
}

// BreedByName matches case-insensitively and returns ErrBreedNotFound when
// there is no such row.
func (s *PostgresStore) BreedByName(ctx context.Context, name string) (*scoring.Breed, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+breedColumns+` FROM dog_breeds WHERE LOWER(name) = LOWER($1)`, name)

	b, err := scanBreed(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrBreedNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *PostgresStore) BreedsByGroup(ctx context.Context, group scoring.BreedGroup) ([]scoring.Breed, error) {
	return s.query(ctx,
		`SELECT `+breedColumns+` FROM dog_breeds WHERE breed_group = $1 ORDER BY name`, string(group))
}

func (s *PostgresStore) BreedsBySize(ctx context.Context, size scoring.Size) ([]scoring.Breed, error) {
	return s.query(ctx,
		`SELECT `+breedColumns+` FROM dog_breeds WHERE size = $1 ORDER BY name`, string(size))
}

// UpsertBreed inserts b or replaces the row with the same id.
func (s *PostgresStore) UpsertBreed(ctx context.Context, b scoring.Breed) error {
	if err := scoring.ValidateBreed(b); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dog_breeds (
			id, name, size, exercise_needs, good_with_children, intelligence,
			training_difficulty, shedding, health_risk, breed_group, friendliness,
			life_expectancy, average_weight, description, temperament, care, history, images
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			size = EXCLUDED.size,
			exercise_needs = EXCLUDED.exercise_needs,
			good_with_children = EXCLUDED.good_with_children,
			intelligence = EXCLUDED.intelligence,
			training_difficulty = EXCLUDED.training_difficulty,
			shedding = EXCLUDED.shedding,
			health_risk = EXCLUDED.health_risk,
			breed_group = EXCLUDED.breed_group,
			friendliness = EXCLUDED.friendliness,
			life_expectancy = EXCLUDED.life_expectancy,
			average_weight = EXCLUDED.average_weight,
			description = EXCLUDED.description,
			temperament = EXCLUDED.temperament,
			care = EXCLUDED.care,
			history = EXCLUDED.history,
			images = EXCLUDED.images,
			updated_at = NOW()`,
		b.ID, b.Name, string(b.Size), b.ExerciseNeeds, b.GoodWithChildren, b.Intelligence,
		b.TrainingDifficulty, string(b.Shedding), string(b.HealthRisk), string(b.BreedGroup), b.Friendliness,
		b.LifeExpectancy, b.AverageWeight, b.Description,
		pq.Array(nonNil(b.Temperament)), pq.Array(nonNil(b.Care)), b.History, pq.Array(nonNil(b.Images)),
	)
	if err != nil {
		return fmt.Errorf("upsert breed %s: %w", b.Name, err)
	}
	return nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...interface{}) ([]scoring.Breed, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breeds []scoring.Breed
	for rows.Next() {
		b, err := scanBreed(rows)
		if err != nil {
			return nil, err
		}
		breeds = append(breeds, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return breeds, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBreed(row scanner) (*scoring.Breed, error) {
	var b scoring.Breed
	var size, shedding, healthRisk, group string

	err := row.Scan(
		&b.ID, &b.Name, &size, &b.ExerciseNeeds, &b.GoodWithChildren, &b.Intelligence,
		&b.TrainingDifficulty, &shedding, &healthRisk, &group, &b.Friendliness,
		&b.LifeExpectancy, &b.AverageWeight,
		&b.Description, pq.Array(&b.Temperament), pq.Array(&b.Care), &b.History, pq.Array(&b.Images),
	)
	if err != nil {
		return nil, err
	}

	b.Size = scoring.Size(size)
	b.Shedding = scoring.Shedding(shedding)
	b.HealthRisk = scoring.HealthRisk(healthRisk)
	b.BreedGroup = scoring.BreedGroup(group)
	return &b, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package repository

import (
	"context"
	"fmt"

	"cinema-ops/internal/data/entity"
	"cinema-ops/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MovieRepository is read-only: the catalog is owned by an external system,
// the scheduler only consumes it.
type MovieRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindEligible(ctx context.Context) ([]*entity.Movie, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `
		SELECT id, title, description, release_date, duration_in_minutes, is_available, is_coming_soon, created_at, updated_at, deleted_at
		FROM movies
		WHERE id = $1 AND deleted_at IS NULL
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.ReleaseDate,
		&movie.DurationInMinutes,
		&movie.IsAvailable,
		&movie.IsComingSoon,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return &movie, nil
}

func (r *movieRepository) FindEligible(ctx context.Context) ([]*entity.Movie, error) {
	query := `
		SELECT id, title, description, release_date, duration_in_minutes, is_available, is_coming_soon, created_at, updated_at, deleted_at
		FROM movies
		WHERE (is_available = TRUE OR is_coming_soon = TRUE) AND deleted_at IS NULL
		ORDER BY title
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find eligible movies", zap.Error(err))
		return nil, fmt.Errorf("find eligible movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.ReleaseDate,
			&movie.DurationInMinutes,
			&movie.IsAvailable,
			&movie.IsComingSoon,
			&movie.CreatedAt,
			&movie.UpdatedAt,
			&movie.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, &movie)
	}

	return movies, nil
}

package workout

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	// ErrNotFinite is returned for summaries that cannot be stored, such as
	// those produced by a zero duration.
	ErrNotFinite = errors.New("summary has non-finite values")
)

// Workout is a summary kept in the history store together with its readings.
type Workout struct {
	ID      string    `json:"id"`
	Code    string    `json:"code"`
	Data    []float64 `json:"data"`
	Created time.Time `json:"created_at"`
	Summary
	Message string `json:"message"`
}

type Service struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewService(db *sql.DB, logger *slog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

func (s *Service) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS workouts (
        id TEXT PRIMARY KEY,
        code TEXT NOT NULL,
        workout_type TEXT NOT NULL,
        duration REAL,
        distance REAL,
        speed REAL,
        calories REAL,
        data BLOB,
        gpx_hash TEXT UNIQUE,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP)`)
	if err != nil {
		return fmt.Errorf("creating workouts table: %w", err)
	}
	return nil
}

// Add computes the summary for a package and stores it. A non-empty gpxHash
// replaces any workout previously imported from the same track.
func (s *Service) Add(ctx context.Context, pkg Package, gpxHash string) (Workout, error) {
	calc, err := ReadPackage(pkg.Code, pkg.Data)
	if err != nil {
		return Workout{}, err
	}
	summary := Summarize(calc)
	if !summary.finite() {
		return Workout{}, ErrNotFinite
	}

	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(pkg.Data); err != nil {
		return Workout{}, err
	}

	w := Workout{
		ID:      uuid.NewString(),
		Code:    pkg.Code,
		Data:    pkg.Data,
		Created: time.Now().UTC().Truncate(time.Second),
		Summary: summary,
		Message: summary.Message(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Workout{}, err
	}
	defer tx.Rollback()

	var hash sql.NullString
	if gpxHash != "" {
		hash = sql.NullString{String: gpxHash, Valid: true}
		res, err := tx.ExecContext(ctx, "DELETE FROM workouts WHERE gpx_hash = ?", gpxHash)
		if err != nil {
			return Workout{}, err
		}
		deleted, err := res.RowsAffected()
		if err != nil {
			return Workout{}, err
		}
		if deleted > 0 {
			s.logger.Info("Replacing existing workout", slog.String("hash", gpxHash))
		}
	}

	res, err := tx.ExecContext(ctx, `
    INSERT INTO workouts
    (id,
    code,
    workout_type,
    duration,
    distance,
    speed,
    calories,
    data,
    gpx_hash,
    created_at)
    VALUES
    (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID,
		w.Code,
		w.Type,
		w.Duration,
		w.Distance,
		w.Speed,
		w.Calories,
		buffer.Bytes(),
		hash,
		w.Created,
	)
	if err != nil {
		return Workout{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Workout{}, err
	}

	if affected != 1 {
		return Workout{}, fmt.Errorf("expected 1 row to be affected, got %d", affected)
	}

	if err := tx.Commit(); err != nil {
		return Workout{}, err
	}

	s.logger.Debug("Stored workout", slog.String("id", w.ID), slog.String("type", w.Type))
	return w, nil
}

const selectWorkouts = "SELECT id, code, workout_type, duration, distance, speed, calories, data, created_at FROM workouts"

func (s *Service) List(ctx context.Context) ([]Workout, error) {
	rows, err := s.db.QueryContext(ctx, selectWorkouts+" ORDER BY created_at, rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []Workout{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}

func (s *Service) Get(ctx context.Context, id string) (Workout, error) {
	row := s.db.QueryRowContext(ctx, selectWorkouts+" WHERE id = ?", id)
	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Workout{}, ErrWorkoutNotFound
	}
	return w, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row scanner) (Workout, error) {
	var w Workout
	var dataVal []byte
	if err := row.Scan(&w.ID, &w.Code, &w.Type, &w.Duration, &w.Distance, &w.Speed, &w.Calories, &dataVal, &w.Created); err != nil {
		return Workout{}, err
	}

	dec := gob.NewDecoder(bytes.NewBuffer(dataVal))
	if err := dec.Decode(&w.Data); err != nil {
		return Workout{}, fmt.Errorf("decoding readings: %w", err)
	}

	w.Message = w.Summary.Message()
	return w, nil
}

func (s Summary) finite() bool {
	for _, v := range []float64{s.Duration, s.Distance, s.Speed, s.Calories} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

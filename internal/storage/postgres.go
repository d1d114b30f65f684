// Package storage is the persistence collaborator: public-room listing rows
// and per-player round history. All writes are invoked fire-and-forget by
// the engine; the in-memory room state never depends on them.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hectorjsiilva/impostor-game/internal/domain"
)

var ErrUnexpectedDatabase = errors.New("unexpected database error")

type PostgresListing struct {
	pool *pgxpool.Pool
}

func NewPostgresListing(ctx context.Context, connString string) (*PostgresListing, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedDatabase, err)
	}
	return &PostgresListing{pool: pool}, nil
}

func (pl *PostgresListing) Close() {
	pl.pool.Close()
}

func (pl *PostgresListing) RoomCreated(ctx context.Context, room domain.Room) error {
	_, err := pl.pool.Exec(ctx,
		`INSERT INTO active_games (id, creator_id, name, total_players, impostor_count, current_players, status)
		 VALUES ($1, $2, $3, $4, $5, 0, 'waiting')
		 ON CONFLICT (id) DO NOTHING`,
		string(room.ID), room.CreatorID, room.Name, room.TotalPlayers, room.Impostors)
	return wrap(err)
}

func (pl *PostgresListing) UpdatePlayerCount(ctx context.Context, id domain.RoomID, count int) error {
	_, err := pl.pool.Exec(ctx,
		"UPDATE active_games SET current_players = $1 WHERE id = $2", count, string(id))
	return wrap(err)
}

func (pl *PostgresListing) UpdateStatus(ctx context.Context, id domain.RoomID, status string) error {
	_, err := pl.pool.Exec(ctx,
		"UPDATE active_games SET status = $1 WHERE id = $2", status, string(id))
	return wrap(err)
}

func (pl *PostgresListing) RoomDeleted(ctx context.Context, id domain.RoomID) error {
	_, err := pl.pool.Exec(ctx,
		"DELETE FROM active_games WHERE id = $1", string(id))
	return wrap(err)
}

func (pl *PostgresListing) SaveHistory(ctx context.Context, userID string, roomID domain.RoomID, role domain.Role, won bool) error {
	_, err := pl.pool.Exec(ctx,
		`INSERT INTO game_history (user_id, game_id, role, won) VALUES ($1, $2, $3, $4)`,
		userID, string(roomID), role.String(), won)
	return wrap(err)
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnexpectedDatabase, err)
}

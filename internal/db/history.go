package db

import (
	"fmt"
	"time"
)

// RoundRecord is one dealt round. The word is stored server-side only,
// after the round has already been fanned out.
type RoundRecord struct {
	RoomCode    string
	Word        string
	PlayerCount int
	StartedAt   time.Time
}

func (d *DB) RecordRoom(code, hostName string, createdAt time.Time) error {
	_, err := d.conn.Exec(`
		INSERT INTO rooms (code, host_name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET host_name = $2, created_at = $3
	`, code, hostName, createdAt)
	if err != nil {
		return fmt.Errorf("recording room: %w", err)
	}
	return nil
}

func (d *DB) RecordRound(r RoundRecord) error {
	_, err := d.conn.Exec(`
		INSERT INTO rounds (room_code, word, player_count, started_at)
		VALUES ($1, $2, $3, $4)
	`, r.RoomCode, r.Word, r.PlayerCount, r.StartedAt)
	if err != nil {
		return fmt.Errorf("recording round: %w", err)
	}
	return nil
}

func (d *DB) BatchRecordRounds(batch []RoundRecord) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO rounds (room_code, word, player_count, started_at)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return fmt.Errorf("preparing batch: %w", err)
	}
	defer stmt.Close()

	for _, r := range batch {
		if _, err := stmt.Exec(r.RoomCode, r.Word, r.PlayerCount, r.StartedAt); err != nil {
			return fmt.Errorf("inserting round: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	return nil
}

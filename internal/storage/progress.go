package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// Progress is a profile's position in the level campaign.
type Progress struct {
	Profile       string
	CurrentLevel  int
	UnlockedLevel int
}

// IsLevelUnlocked reports whether the level can be played.
func (p Progress) IsLevelUnlocked(id int) bool {
	return id >= 1 && id <= p.UnlockedLevel
}

func newProgress(profile string) Progress {
	return Progress{Profile: profile, CurrentLevel: 1, UnlockedLevel: 1}
}

// Progress returns the stored progress for a profile. A profile that has
// never played starts at level 1.
func (s *Store) Progress(profile string) (Progress, error) {
	p := newProgress(profile)
	err := s.db.QueryRow(
		"SELECT current_level, unlocked_level FROM progress WHERE profile = ?",
		profile,
	).Scan(&p.CurrentLevel, &p.UnlockedLevel)
	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return p, nil
}

func (s *Store) putProgress(p Progress) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (profile, current_level, unlocked_level, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET
			current_level = excluded.current_level,
			unlocked_level = excluded.unlocked_level,
			updated_at = excluded.updated_at`,
		p.Profile, p.CurrentLevel, p.UnlockedLevel,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// SelectLevel makes an unlocked level the profile's current level.
func (s *Store) SelectLevel(profile string, id int) (Progress, error) {
	p, err := s.Progress(profile)
	if err != nil {
		return p, err
	}
	if !p.IsLevelUnlocked(id) {
		return p, fmt.Errorf("%w: %d", ErrLevelLocked, id)
	}
	p.CurrentLevel = id
	return p, s.putProgress(p)
}

// CompleteLevel records a win on level id. The next level is unlocked and
// becomes current, never beyond maxID. Unlocking advances by at most one
// level per win.
func (s *Store) CompleteLevel(profile string, id, maxID int) (Progress, error) {
	p, err := s.Progress(profile)
	if err != nil {
		return p, err
	}
	if !p.IsLevelUnlocked(id) {
		return p, fmt.Errorf("%w: %d", ErrLevelLocked, id)
	}

	next := min(id+1, maxID)
	if next > p.UnlockedLevel {
		p.UnlockedLevel = next
	}
	p.CurrentLevel = max(next, 1)
	return p, s.putProgress(p)
}

// ResetProgress forgets a profile's progress.
func (s *Store) ResetProgress(profile string) error {
	_, err := s.db.Exec("DELETE FROM progress WHERE profile = ?", profile)
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

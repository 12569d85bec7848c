// Package store persists tournaments, groups, and matches to the club
// database. The engine stays pure over the in-memory registry; the facade
// mirrors every successful mutation through this store.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/sabocue/arena/internal/sabo"
)

// New creates a TournamentStore over the given database.
func New(db *sql.DB) TournamentStore {
	return &store{db: db}
}

func (s *store) SaveTournament(t *sabo.Tournament, groups []*sabo.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO tournaments (id, club_id, status, race_to, final_stage_created, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.ClubID, string(t.Status), t.RaceTo, boolToInt(t.FinalStageCreated), t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tournament: %w", err)
	}

	for _, g := range groups {
		participantsJSON, err := json.Marshal(g.Participants)
		if err != nil {
			return fmt.Errorf("failed to marshal participants: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO groups (tournament_id, id, status, participants_json)
			VALUES (?, ?, ?, ?)
		`, g.TournamentID, string(g.ID), string(g.Status), participantsJSON)
		if err != nil {
			return fmt.Errorf("failed to insert group %s: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tournament: %w", err)
	}
	log.Info("Tournament persisted", "tournamentID", t.ID, "groups", len(groups))
	return nil
}

func (s *store) SaveMatches(matches []*sabo.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO matches (id, tournament_id, group_id, side, round, match_number,
			player1, player2, score1, score2, race_to, status, winner_id, winner_to_json, loser_to_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare match insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		winnerTo, loserTo, err := destsToJSON(m)
		if err != nil {
			return err
		}
		_, err = stmt.Exec(m.ID, m.TournamentID, string(m.GroupID), string(m.Side), m.Round, m.MatchNumber,
			m.Player1, m.Player2, m.Score1, m.Score2, m.RaceTo, string(m.Status), m.WinnerID, winnerTo, loserTo)
		if err != nil {
			return fmt.Errorf("failed to insert match %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit matches: %w", err)
	}
	log.Debug("Matches persisted", "count", len(matches))
	return nil
}

// UpdateMatch mirrors a registry mutation. The status guard is the
// optimistic-concurrency token: a row that reached 'completed' only accepts
// the identical result again, anything else is ErrScoreAlreadyFinalized.
func (s *store) UpdateMatch(m *sabo.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE matches
		SET player1 = ?, player2 = ?, score1 = ?, score2 = ?, status = ?, winner_id = ?
		WHERE id = ? AND status != ?
	`, m.Player1, m.Player2, m.Score1, m.Score2, string(m.Status), m.WinnerID, m.ID, string(sabo.MatchCompleted))
	if err != nil {
		return fmt.Errorf("failed to update match %s: %w", m.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// The row is already finalized (or missing). Identical mirror writes
	// are a no-op success so retried submissions stay idempotent.
	var score1, score2 sql.NullInt64
	var status string
	err = s.db.QueryRow(`SELECT score1, score2, status FROM matches WHERE id = ?`, m.ID).Scan(&score1, &score2, &status)
	if err == sql.ErrNoRows {
		return fmt.Errorf("match %s: %w", m.ID, sabo.ErrMatchNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to re-read match %s: %w", m.ID, err)
	}
	if m.Score1 != nil && score1.Valid && *m.Score1 == int(score1.Int64) &&
		m.Score2 != nil && score2.Valid && *m.Score2 == int(score2.Int64) {
		return nil
	}
	return fmt.Errorf("match %s row is finalized: %w", m.ID, sabo.ErrScoreAlreadyFinalized)
}

func (s *store) UpdateGroupStatus(tournamentID string, groupID sabo.GroupID, status sabo.GroupStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE groups SET status = ? WHERE tournament_id = ? AND id = ?`,
		string(status), tournamentID, string(groupID))
	if err != nil {
		return fmt.Errorf("failed to update group status: %w", err)
	}
	log.Info("Group status persisted", "tournamentID", tournamentID, "group", groupID, "status", status)
	return nil
}

func (s *store) UpdateTournament(t *sabo.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE tournaments SET status = ?, final_stage_created = ? WHERE id = ?`,
		string(t.Status), boolToInt(t.FinalStageCreated), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update tournament %s: %w", t.ID, err)
	}
	return nil
}

func (s *store) GetTournament(id string) (*sabo.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getTournamentLocked(id)
}

func (s *store) getTournamentLocked(id string) (*sabo.Tournament, error) {
	var t sabo.Tournament
	var status string
	var finalStageCreated int
	err := s.db.QueryRow(`
		SELECT id, club_id, status, race_to, final_stage_created, created_at
		FROM tournaments WHERE id = ?
	`, id).Scan(&t.ID, &t.ClubID, &status, &t.RaceTo, &finalStageCreated, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tournament %s: %w", id, sabo.ErrTournamentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tournament %s: %w", id, err)
	}
	t.Status = sabo.TournamentStatus(status)
	t.FinalStageCreated = finalStageCreated != 0
	return &t, nil
}

// LoadTournament rehydrates a full tournament for crash-resume: the record,
// both groups, and every match.
func (s *store) LoadTournament(id string) (*sabo.Tournament, []*sabo.Group, []*sabo.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.getTournamentLocked(id)
	if err != nil {
		return nil, nil, nil, err
	}

	rows, err := s.db.Query(`SELECT tournament_id, id, status, participants_json FROM groups WHERE tournament_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []*sabo.Group
	for rows.Next() {
		var g sabo.Group
		var groupID, status string
		var participantsJSON []byte
		if err := rows.Scan(&g.TournamentID, &groupID, &status, &participantsJSON); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		g.ID = sabo.GroupID(groupID)
		g.Status = sabo.GroupStatus(status)
		if err := json.Unmarshal(participantsJSON, &g.Participants); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to unmarshal participants for group %s: %w", groupID, err)
		}
		groups = append(groups, &g)
	}

	matchRows, err := s.db.Query(`
		SELECT id, tournament_id, group_id, side, round, match_number,
			player1, player2, score1, score2, race_to, status, winner_id, winner_to_json, loser_to_json
		FROM matches WHERE tournament_id = ?
		ORDER BY group_id, side, round, match_number
	`, id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer matchRows.Close()

	var matches []*sabo.Match
	for matchRows.Next() {
		m, err := scanMatch(matchRows)
		if err != nil {
			return nil, nil, nil, err
		}
		matches = append(matches, m)
	}
	return t, groups, matches, nil
}

func (s *store) ListTournaments() ([]*sabo.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, club_id, status, race_to, final_stage_created, created_at
		FROM tournaments ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []*sabo.Tournament
	for rows.Next() {
		var t sabo.Tournament
		var status string
		var finalStageCreated int
		if err := rows.Scan(&t.ID, &t.ClubID, &status, &t.RaceTo, &finalStageCreated, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		t.Status = sabo.TournamentStatus(status)
		t.FinalStageCreated = finalStageCreated != 0
		tournaments = append(tournaments, &t)
	}
	return tournaments, nil
}

func scanMatch(scanner interface{ Scan(...any) error }) (*sabo.Match, error) {
	var m sabo.Match
	var groupID, side, status string
	var score1, score2 sql.NullInt64
	var winnerTo, loserTo sql.NullString

	err := scanner.Scan(&m.ID, &m.TournamentID, &groupID, &side, &m.Round, &m.MatchNumber,
		&m.Player1, &m.Player2, &score1, &score2, &m.RaceTo, &status, &m.WinnerID, &winnerTo, &loserTo)
	if err != nil {
		return nil, fmt.Errorf("failed to scan match row: %w", err)
	}
	m.GroupID = sabo.GroupID(groupID)
	m.Side = sabo.BracketSide(side)
	m.Status = sabo.MatchStatus(status)
	if score1.Valid {
		v := int(score1.Int64)
		m.Score1 = &v
	}
	if score2.Valid {
		v := int(score2.Int64)
		m.Score2 = &v
	}
	if winnerTo.Valid && winnerTo.String != "" {
		var d sabo.Destination
		if err := json.Unmarshal([]byte(winnerTo.String), &d); err != nil {
			return nil, fmt.Errorf("failed to unmarshal winner destination for match %s: %w", m.ID, err)
		}
		m.WinnerTo = &d
	}
	if loserTo.Valid && loserTo.String != "" {
		var d sabo.Destination
		if err := json.Unmarshal([]byte(loserTo.String), &d); err != nil {
			return nil, fmt.Errorf("failed to unmarshal loser destination for match %s: %w", m.ID, err)
		}
		m.LoserTo = &d
	}
	return &m, nil
}

func destsToJSON(m *sabo.Match) (winnerTo, loserTo any, err error) {
	if m.WinnerTo != nil {
		b, err := json.Marshal(m.WinnerTo)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal winner destination: %w", err)
		}
		winnerTo = string(b)
	}
	if m.LoserTo != nil {
		b, err := json.Marshal(m.LoserTo)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal loser destination: %w", err)
		}
		loserTo = string(b)
	}
	return winnerTo, loserTo, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

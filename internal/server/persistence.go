package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"wordwolf/internal/db"

	"github.com/jackc/pgconn"
)

// persistMatch archives a terminal result. The match key is fixed at game
// start, so a double invocation (or a replayed expiry) hits the unique index
// and is treated as already recorded.
func (s *Server) persistMatch(room *Room, result *GameResult) error {
	if s.db == nil {
		return nil
	}
	roles, err := json.Marshal(result.Roles)
	if err != nil {
		return err
	}
	record := db.Match{
		MatchKey:   room.MatchKey,
		RoomCode:   room.Code,
		Winner:     result.Winner,
		Reason:     result.Reason,
		SecretWord: result.SecretWord,
		Roles:      roles,
		EndedAt:    result.EndedAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

type matchSummary struct {
	RoomCode string    `json:"roomCode"`
	Winner   string    `json:"winner"`
	Reason   string    `json:"reason"`
	EndedAt  time.Time `json:"endedAt"`
}

func (s *Server) handleListMatches(w http.ResponseWriter, _ *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusOK, []matchSummary{})
		return
	}
	var records []db.Match
	if err := s.db.Order("ended_at DESC").Limit(50).Find(&records).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list matches")
		return
	}
	summaries := make([]matchSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, matchSummary{
			RoomCode: record.RoomCode,
			Winner:   record.Winner,
			Reason:   record.Reason,
			EndedAt:  record.EndedAt,
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

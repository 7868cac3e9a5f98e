package leagueapi

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-manager/internal/domain/roster"
)

type envelope[T any] struct {
	APIVersion string `json:"apiVersion"`
	Data       T      `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

type leagueDTO struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type teamDTO struct {
	ID       string `json:"id"`
	LeagueID string `json:"league_id"`
	Name     string `json:"name"`
}

type leagueDetailDTO struct {
	leagueDTO
	Teams []teamDTO `json:"teams"`
}

func (d leagueDetailDTO) toSnapshot() roster.Snapshot {
	teams := make(roster.Roster, 0, len(d.Teams))
	for _, t := range d.Teams {
		teams = append(teams, roster.Team{ID: t.ID, Name: t.Name})
	}
	return roster.Snapshot{LeagueID: d.ID, Name: d.Name, Teams: teams}
}

type LeagueSummary struct {
	ID        string
	Name      string
	UpdatedAt time.Time
}

// APIError is a non-2xx answer from the league API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status=%d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status=%d %s: %s", e.Method, e.Path, e.StatusCode, e.Status, e.Message)
}

func decodeAPIError(method, path string, statusCode int, raw []byte) *APIError {
	out := &APIError{Method: method, Path: path, StatusCode: statusCode}

	var decoded errorEnvelope
	if err := sonic.Unmarshal(raw, &decoded); err == nil && decoded.Error.Message != "" {
		out.Status = decoded.Error.Status
		out.Message = decoded.Error.Message
		return out
	}
	out.Message = abbreviate(string(raw), 256)
	return out
}

func abbreviate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit] + "..."
}

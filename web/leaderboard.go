/* leaderboard.go
 * Contains the JSON leaderboard endpoint for weekly and season standings
 * Authors: Zachary Bower
 */

package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"pool-bot/api/store"
	"pool-bot/pkg/metrics"

	"go.mongodb.org/mongo-driver/mongo"
)

// LeaderboardResponse is the JSON shape served to pool front ends
type LeaderboardResponse struct {
	PoolID  string                   `json:"pool_id"`
	Season  int                      `json:"season"`
	Week    int                      `json:"week"`
	Entries []store.LeaderboardEntry `json:"entries"`
}

// LeaderboardHandler serves a stored leaderboard as JSON. The week query
// parameter selects the week; omitting it serves the season-cumulative view
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: Writes the leaderboard JSON, or an error status if it occurs
func (s *Server) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		metrics.RecordHTTPRequest("/leaderboard", r.Method, "405")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	week := 0
	if raw := r.URL.Query().Get("week"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			metrics.RecordHTTPRequest("/leaderboard", r.Method, "400")
			http.Error(w, "week must be a non-negative integer", http.StatusBadRequest)
			return
		}
		week = parsed
	}

	entries, err := s.api.Store.FetchLeaderboardFromDB(week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			metrics.RecordHTTPRequest("/leaderboard", r.Method, "404")
			http.Error(w, "no leaderboard has been generated for this week", http.StatusNotFound)
			return
		}
		log.Println("failed to fetch leaderboard:", err)
		metrics.RecordHTTPRequest("/leaderboard", r.Method, "500")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response := LeaderboardResponse{
		PoolID:  s.api.Store.GetPoolID(),
		Season:  s.api.Store.GetSeason(),
		Week:    week,
		Entries: entries,
	}

	w.Header().Set("Content-Type", "application/json")
	metrics.RecordHTTPRequest("/leaderboard", r.Method, "200")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Println("failed to encode leaderboard response:", err)
	}
}

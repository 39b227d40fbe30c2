/* webhook.go
 * Contains the results provider webhook handler that triggers the scoring pipeline
 * Authors: Zachary Bower
 */

package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"pool-bot/pkg/metrics"
)

type ProviderEvent struct {
	Season int    `json:"season"`
	Week   int    `json:"week"`
	Event  string `json:"event"`
}

// isRelevantEvent filters webhook noise: only events for our season with a
// usable week number kick off the pipeline
func isRelevantEvent(event ProviderEvent, season int) bool {
	if event.Season != season {
		return false
	}
	return event.Week > 0
}

// ResultsWebhookHandler HTTP endpoint that receives a webhook from the results provider used to kick off
// updating stored game data and recalculating member scores
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: Kicks off the weekly pipeline for the event's week
func (s *Server) ResultsWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		metrics.RecordWebhookEvent("rejected")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var event ProviderEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Println("failed to decode webhook:", err)
		metrics.RecordWebhookEvent("rejected")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !isRelevantEvent(event, s.api.Store.GetSeason()) {
		metrics.RecordWebhookEvent("ignored")
		w.WriteHeader(http.StatusOK)
		return
	}

	log.Printf("provider event season=%d week=%d event=%s\n", event.Season, event.Week, event.Event)
	metrics.RecordWebhookEvent("accepted")

	// Kick async pipeline - sync, score, survivors, leaderboards
	go func(e ProviderEvent) {
		if _, err := s.api.RunWeekPipeline(context.Background(), e.Week); err != nil {
			log.Println("week pipeline failed:", err)
			return
		}
	}(event)

	w.WriteHeader(http.StatusOK)
}

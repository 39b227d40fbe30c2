/* models.go
 * This file contain the interfaces, structs and helper functions that are used by api consumers
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"pool-bot/api/shared"
)

// Provider is the slice of the results-provider client the facade needs.
// Lets tests substitute a canned schedule for the real HTTP client
type Provider interface {
	FetchWeekGames(ctx context.Context, week int) ([]shared.Game, error)
}

// ScoreSummary represents the outcome of scoring one week for the whole pool
type ScoreSummary struct {
	Week   int
	Scored int
	Flags  []string
}

/* metrics_test.go
 * Contains unit tests for the metrics manager
 * AI-Generated
 */

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	registry := prometheus.NewRegistry()
	manager := NewManager(registry)
	assert.NotNil(t, manager)
}

func TestRecordingHelpers(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordWeekSynced()
		RecordMembersScored(12)
		RecordPipelineLatency(42.5)
		RecordLeaderboardUpdate()
		RecordScoreDiscrepancies(1)
		RecordWebhookEvent("accepted")
		RecordHTTPRequest("/leaderboard", "GET", "200")
		RecordPipelineError()
	})
}

func TestGetRegistry_ExposesMetrics(t *testing.T) {
	RecordWeekSynced()
	RecordWebhookEvent("accepted")

	families, err := GetRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}
	assert.True(t, names["poolbot_weeks_synced_total"])
	assert.True(t, names["poolbot_webhook_events_total"])
}

// Package telemetry ships bot usage and pipeline metrics to Google
// Cloud Monitoring. A client built without a project ID is a no-op, so
// callers never need to guard their metric calls.
package telemetry

import (
	"context"
	"fmt"
	"time"

	monitoring "cloud.google.com/go/monitoring/apiv3"
	"google.golang.org/genproto/googleapis/api/metric"
	"google.golang.org/genproto/googleapis/api/monitoredres"
	monitoringpb "google.golang.org/genproto/googleapis/monitoring/v3"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/SamOutabrae/Sprocket-hypixel/tracking"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// Client wraps the Cloud Monitoring metric client.
type Client struct {
	client    *monitoring.MetricClient
	projectID string
	enabled   bool
}

// NewClient builds a telemetry client. Credentials come from the
// standard GOOGLE_APPLICATION_CREDENTIALS mechanism; any setup failure
// disables telemetry rather than failing startup.
func NewClient(projectID string) *Client {
	if projectID == "" {
		utils.Warn("Project ID not provided, telemetry disabled")
		return &Client{enabled: false}
	}

	client, err := monitoring.NewMetricClient(context.Background())
	if err != nil {
		utils.Warn("Failed to create monitoring client: %v", err)
		utils.Warn("Telemetry disabled")
		return &Client{enabled: false}
	}

	utils.Info("Google Cloud Monitoring telemetry enabled for project: %s", projectID)
	return &Client{
		client:    client,
		projectID: projectID,
		enabled:   true,
	}
}

// RecordCommand counts one command invocation.
func (m *Client) RecordCommand(command string) {
	if !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{Seconds: time.Now().Unix()}

	if err := m.sendLabeledMetric(ctx, "sprocket/commands/usage", 1.0, now, map[string]string{
		"command": command,
	}); err != nil {
		utils.Warn("Failed to send command metric: %v", err)
		return
	}
	utils.Debug("Command metric sent: %s", command)
}

// RecordUpdateCycle reports one daily snapshot cycle's outcome.
func (m *Client) RecordUpdateCycle(summary tracking.UpdateSummary) {
	if !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{Seconds: time.Now().Unix()}

	values := map[string]float64{
		"sprocket/update/players":          float64(summary.Players),
		"sprocket/update/written":          float64(summary.Written),
		"sprocket/update/remapped":         float64(summary.Remapped),
		"sprocket/update/failed":           float64(summary.Failed),
		"sprocket/update/duration_seconds": summary.Duration.Seconds(),
	}
	for metricType, value := range values {
		if err := m.sendCustomMetric(ctx, metricType, value, now); err != nil {
			utils.Warn("Failed to send update cycle metric %s: %v", metricType, err)
		}
	}
	utils.Debug("Update cycle metrics sent")
}

// RecordCacheMetrics reports API cache effectiveness.
func (m *Client) RecordCacheMetrics(totalCalls, cacheHits, cacheMisses int64, hitRate float64) {
	if !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{Seconds: time.Now().Unix()}

	values := map[string]float64{
		"sprocket/cache/hit_rate":    hitRate,
		"sprocket/cache/total_calls": float64(totalCalls),
		"sprocket/cache/hits":        float64(cacheHits),
		"sprocket/cache/misses":      float64(cacheMisses),
	}
	for metricType, value := range values {
		if err := m.sendCustomMetric(ctx, metricType, value, now); err != nil {
			utils.Warn("Failed to send cache metric %s: %v", metricType, err)
		}
	}
	utils.Debug("Cache metrics sent to Google Cloud Monitoring")
}

// RecordOperation reports one operation's duration and outcome.
func (m *Client) RecordOperation(operation string, duration time.Duration, success bool) {
	if !m.enabled {
		return
	}

	ctx := context.Background()
	now := &timestamppb.Timestamp{Seconds: time.Now().Unix()}

	if err := m.sendLabeledMetric(ctx, "sprocket/performance/duration", duration.Seconds(), now, map[string]string{
		"operation": operation,
		"success":   fmt.Sprintf("%t", success),
	}); err != nil {
		utils.Warn("Failed to send performance duration metric: %v", err)
	}

	successValue := 0.0
	if success {
		successValue = 1.0
	}
	if err := m.sendLabeledMetric(ctx, "sprocket/performance/success_rate", successValue, now, map[string]string{
		"operation": operation,
	}); err != nil {
		utils.Warn("Failed to send success rate metric: %v", err)
	}
}

func (m *Client) sendCustomMetric(ctx context.Context, metricType string, value float64, timestamp *timestamppb.Timestamp) error {
	return m.sendLabeledMetric(ctx, metricType, value, timestamp, nil)
}

func (m *Client) sendLabeledMetric(ctx context.Context, metricType string, value float64, timestamp *timestamppb.Timestamp, labels map[string]string) error {
	if labels == nil {
		labels = make(map[string]string)
	}

	req := &monitoringpb.CreateTimeSeriesRequest{
		Name: fmt.Sprintf("projects/%s", m.projectID),
		TimeSeries: []*monitoringpb.TimeSeries{
			{
				Metric: &metric.Metric{
					Type:   fmt.Sprintf("custom.googleapis.com/%s", metricType),
					Labels: labels,
				},
				Resource: &monitoredres.MonitoredResource{
					Type: "generic_task",
					Labels: map[string]string{
						"project_id": m.projectID,
						"location":   "global",
						"namespace":  "sprocket-hypixel",
						"job":        "stats-bot",
						"task_id":    "main",
					},
				},
				Points: []*monitoringpb.Point{
					{
						Interval: &monitoringpb.TimeInterval{
							EndTime: timestamp,
						},
						Value: &monitoringpb.TypedValue{
							Value: &monitoringpb.TypedValue_DoubleValue{
								DoubleValue: value,
							},
						},
					},
				},
			},
		},
	}

	return m.client.CreateTimeSeries(ctx, req)
}

// Close releases the monitoring client.
func (m *Client) Close() error {
	if !m.enabled || m.client == nil {
		return nil
	}
	return m.client.Close()
}

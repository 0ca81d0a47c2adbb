// Package database pushes run summaries to InfluxDB for fleet-level
// dashboards. The sink is optional; every failure here is reported to the
// caller as a non-fatal condition.
package database

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/sirupsen/logrus"

	"QNNLogParser/pkg/logging"
)

const summaryMeasurement = "qnn_run_summary"

// InfluxConfig holds the connection settings for the summary sink.
type InfluxConfig struct {
	URL    string
	Org    string
	Bucket string
	Token  string
}

type InfluxClient struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

// NewInfluxClient connects and verifies the server health.
func NewInfluxClient(cfg InfluxConfig) (*InfluxClient, error) {
	logger := logging.GetLogger()

	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to InfluxDB at %s: %w", cfg.URL, err)
	}
	if health.Status != "pass" {
		client.Close()
		return nil, fmt.Errorf("InfluxDB health check failed: %s", health.Status)
	}

	logger.WithFields(logrus.Fields{
		"url":    cfg.URL,
		"bucket": cfg.Bucket,
		"org":    cfg.Org,
	}).Info("Connected to InfluxDB")

	return &InfluxClient{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
	}, nil
}

// PushSummary writes one summary point tagged with the run identity.
func (c *InfluxClient) PushSummary(ctx context.Context, tags map[string]string, fields map[string]interface{}) error {
	point := influxdb2.NewPoint(summaryMeasurement, tags, fields, time.Now())
	if err := c.writeAPI.WritePoint(ctx, point); err != nil {
		return fmt.Errorf("failed to write summary point: %w", err)
	}
	return nil
}

func (c *InfluxClient) Close() {
	c.client.Close()
}

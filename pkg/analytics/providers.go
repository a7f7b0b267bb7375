package analytics

import (
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-sdui/pkg/metrics"
)

// LogProvider writes records to a logrus logger.
type LogProvider struct {
	config Config
	logger logrus.FieldLogger
}

// NewLogProvider returns a provider logging at info level. A nil logger uses
// the logrus standard logger.
func NewLogProvider(config Config, logger logrus.FieldLogger) *LogProvider {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogProvider{config: config, logger: logger}
}

func (p *LogProvider) Config() Config {
	return p.config
}

func (p *LogProvider) CreateRecord(record Record) {
	fields := logrus.Fields{
		"record_id": record.ID,
		"type":      record.Type,
	}
	if record.Platform != "" {
		fields["platform"] = record.Platform
	}
	if record.Screen != "" {
		fields["screen"] = record.Screen
	}
	if record.ActionType != "" {
		fields["action"] = record.ActionType
		fields["event"] = record.Event
		fields["component"] = record.Component.Type
		fields["view_id"] = record.Component.ID
	}
	if len(record.Attributes) > 0 {
		fields["attributes"] = record.Attributes
	}
	if len(record.AdditionalEntries) > 0 {
		fields["additional"] = record.AdditionalEntries
	}
	p.logger.WithFields(fields).Info("analytics record")
}

// MetricsProvider counts records with prometheus.
type MetricsProvider struct {
	config Config
}

// NewMetricsProvider returns a provider counting records per action type.
func NewMetricsProvider(config Config) *MetricsProvider {
	return &MetricsProvider{config: config}
}

func (p *MetricsProvider) Config() Config {
	return p.config
}

func (p *MetricsProvider) CreateRecord(record Record) {
	label := record.Type
	if record.ActionType != "" {
		label = record.ActionType
	}
	metrics.RecordAnalytics(label)
}

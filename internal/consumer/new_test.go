package consumer

import (
	"strings"
	"testing"

	"report-srv/config"
	"report-srv/pkg/log"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"no logger", Config{}, "logger"},
		{"no config", Config{Logger: log.NewNop()}, "config"},
		{"no brokers", Config{Logger: log.NewNop(), Config: &config.Config{}}, "kafka brokers"},
		{
			"no redis",
			Config{Logger: log.NewNop(), Config: &config.Config{}, KafkaConfig: config.KafkaConfig{Brokers: []string{"b:9092"}}},
			"redis",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("New() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

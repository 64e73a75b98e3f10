package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestConfigGetters(t *testing.T) {
	t.Parallel()

	empty := &Config{}
	assert.Equal(t, DefaultServiceName, empty.GetServiceName())
	assert.Equal(t, "unknown", empty.GetServiceVersion())
	assert.Equal(t, DefaultEndpoint, empty.GetEndpoint())
	assert.False(t, empty.GetInsecure())

	full := &Config{
		ServiceName:    "sync-staging",
		ServiceVersion: "1.2.3",
		Endpoint:       "otel:4318",
		Insecure:       true,
	}
	assert.Equal(t, "sync-staging", full.GetServiceName())
	assert.Equal(t, "1.2.3", full.GetServiceVersion())
	assert.Equal(t, "otel:4318", full.GetEndpoint())
	assert.True(t, full.GetInsecure())
}

func TestTracingConfig_GetSampling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   *TracingConfig
		expected float64
	}{
		{name: "nil config", config: nil, expected: DefaultSampling},
		{name: "nil sampling", config: &TracingConfig{Enabled: true}, expected: DefaultSampling},
		{name: "explicit zero", config: &TracingConfig{Sampling: floatPtr(0)}, expected: 0},
		{name: "explicit value", config: &TracingConfig{Sampling: floatPtr(0.5)}, expected: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.config.GetSampling())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *Config
		wantErr string
	}{
		{name: "nil config", config: nil},
		{name: "disabled config", config: &Config{Enabled: false, Tracing: &TracingConfig{Enabled: true, Sampling: floatPtr(7)}}},
		{name: "enabled without tracing or metrics", config: &Config{Enabled: true}},
		{
			name: "valid full config",
			config: &Config{
				Enabled:  true,
				Endpoint: "localhost:4318",
				Tracing:  &TracingConfig{Enabled: true, Sampling: floatPtr(0.5)},
				Metrics:  &MetricsConfig{Enabled: true},
			},
		},
		{
			name:   "disabled tracing ignores sampling",
			config: &Config{Enabled: true, Tracing: &TracingConfig{Enabled: false, Sampling: floatPtr(-1)}},
		},
		{
			name:    "sampling above one",
			config:  &Config{Enabled: true, Tracing: &TracingConfig{Enabled: true, Sampling: floatPtr(1.1)}},
			wantErr: "tracing: sampling must be between 0.0 and 1.0",
		},
		{
			name:    "negative sampling",
			config:  &Config{Enabled: true, Tracing: &TracingConfig{Enabled: true, Sampling: floatPtr(-0.1)}},
			wantErr: "sampling must be between 0.0 and 1.0",
		},
		{
			name:   "prometheus exporter",
			config: &Config{Enabled: true, Metrics: &MetricsConfig{Enabled: true, Exporter: MetricsExporterPrometheus}},
		},
		{
			name:    "unknown exporter",
			config:  &Config{Enabled: true, Metrics: &MetricsConfig{Enabled: true, Exporter: "statsd"}},
			wantErr: `metrics: exporter must be otlp or prometheus, got "statsd"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.config.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMetricsConfigGetExporter(t *testing.T) {
	t.Parallel()

	var nilConfig *MetricsConfig
	assert.Equal(t, MetricsExporterOTLP, nilConfig.GetExporter())
	assert.Equal(t, MetricsExporterOTLP, (&MetricsConfig{}).GetExporter())
	assert.Equal(t, MetricsExporterPrometheus, (&MetricsConfig{Exporter: MetricsExporterPrometheus}).GetExporter())
}

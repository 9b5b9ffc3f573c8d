package otel

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/Bablu7011/internship-project/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "http/protobuf")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")
	t.Setenv("OTEL_TRACES_SAMPLER", "")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")

	s := SettingsFromEnv()

	assert.True(t, s.Disabled)
	assert.Equal(t, DefaultServiceName, s.ServiceName)
	assert.Equal(t, "http/protobuf", s.Protocol)
	assert.Equal(t, "http://collector:4318", s.Endpoint)
	assert.Equal(t, "parentbased_traceidratio", s.Sampler)
	assert.Equal(t, "0.25", s.SamplerArg)
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		name, arg string
		contains  string
	}{
		{"always_on", "", "AlwaysOnSampler"},
		{"always_off", "", "AlwaysOffSampler"},
		{"traceidratio", "0.5", "TraceIDRatioBased{0.5}"},
		{"traceidratio", "garbage", "AlwaysOnSampler"},
		{"parentbased_always_off", "", "ParentBased{root:AlwaysOffSampler"},
		{"parentbased_traceidratio", "0.1", "ParentBased{root:TraceIDRatioBased{0.1}"},
		{"unknown", "", "ParentBased{root:AlwaysOnSampler"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.arg, func(t *testing.T) {
			assert.Contains(t, newSampler(tt.name, tt.arg).Description(), tt.contains)
		})
	}
}

func TestParseRatio(t *testing.T) {
	assert.Equal(t, 0.3, parseRatio("0.3"))
	assert.Equal(t, 1.0, parseRatio("2"))
	assert.Equal(t, 1.0, parseRatio("-1"))
	assert.Equal(t, 1.0, parseRatio(""))
}

func TestNewExporter_Unsupported(t *testing.T) {
	exp, err := newExporter(context.Background(), "zipkin")
	assert.EqualError(t, err, "unsupported OTLP protocol: zipkin")
	assert.Nil(t, exp)
}

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Settings{Disabled: true}, time.UTC)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	shutdown, err := Init(context.Background(), Settings{ServiceName: "test", Protocol: "zipkin"}, time.UTC)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_LogsEventKey(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(os.Stdout) })

	_, err := Init(context.Background(), Settings{Disabled: true}, time.UTC)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tracing_configured", entry["event"])
	assert.Equal(t, false, entry["tracing_enabled"])
	assert.NotContains(t, entry, "msg")
}

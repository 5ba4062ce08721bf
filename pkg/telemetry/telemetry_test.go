package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "")

	cfg := LoadFromEnv()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "puzzle-scout", cfg.ServiceName)
	assert.Equal(t, "grpc", cfg.Protocol)
}

func TestLoadFromEnv_Enabled(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "TRUE")
	t.Setenv("OTEL_SERVICE_NAME", "scout-test")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "Authorization=Bearer abc, X-Extra=1")

	cfg := LoadFromEnv()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "scout-test", cfg.ServiceName)
	assert.Equal(t, "Bearer abc", cfg.Headers["Authorization"])
	assert.Equal(t, "1", cfg.Headers["X-Extra"])
}

func TestParseKeyValuePairs(t *testing.T) {
	pairs := parseKeyValuePairs("a=1,b=x=y,,=skip,c=")

	assert.Equal(t, "1", pairs["a"])
	assert.Equal(t, "x=y", pairs["b"])
	assert.Equal(t, "", pairs["c"])
	assert.NotContains(t, pairs, "")
}

func TestCreateSampler(t *testing.T) {
	cases := []struct {
		sampler string
		arg     string
		want    sdktrace.Sampler
	}{
		{"always_on", "", sdktrace.AlwaysSample()},
		{"always_off", "", sdktrace.NeverSample()},
		{"traceidratio", "0.25", sdktrace.TraceIDRatioBased(0.25)},
		{"", "", sdktrace.AlwaysSample()},
		{"bogus", "", sdktrace.AlwaysSample()},
	}

	for _, tc := range cases {
		got := createSampler(&Config{Sampler: tc.sampler, SamplerArg: tc.arg})
		assert.Equal(t, tc.want.Description(), got.Description(), "sampler %q", tc.sampler)
	}
}

func TestParseRatio(t *testing.T) {
	assert.Equal(t, 1.0, parseRatio(""))
	assert.Equal(t, 0.5, parseRatio("0.5"))
	assert.Equal(t, 1.0, parseRatio("2.0"))
	assert.Equal(t, 1.0, parseRatio("junk"))
}

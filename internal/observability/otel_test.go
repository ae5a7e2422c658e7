package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-news-backend/internal/config"
)

func preserveOTelGlobals(t *testing.T) func() {
	t.Helper()
	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	return func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	}
}

func enabledConfig(name string) config.OTELConfig {
	return config.OTELConfig{
		Enabled:     true,
		Insecure:    true,
		Endpoint:    "localhost:4317",
		ServiceName: name,
		SampleRatio: 1.0,
	}
}

func TestSetupOTel_Disabled_NoOp(t *testing.T) {
	defer preserveOTelGlobals(t)()
	prevTP := otel.GetTracerProvider()

	cfg := enabledConfig("news-api")
	cfg.Enabled = false
	shutdown, err := SetupOTel(context.Background(), cfg, "v0.0.0")
	if err != nil || shutdown == nil {
		t.Fatalf("disabled setup: shutdown=%v err=%v", shutdown != nil, err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("no-op shutdown returned error: %v", err)
	}
	if otel.GetTracerProvider() != prevTP {
		t.Fatalf("disabled setup replaced the tracer provider")
	}
}

func TestSetupOTel_InstallsProvider(t *testing.T) {
	cases := []struct {
		name     string
		insecure bool
		cancel   bool
	}{
		{"insecure", true, false},
		{"tls", false, false},
		// exporter connects lazily, so a cancelled setup context is fine
		{"cancelled context", true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer preserveOTelGlobals(t)()

			ctx, cancel := context.WithCancel(context.Background())
			if tc.cancel {
				cancel()
			} else {
				defer cancel()
			}
			cfg := enabledConfig("news-" + tc.name)
			cfg.Insecure = tc.insecure

			shutdown, err := SetupOTel(ctx, cfg, "v1.2.3")
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
				t.Fatalf("expected *sdktrace.TracerProvider")
			}

			// a span started under the new provider propagates as traceparent
			spanCtx, span := otel.Tracer("articles").Start(context.Background(), "GET /api/articles",
				trace.WithSpanKind(trace.SpanKindServer))
			carrier := propagation.MapCarrier{}
			otel.GetTextMapPropagator().Inject(spanCtx, carrier)
			span.End()
			if carrier.Get("traceparent") == "" {
				t.Fatalf("traceparent not injected: %v", carrier)
			}

			sctx, scancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
			defer scancel()
			_ = shutdown(sctx)
		})
	}
}

func TestSetupOTel_FailuresLeaveGlobalsIntact(t *testing.T) {
	cases := []struct {
		name  string
		sabotage func() (restore func())
	}{
		{"exporter", func() func() {
			orig := newOTLPExporterFn
			newOTLPExporterFn = func(context.Context, otlptrace.Client) (*otlptrace.Exporter, error) {
				return nil, errors.New("boom-exporter")
			}
			return func() { newOTLPExporterFn = orig }
		}},
		{"resource", func() func() {
			orig := newServiceResourceFn
			newServiceResourceFn = func(context.Context, string, string) (*resource.Resource, error) {
				return nil, errors.New("boom-resource")
			}
			return func() { newServiceResourceFn = orig }
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer preserveOTelGlobals(t)()
			defer tc.sabotage()()

			prevTP := otel.GetTracerProvider()
			prevProp := otel.GetTextMapPropagator()

			if _, err := SetupOTel(context.Background(), enabledConfig("news-api"), "v0"); err == nil || !strings.Contains(err.Error(), "boom-"+tc.name) {
				t.Fatalf("expected boom-%s, got %v", tc.name, err)
			}
			if otel.GetTracerProvider() != prevTP || otel.GetTextMapPropagator() != prevProp {
				t.Fatalf("globals changed on failure")
			}
		})
	}
}

func TestSampler_ClampsRatio(t *testing.T) {
	cases := []struct {
		ratio float64
		want  string
	}{
		{1, "AlwaysOnSampler"},
		{2.5, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
		{0.25, "TraceIDRatioBased{0.25}"},
	}
	for _, tc := range cases {
		got := sampler(tc.ratio).Description()
		if !strings.Contains(got, tc.want) {
			t.Fatalf("ratio %v: description %q does not mention %q", tc.ratio, got, tc.want)
		}
		if !strings.HasPrefix(got, "ParentBased{") {
			t.Fatalf("ratio %v: expected parent-based sampler, got %q", tc.ratio, got)
		}
	}
}

func TestServiceResource_CarriesNamespace(t *testing.T) {
	res, err := newServiceResourceFn(context.Background(), "news-api", "v1")
	if err != nil {
		t.Fatalf("resource: %v", err)
	}
	found := false
	for _, kv := range res.Attributes() {
		if string(kv.Key) == "service.namespace" && kv.Value.AsString() == "news" {
			found = true
		}
	}
	if !found {
		t.Fatalf("service.namespace missing: %v", res.Attributes())
	}
}

package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan_RecordsAttributesAndErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs := New("dogmatch-test", WithRegisterer(promclient.NewRegistry()), WithSpanProcessor(recorder))
	defer obs.Shutdown()

	_, span := obs.StartSpan(context.Background(), "recommend-breed", attribute.Int64("jobKey", 42))
	EndSpan(span, errors.New("catalog down"))

	_, ok := obs.StartSpan(context.Background(), "find-similar-breeds")
	EndSpan(ok, nil)

	ended := recorder.Ended()
	require.Len(t, ended, 2)

	assert.Equal(t, "recommend-breed", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Contains(t, ended[0].Attributes(), attribute.Int64("jobKey", 42))
	require.Len(t, ended[0].Events(), 1)

	assert.Equal(t, codes.Ok, ended[1].Status().Code)
}

func TestRecordJobMetrics(t *testing.T) {
	reg := promclient.NewRegistry()
	obs := New("dogmatch-test", WithRegisterer(reg))
	defer obs.Shutdown()

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "recommend-breed", "success")
	obs.RecordJobDuration(ctx, "recommend-breed", 25*time.Millisecond, "success")

	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, f := range families {
		if strings.Contains(f.GetName(), "processed") {
			found = true
		}
	}
	assert.True(t, found, "jobs.processed counter not exported")
}

func TestNilObservabilityIsSafe(t *testing.T) {
	var obs *Observability
	ctx, span := obs.StartSpan(context.Background(), "noop")
	assert.NotNil(t, ctx)
	EndSpan(span, nil)
	obs.RecordJobProcessed(ctx, "x", "success")
	obs.Shutdown()
}

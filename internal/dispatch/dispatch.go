// Package dispatch turns one user search into the sequence of views shown in
// the output region.
package dispatch

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"countrylookup/internal/assert"
	"countrylookup/internal/components/telemetry"
	"countrylookup/internal/restcountries"
	"countrylookup/internal/view"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const (
	report_dispatch_counter = "dispatch.counter"
)

var (
	tracer = otel.Tracer("countrylookup/dispatch")
	meter  = otel.Meter("countrylookup/dispatch")
)

// Searcher is the outbound lookup, *restcountries.Client implements it.
type Searcher interface {
	SearchByName(ctx context.Context, name string) ([]restcountries.Record, error)
}

type Option func(d *Dispatcher)

// WithLatestOnly drops the result of a dispatch if a newer dispatch started
// after it, instead of letting whichever response arrives last win.
func WithLatestOnly() Option {
	return func(d *Dispatcher) {
		d.latestOnly = true
	}
}

type Dispatcher struct {
	searcher   Searcher
	tel        telemetry.API
	latestOnly bool
	ticket     atomic.Uint64
	searches   metric.Int64Counter
}

func NewDispatcher(searcher Searcher, tel telemetry.API, opts ...Option) *Dispatcher {
	assert.NotNil(searcher)
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("dispatch", tel)

	d := &Dispatcher{
		searcher: searcher,
		tel:      tel,
	}
	for _, opt := range opts {
		opt(d)
	}

	searches, err := meter.Int64Counter(
		"countrylookup.searches",
		metric.WithDescription("Searches dispatched, by outcome."),
	)
	if err != nil {
		tel.ReportBroken(report_dispatch_counter, err)
		searches = noop.Int64Counter{}
	}
	d.searches = searches

	return d
}

// FetchCountryData validates rawInput, emits Loading to sink, performs the
// lookup and emits the outcome. It returns the outcome view, which is not
// emitted when a newer dispatch superseded it under WithLatestOnly.
func (d *Dispatcher) FetchCountryData(ctx context.Context, rawInput string, sink view.Sink) view.ResultView {
	id := uuid.NewString()
	ticket := d.ticket.Add(1)

	ctx, span := tracer.Start(ctx, "dispatch:FetchCountryData", trace.WithAttributes(
		attribute.String("dispatch.id", id),
	))
	defer span.End()

	name := strings.TrimSpace(rawInput)
	if name == "" {
		return d.finish(ctx, span, id, ticket, sink, nil, ValidationError{})
	}
	span.SetAttributes(attribute.String("dispatch.name", name))

	sink.Replace(view.Loading())
	d.tel.ReportDebug("dispatch loading", "id", id, "name", name)

	records, err := d.searcher.SearchByName(ctx, name)
	switch {
	case err != nil:
		var status *restcountries.StatusError
		if errors.As(err, &status) {
			err = NotFoundError{Status: status.Code}
		} else {
			err = TransportError{Err: err}
		}
	case len(records) == 0:
		err = EmptyResultError{}
	}
	return d.finish(ctx, span, id, ticket, sink, records, err)
}

func (d *Dispatcher) finish(
	ctx context.Context,
	span trace.Span,
	id string,
	ticket uint64,
	sink view.Sink,
	records []restcountries.Record,
	err error,
) view.ResultView {
	result := view.Cards(records)
	outcome := Classify(err)
	if err != nil {
		result = view.Error(err.Error())
		span.SetStatus(codes.Error, outcome)
		if outcome == OutcomeTransport {
			span.RecordError(err)
		}
	}

	if d.latestOnly && d.ticket.Load() != ticket {
		d.tel.ReportDebug("dispatch superseded", "id", id, "outcome", outcome)
		outcome = OutcomeStale
		span.SetAttributes(attribute.String("dispatch.outcome", outcome))
		d.searches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
		return result
	}

	span.SetAttributes(attribute.String("dispatch.outcome", outcome))
	d.searches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	d.tel.ReportDebug("dispatch done", "id", id, "outcome", outcome)

	sink.Replace(result)
	return result
}

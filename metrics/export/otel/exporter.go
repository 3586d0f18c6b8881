// Package otel exports signet lifecycle counters as OpenTelemetry observable
// instruments. Registration is pull-based: counter values are read from a
// MetricsSnapshot inside the SDK's collection callback, so the token hot path
// never touches the OTel API.
package otel

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	signet "github.com/signet-go/signet"
)

var (
	// ErrNilMeter is returned when no meter is supplied.
	ErrNilMeter = errors.New("nil meter")
	// ErrNilSource is returned when no metrics source is supplied.
	ErrNilSource = errors.New("nil metrics source")
)

type metricsSource interface {
	MetricsSnapshot() signet.MetricsSnapshot
}

type observedCounter struct {
	id         signet.MetricID
	instrument metric.Int64ObservableCounter
}

// Exporter bridges a Manager's counters into an OTel meter.
type Exporter struct {
	source       metricsSource
	registration metric.Registration
	counters     []observedCounter
}

// New registers one observable counter per signet metric on meter, observed
// from source (normally a *signet.Manager).
func New(meter metric.Meter, source metricsSource) (*Exporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	e := &Exporter{
		source:   source,
		counters: make([]observedCounter, 0, signet.MetricCount),
	}
	observables := make([]metric.Observable, 0, signet.MetricCount)

	for i := 0; i < signet.MetricCount; i++ {
		id := signet.MetricID(i)
		ins, err := meter.Int64ObservableCounter(signet.MetricName(id))
		if err != nil {
			return nil, fmt.Errorf("create observable counter %s: %w", signet.MetricName(id), err)
		}
		e.counters = append(e.counters, observedCounter{id: id, instrument: ins})
		observables = append(observables, ins)
	}

	reg, err := meter.RegisterCallback(e.observe, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	e.registration = reg
	return e, nil
}

func (e *Exporter) observe(_ context.Context, o metric.Observer) error {
	snap := e.source.MetricsSnapshot()
	for _, c := range e.counters {
		o.ObserveInt64(c.instrument, int64(snap.Get(c.id)))
	}
	return nil
}

// Close unregisters the callback. The Exporter must not be used afterwards.
func (e *Exporter) Close() error {
	if e.registration == nil {
		return nil
	}
	err := e.registration.Unregister()
	e.registration = nil
	return err
}

// Package view holds the single output region shown by every surface and the
// value that replaces it.
package view

import (
	"sync"

	"countrylookup/internal/restcountries"
)

type Kind int

const (
	// KindNone is the zero view, the region has not been replaced yet.
	KindNone Kind = iota
	KindLoading
	KindError
	KindCards
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindLoading:
		return "loading"
	case KindError:
		return "error"
	case KindCards:
		return "cards"
	}
	return "unknown"
}

const LoadingMessage = "Searching for country data..."

// ResultView is exactly one of Loading, Error(message) or Cards(records), the
// zero value shows nothing.
// Message is only meaningful for KindError, Records only for KindCards.
type ResultView struct {
	Kind    Kind
	Message string
	Records []restcountries.Record
}

func Loading() ResultView {
	return ResultView{Kind: KindLoading}
}

func Error(message string) ResultView {
	return ResultView{Kind: KindError, Message: message}
}

// Cards keeps the records in the order given.
func Cards(records []restcountries.Record) ResultView {
	return ResultView{Kind: KindCards, Records: records}
}

// Sink receives every ResultView a dispatch emits, each one fully replaces
// the previous.
type Sink interface {
	Replace(v ResultView)
}

// Region is the output region. The zero value is an empty region holding the
// zero ResultView at generation 0.
type Region struct {
	mu         sync.Mutex
	current    ResultView
	generation uint64
	onReplace  func(ResultView)
}

func NewRegion() *Region {
	return &Region{}
}

// OnReplace registers a callback invoked after every Replace, outside the lock.
func (r *Region) OnReplace(fn func(ResultView)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onReplace = fn
}

func (r *Region) Replace(v ResultView) {
	r.mu.Lock()
	r.current = v
	r.generation++
	fn := r.onReplace
	r.mu.Unlock()

	if fn != nil {
		fn(v)
	}
}

// Current returns the shown view and how many times the region was replaced.
func (r *Region) Current() (ResultView, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.generation
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc func(ResultView)

func (f SinkFunc) Replace(v ResultView) {
	f(v)
}

package raw

import (
	"fmt"
	"net/http"

	"github.com/dtroode/userdesk-server/internal/api/resource"
	"github.com/dtroode/userdesk-server/internal/api/rest/render"
)

// phase is the progress of one request through the raw binding.
type phase int

const (
	awaitingHeaders phase = iota
	dispatchedToHandler
	accumulatingBody
	parsed
	responded
)

func (p phase) String() string {
	switch p {
	case awaitingHeaders:
		return "AwaitingHeaders"
	case dispatchedToHandler:
		return "DispatchedToHandler"
	case accumulatingBody:
		return "AccumulatingBody"
	case parsed:
		return "Parsed"
	case responded:
		return "Responded"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// exchange tracks a single request. Phases only move forward and the
// response is written exactly once.
type exchange struct {
	w     http.ResponseWriter
	r     *http.Request
	phase phase
	body  []byte
}

func newExchange(w http.ResponseWriter, r *http.Request) *exchange {
	return &exchange{w: w, r: r, phase: awaitingHeaders}
}

func (e *exchange) advance(to phase) {
	if to <= e.phase {
		panic(fmt.Sprintf("raw: illegal exchange transition %s -> %s", e.phase, to))
	}
	e.phase = to
}

// accumulate reads the whole body. It reports false when the body could
// not be read, in which case the exchange has already responded.
func (e *exchange) accumulate(limit int64) bool {
	e.advance(accumulatingBody)

	body, err := render.ReadBody(e.r.Body, limit)
	if err != nil {
		e.respond(resource.Malformed())
		return false
	}
	e.body = body

	e.advance(parsed)
	return true
}

func (e *exchange) respond(res resource.Result) {
	e.advance(responded)
	render.WriteResult(e.w, res)
}

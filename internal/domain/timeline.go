package domain

import (
	"fmt"
	"time"
)

type TimelineEvent struct {
	Description string    `json:"description"`
	At          time.Time `json:"at"`
	Actor       Actor     `json:"actor"`
}

// Record prepends an event to the project timeline. It is the only way
// events are added; the newest event is always Timeline[0].
func (p *Project) Record(actor Actor, at time.Time, format string, args ...any) TimelineEvent {
	ev := TimelineEvent{
		Description: fmt.Sprintf(format, args...),
		At:          at,
		Actor:       actor,
	}
	p.Timeline = append([]TimelineEvent{ev}, p.Timeline...)
	return ev
}

// LatestEvent returns the newest event, if any.
func (p *Project) LatestEvent() (TimelineEvent, bool) {
	if len(p.Timeline) == 0 {
		return TimelineEvent{}, false
	}
	return p.Timeline[0], true
}

// EventsBy filters the timeline to one actor, keeping newest-first order.
func (p *Project) EventsBy(actor Actor) []TimelineEvent {
	var out []TimelineEvent
	for _, ev := range p.Timeline {
		if ev.Actor == actor {
			out = append(out, ev)
		}
	}
	return out
}

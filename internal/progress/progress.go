// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package progress defines the structured event sink that pipeline stages
// report through. Stages never write to process-global streams; the CLI
// installs a writer sink and tests install a recorder.
package progress

import (
	"fmt"
	"io"
)

// Stage names the pipeline stage an event belongs to. The values mirror
// the run's state machine.
type Stage string

const (
	StageResolved        Stage = "resolved"
	StageDownloaded      Stage = "downloaded"
	StageExtracted       Stage = "extracted"
	StageTitled          Stage = "titled"
	StageImagesProcessed Stage = "images_processed"
	StageStaged          Stage = "staged"
	StageCleanedUp       Stage = "cleaned_up"
	StageFailed          Stage = "failed"
)

// Level distinguishes informational progress from soft-failure warnings.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
)

// Event is one progress notice from a pipeline stage.
type Event struct {
	Stage   Stage
	Level   Level
	Message string
}

// Sink receives progress events. Implementations must not retain the
// event past the call.
type Sink interface {
	Publish(e Event)
}

// Infof publishes an informational event to s.
func Infof(s Sink, stage Stage, format string, args ...any) {
	s.Publish(Event{Stage: stage, Level: LevelInfo, Message: fmt.Sprintf(format, args...)})
}

// Warnf publishes a warning event to s.
func Warnf(s Sink, stage Stage, format string, args ...any) {
	s.Publish(Event{Stage: stage, Level: LevelWarn, Message: fmt.Sprintf(format, args...)})
}

// WriterSink renders events as human-readable progress lines. Warnings are
// indented and prefixed so they stand out in a scrolling log.
type WriterSink struct {
	w io.Writer
}

// NewWriter returns a sink that writes progress lines to w.
func NewWriter(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Publish(e Event) {
	if e.Level == LevelWarn {
		fmt.Fprintf(s.w, "  warning: %s\n", e.Message)
		return
	}
	fmt.Fprintf(s.w, "%s\n", e.Message)
}

// Recorder captures events in order for test assertions.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(e Event) {
	r.Events = append(r.Events, e)
}

// Messages returns the recorded messages in publish order.
func (r *Recorder) Messages() []string {
	msgs := make([]string, len(r.Events))
	for i, e := range r.Events {
		msgs[i] = e.Message
	}
	return msgs
}

// Warnings returns only the warning-level messages, in publish order.
func (r *Recorder) Warnings() []string {
	var msgs []string
	for _, e := range r.Events {
		if e.Level == LevelWarn {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

type discard struct{}

func (discard) Publish(Event) {}

// Discard is a sink that drops all events.
var Discard Sink = discard{}

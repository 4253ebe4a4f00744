// Copyright 2025 the decopy authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ui renders a copy run as box-drawing terminal frames: a summary
// box before the copy, a live single-line progress row while copying, and
// a closing frame when the run is done.
package ui

import (
	"context"
	"fmt"
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/decopy/decopy/pkg/operation"
	"github.com/decopy/decopy/pkg/text"
)

// Raw control sequences for the boxed renderer. Plain mode never emits
// them.
const (
	clearScreen = "\x1b[2J\x1b[H"
	clearLine   = "\r\x1b[2K"
)

const boxTitle = "Deployment Copy"

// 🔧 Options configure a UserInterface
type Options struct {
	// Out is the sink frames are written to. Required.
	Out io.Writer
	// Plain switches to append-only log lines: no cursor control, no
	// boxes. For sinks that are not terminals.
	Plain bool
}

// 🖥️ UserInterface holds exactly one UI state and knows how to draw each
// of them. States only move forward: PreCopy, then Copying, then
// Completed.
type UserInterface struct {
	out   io.Writer
	plain bool
	state uiState

	// accumulated while consuming the event stream, read by the
	// completed frame
	done     *operation.Done
	perDest  map[string]int64
	failures []operation.DestinationFailed
}

// 🎭 uiState is a closed set: preCopy, copying, completed.
type uiState interface {
	isState()
}

type preCopyState struct {
	queue *operation.Queue
}

func (preCopyState) isState() {}

type copyingState struct {
	events <-chan operation.Event
}

func (copyingState) isState() {}

type completedState struct {
	queue *operation.Queue
}

func (completedState) isState() {}

// 🏭 New creates a renderer that owns the given output sink
func New(opts Options) (*UserInterface, error) {
	if opts.Out == nil {
		return nil, errors.Errorf("output sink is required")
	}
	return &UserInterface{
		out:     opts.Out,
		plain:   opts.Plain,
		perDest: map[string]int64{},
	}, nil
}

// WithPreCopy moves the interface into the pre-copy summary state.
func (u *UserInterface) WithPreCopy(queue *operation.Queue) *UserInterface {
	u.state = preCopyState{queue: queue}
	return u
}

// WithCopying moves the interface into the live copying state, consuming
// the given event stream when rendered.
func (u *UserInterface) WithCopying(events <-chan operation.Event) *UserInterface {
	u.state = copyingState{events: events}
	return u
}

// WithCompleted moves the interface into the final state. The queue is
// kept for the closing summary frame.
func (u *UserInterface) WithCompleted(queue *operation.Queue) *UserInterface {
	u.state = completedState{queue: queue}
	return u
}

// 🖌️ Render draws the current state. In the copying state it blocks until
// the event stream closes or the context dies, redrawing the progress row
// in place per event; the box is always closed before it returns. Write
// errors are fatal and returned immediately.
func (u *UserInterface) Render(ctx context.Context) error {
	switch s := u.state.(type) {
	case preCopyState:
		return u.renderPreCopy(s.queue)
	case copyingState:
		return u.renderCopying(ctx, s.events)
	case completedState:
		return u.renderCompleted(s.queue)
	default:
		return nil
	}
}

// TotalBytes reports the bytes the consumed event stream accounted for.
func (u *UserInterface) TotalBytes() int64 {
	if u.done != nil {
		return u.done.TotalBytes
	}
	var total int64
	for _, b := range u.perDest {
		total += b
	}
	return total
}

// Failures returns the destination failures seen on the event stream.
func (u *UserInterface) Failures() []operation.DestinationFailed {
	return u.failures
}

func (u *UserInterface) write(s string) error {
	if _, err := io.WriteString(u.out, s); err != nil {
		return errors.Errorf("writing to terminal: %w", err)
	}
	return nil
}

func (u *UserInterface) writeLine(s string) error {
	return u.write(s + "\n")
}

func (u *UserInterface) writeLines(lines []string) error {
	for _, line := range lines {
		if err := u.writeLine(line); err != nil {
			return err
		}
	}
	return nil
}

// header draws the frame every state shares: top border, title, divider.
func (u *UserInterface) header() error {
	return u.writeLines([]string{
		topBorder(NoSplit),
		contentLine(titleStyle.Sprint(boxTitle)),
		dividerRule(),
	})
}

func (u *UserInterface) renderPreCopy(queue *operation.Queue) error {
	if u.plain {
		return u.renderPreCopyPlain(queue)
	}
	if err := u.write(clearScreen); err != nil {
		return err
	}
	if err := u.header(); err != nil {
		return err
	}
	prompt := fmt.Sprintf("Press %s or %s on your keyboard",
		keyStyle.Sprint("[Y]"), keyStyle.Sprint("[N]"))
	if err := u.writeLines([]string{
		contentLine("Do you want to copy to these directories?"),
		contentLine(prompt),
		bottomBorder(NoSplit),
	}); err != nil {
		return err
	}
	return u.writeLines(queueBoxLines(queue.SourceName(), queue.Destinations()))
}

func (u *UserInterface) renderPreCopyPlain(queue *operation.Queue) error {
	if err := u.writeLine(boxTitle); err != nil {
		return err
	}
	if err := u.writeLine(fmt.Sprintf("Copying %s to:", queue.Source())); err != nil {
		return err
	}
	for _, dest := range queue.Destinations() {
		if err := u.writeLine("  " + dest); err != nil {
			return err
		}
	}
	return nil
}

// copyingLine is the single in-place row of the copying frame.
func copyingLine(p operation.Progress) string {
	line := fmt.Sprintf("Copying... (%d%%) [%s copied] --> %s",
		p.Percentage, text.FormatBytes(p.Bytes), dimStyle.Sprint(p.Destination))
	return text.Truncate(line, BoxWidth-1)
}

func (u *UserInterface) renderCopying(ctx context.Context, events <-chan operation.Event) error {
	if u.plain {
		return u.renderCopyingPlain(ctx, events)
	}

	if err := u.write(clearScreen); err != nil {
		return err
	}
	if err := u.header(); err != nil {
		return err
	}
	// The open row; every event overwrites it in place.
	if err := u.write(contentLine("Copying...")); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return u.closeBox()
		case ev, ok := <-events:
			if !ok {
				return u.closeBox()
			}
			if err := u.consumeBoxed(ev); err != nil {
				return err
			}
		}
	}
}

// consumeBoxed folds one event into the live frame.
func (u *UserInterface) consumeBoxed(ev operation.Event) error {
	switch e := ev.(type) {
	case operation.Progress:
		u.perDest[e.Destination] = e.Bytes
		return u.write(clearLine + contentLine(copyingLine(e)))
	case operation.DestinationFailed:
		u.failures = append(u.failures, e)
		return nil
	case operation.Done:
		u.done = &e
		return nil
	default:
		return nil
	}
}

// closeBox finishes the copying frame so the box is never left half-drawn.
func (u *UserInterface) closeBox() error {
	if err := u.write("\n"); err != nil {
		return err
	}
	return u.writeLine(bottomBorder(NoSplit))
}

func (u *UserInterface) renderCopyingPlain(ctx context.Context, events <-chan operation.Event) error {
	current := ""
	finished := map[string]bool{}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch e := ev.(type) {
			case operation.Progress:
				u.perDest[e.Destination] = e.Bytes
				if e.Destination != current {
					current = e.Destination
					if err := u.writeLine(fmt.Sprintf("Copying to %s...", e.Destination)); err != nil {
						return err
					}
				}
				if e.Percentage == 100 && !finished[e.Destination] {
					finished[e.Destination] = true
					if err := u.writeLine(fmt.Sprintf("Copied %s to %s", text.FormatBytes(e.Bytes), e.Destination)); err != nil {
						return err
					}
				}
			case operation.DestinationFailed:
				u.failures = append(u.failures, e)
				if err := u.writeLine(fmt.Sprintf("Failed %s: %v", e.Destination, e.Err)); err != nil {
					return err
				}
			case operation.Done:
				done := e
				u.done = &done
			}
		}
	}
}

func (u *UserInterface) renderCompleted(queue *operation.Queue) error {
	total := text.FormatBytes(u.TotalBytes())
	if u.plain {
		return u.writeLine(fmt.Sprintf("Finished Copying: %s copied (100%%)", total))
	}

	if err := u.write(clearScreen); err != nil {
		return err
	}
	if err := u.header(); err != nil {
		return err
	}
	if err := u.writeLines([]string{
		contentLine("Finished Copying"),
		contentLine(fmt.Sprintf("%s copied (100%%)", total)),
		bottomBorder(NoSplit),
	}); err != nil {
		return err
	}
	return u.writeLines(queueBoxLines(queue.SourceName(), queue.Destinations()))
}

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

package operation

import (
	"fmt"
	"path/filepath"
	"slices"

	"gitlab.com/tozd/go/errors"
)

// 📦 Queue holds one source directory and the ordered destinations it will
// be copied into. Destination order is significant: copies run in this
// order and the renderer derives its arrow row from it. A Queue is
// immutable after construction; build a new one if the inputs change.
type Queue struct {
	source       string
	destinations []string
}

// 🏭 NewQueue builds a queue from already-resolved paths
func NewQueue(source string, destinations []string) (*Queue, error) {
	if source == "" {
		return nil, errors.Errorf("source is required")
	}
	if len(destinations) == 0 {
		return nil, errors.Errorf("at least one destination is required")
	}
	cleaned := make([]string, 0, len(destinations))
	for i, dest := range destinations {
		if dest == "" {
			return nil, errors.Errorf("destination %d is empty", i+1)
		}
		cleaned = append(cleaned, filepath.Clean(dest))
	}
	return &Queue{
		source:       filepath.Clean(source),
		destinations: cleaned,
	}, nil
}

// Source returns the source directory path.
func (q *Queue) Source() string {
	return q.source
}

// SourceName returns the last element of the source path, the name shown
// in the queue box.
func (q *Queue) SourceName() string {
	return filepath.Base(q.source)
}

// Destinations returns the destination paths in copy order.
func (q *Queue) Destinations() []string {
	return slices.Clone(q.destinations)
}

// Len returns the number of destinations.
func (q *Queue) Len() int {
	return len(q.destinations)
}

// 📝 String renders the queue the way logs reference it
func (q *Queue) String() string {
	return fmt.Sprintf("%s -> %d destination(s)", q.source, len(q.destinations))
}

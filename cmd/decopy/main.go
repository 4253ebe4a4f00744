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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/tozd/go/errors"

	"github.com/decopy/decopy/pkg/operation"
)

// Exit codes. A user abort at the prompt is a success.
const (
	exitOK           = 0
	exitUsage        = 1
	exitFatal        = 2
	exitDestinations = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decopy: %v\n", err)
	}
	return exitCode(err)
}

// exitCode maps the run's outcome onto the documented exit codes: 2 for
// fatal source and render failures, 3 when destinations failed, 1 for
// everything else that went wrong.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var (
		srcErr  *operation.SourceError
		rendErr *renderError
	)
	switch {
	case errors.As(err, &srcErr), errors.As(err, &rendErr):
		return exitFatal
	case errors.Is(err, errDestinationsFailed):
		return exitDestinations
	default:
		return exitUsage
	}
}

/*
Package operation implements the copy orchestration at the heart of decopy.

	+-----------+
	|   Queue   |
	| (src+dsts)|
	+-----+-----+
	      |
	+-----+-----+      events       +-----------+
	|  Runner   | ---------------> |  Renderer  |
	| (worker)  |   chan Event     | (consumer) |
	+-----+-----+                  +-----------+
	      |
	+-----+-----+
	|  dircopy  |
	+-----------+

🎯 Purpose:
- Holds the immutable queue of one source and N destinations
- Measures the source tree once, then copies it into each destination in order
- Streams typed progress events to whoever renders them

🔄 Flow:
1. Queue is built from resolved paths
2. Runner measures the source (fatal if that fails)
3. Each destination is copied in sequence, ticks flowing as Progress events
4. Per-destination failures become DestinationFailed events and keep the run going
5. Done is sent, the channel is closed, and the Report sums up the run

⚡ Key Responsibilities:
- Percentage arithmetic against the once-measured total
- Coalescing event delivery so a slow terminal never stalls the copy
- Accumulating per-destination outcomes instead of aborting the run

🤝 Interfaces:
- dircopy: the tree sizing and chunked copy primitive
- Event: the closed message set consumed by pkg/ui

📝 Design Philosophy:
The worker knows nothing about rendering and the renderer knows nothing
about filesystems; the event channel is the only thing they share. A failed
destination is data, not a crash.
*/
package operation

package operation

// 🧾 Result is the outcome of one destination's copy.
type Result struct {
	Destination string
	Bytes       int64
	Err         error // nil when the destination succeeded
}

// 📊 Report sums up a run: every destination that was attempted, in copy
// order, plus the bytes written across all of them.
type Report struct {
	Source     string
	TotalBytes int64
	Results    []Result
}

// Succeeded returns the results of destinations that copied fully.
func (r *Report) Succeeded() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err == nil {
			out = append(out, res)
		}
	}
	return out
}

// Failed returns the results of destinations that did not copy fully.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Ok reports whether every attempted destination succeeded.
func (r *Report) Ok() bool {
	return len(r.Failed()) == 0
}

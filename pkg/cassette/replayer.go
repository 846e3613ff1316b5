package cassette

import (
	"fmt"
	"sort"
	"sync"
)

// PortMethodKey identifies a replay stream: all interactions sharing the
// same (Port, Method) pair replay in their originally recorded order,
// independent of every other stream.
type PortMethodKey struct {
	Port   string
	Method string
}

func (k PortMethodKey) String() string {
	return fmt.Sprintf("%s::%s", k.Port, k.Method)
}

// Replayer is a per-(port,method) cursored dispatcher over a loaded
// cassette. An identical sequence of calls against a replayer built from
// cassette C always produces identical outputs, without requiring callers
// to track any global sequence number.
type Replayer struct {
	mu      sync.Mutex
	queues  map[PortMethodKey][]Interaction
	cursors map[PortMethodKey]int
}

// NewReplayer buckets a cassette's interactions by PortMethodKey. Within
// each bucket, relative order is preserved (guaranteed by monotonic Seq).
func NewReplayer(c *Cassette) *Replayer {
	queues := make(map[PortMethodKey][]Interaction)
	for _, interaction := range c.Interactions {
		key := PortMethodKey{Port: interaction.Port, Method: interaction.Method}
		queues[key] = append(queues[key], interaction)
	}

	return &Replayer{
		queues:  queues,
		cursors: make(map[PortMethodKey]int),
	}
}

// NextInteraction returns the next interaction for (port, method), advancing
// that stream's cursor. It panics if the key is unknown to the cassette, or
// if the stream has already been exhausted; both are engine invariant
// violations rather than recoverable runtime conditions.
func (r *Replayer) NextInteraction(port, method string) Interaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := PortMethodKey{Port: port, Method: method}
	queue, ok := r.queues[key]
	if !ok {
		panic(fmt.Sprintf(
			"cassette exhausted: no interactions recorded for port=%q method=%q. Available port::method pairs: [%s]",
			port, method, r.availableKeys(),
		))
	}

	cursor := r.cursors[key]
	if cursor >= len(queue) {
		last := queue[len(queue)-1]
		panic(fmt.Sprintf(
			"cassette exhausted: all %d interactions for port=%q method=%q have been consumed. Last interaction was seq=%d.",
			len(queue), port, method, last.Seq,
		))
	}

	r.cursors[key] = cursor + 1
	return queue[cursor]
}

func (r *Replayer) availableKeys() string {
	keys := make([]string, 0, len(r.queues))
	for k := range r.queues {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += k
	}
	return out
}

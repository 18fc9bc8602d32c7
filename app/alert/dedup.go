package alert

import (
	"container/heap"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Deduplicator remembers content fingerprints for a rolling window and
// suppresses repeats seen within it. Entries are forgotten once they age
// past the window.
type Deduplicator struct {
	window time.Duration

	mu      sync.Mutex
	entries map[string]time.Time
	expiry  expiryHeap

	now func() time.Time
}

func NewDeduplicator(window time.Duration) *Deduplicator {
	return &Deduplicator{
		window:  window,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Seen reports whether content with this title and body was already seen
// within the window, recording it as seen if not. The check-and-insert
// is atomic: two concurrent calls with identical content cannot both
// observe false.
func (d *Deduplicator) Seen(title, body string) bool {
	fingerprint := Fingerprint(title, body)

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	d.prune(now)

	if _, ok := d.entries[fingerprint]; ok {
		return true
	}

	d.entries[fingerprint] = now
	heap.Push(&d.expiry, expiryEntry{fingerprint: fingerprint, firstSeenAt: now})

	return false
}

// Len reports the number of remembered fingerprints.
func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// prune forgets fingerprints older than the window. Pruning runs before
// insertion, so the entry being inserted is never removed. A heap entry
// whose timestamp no longer matches the table belongs to an earlier
// sighting of a re-seen fingerprint and is discarded without touching
// the table.
func (d *Deduplicator) prune(now time.Time) {
	cutoff := now.Add(-d.window)

	for d.expiry.Len() > 0 {
		oldest := d.expiry[0]
		if oldest.firstSeenAt.After(cutoff) {
			break
		}
		heap.Pop(&d.expiry)

		if firstSeen, ok := d.entries[oldest.fingerprint]; ok && firstSeen.Equal(oldest.firstSeenAt) {
			delete(d.entries, oldest.fingerprint)
		}
	}
}

// Fingerprint digests normalized item content into a fixed-length dedup
// key. Well-defined for empty input.
func Fingerprint(title, body string) string {
	content := norm.NFC.String(strings.TrimSpace(title)) + "|" + norm.NFC.String(strings.TrimSpace(body))

	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

type expiryEntry struct {
	fingerprint string
	firstSeenAt time.Time
}

// expiryHeap is a min-heap ordered by first-seen time, giving amortized
// O(log n) eviction.
type expiryHeap []expiryEntry

func (h expiryHeap) Len() int           { return len(h) }
func (h expiryHeap) Less(i, j int) bool { return h[i].firstSeenAt.Before(h[j].firstSeenAt) }
func (h expiryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *expiryHeap) Push(x interface{}) {
	*h = append(*h, x.(expiryEntry))
}

func (h *expiryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}

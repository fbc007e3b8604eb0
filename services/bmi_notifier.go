package services

import (
	"sync"

	"vitalitygo/bmi"
)

// BMINotifier is a single-slot observable holding the latest BMI
// category per user. Subscribers receive the current value immediately
// and every later change. It is created once in main and injected,
// which keeps test setup deterministic.
type BMINotifier struct {
	mu          sync.RWMutex
	current     map[string]bmi.Category
	subscribers map[string][]chan bmi.Category
}

func NewBMINotifier() *BMINotifier {
	return &BMINotifier{
		current:     make(map[string]bmi.Category),
		subscribers: make(map[string][]chan bmi.Category),
	}
}

// Current returns the latest category for a user, defaulting to Normal
// before any profile save has published one.
func (n *BMINotifier) Current(userID string) bmi.Category {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if c, ok := n.current[userID]; ok {
		return c
	}
	return bmi.Normal
}

// Subscribe registers for category updates for a user. The channel
// carries the current value right away, then every subsequent change.
func (n *BMINotifier) Subscribe(userID string) <-chan bmi.Category {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch := make(chan bmi.Category, 8)
	n.subscribers[userID] = append(n.subscribers[userID], ch)
	if c, ok := n.current[userID]; ok {
		ch <- c
	} else {
		ch <- bmi.Normal
	}
	return ch
}

// Unsubscribe removes a previously registered channel and closes it.
func (n *BMINotifier) Unsubscribe(userID string, ch <-chan bmi.Category) {
	n.mu.Lock()
	defer n.mu.Unlock()
	subs := n.subscribers[userID]
	for i, s := range subs {
		if s == ch {
			n.subscribers[userID] = append(subs[:i], subs[i+1:]...)
			close(s)
			return
		}
	}
}

// Publish records a new category for a user and fans it out. Unchanged
// values are deduplicated so mission recomputation only triggers on a
// real category switch.
func (n *BMINotifier) Publish(userID string, category bmi.Category) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if prev, ok := n.current[userID]; ok && prev == category {
		return false
	}
	n.current[userID] = category
	for _, ch := range n.subscribers[userID] {
		select {
		case ch <- category:
		default:
			// slow subscriber, drop rather than block the publisher
		}
	}
	return true
}

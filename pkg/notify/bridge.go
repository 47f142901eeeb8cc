package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Token identifies one handler registration on a Bridge.
type Token uint64

// Bridge multiplexes a single payloadless OS notification into independently
// cancellable handler registrations. The OS callback arrives on an arbitrary
// thread that must not be blocked, so handlers must only enqueue work and
// return quickly.
type Bridge struct {
	mu       sync.Mutex
	next     Token
	handlers map[Token]func()
}

// NewBridge returns an empty Bridge.
func NewBridge() *Bridge {
	return &Bridge{handlers: make(map[Token]func())}
}

// Register adds fn to the set of handlers invoked on every notification and
// returns a token to unregister it with.
func (b *Bridge) Register(fn func()) Token {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	t := b.next
	b.handlers[t] = fn

	logrus.Tracef("registered notification handler %d", t)
	return t
}

// Unregister removes the handler registered under t. Unregistering an unknown
// or already-removed token is a no-op, and calling it from within a firing
// handler is safe.
func (b *Bridge) Unregister(t Token) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.handlers[t]; !ok {
		return
	}
	delete(b.handlers, t)

	logrus.Tracef("unregistered notification handler %d", t)
}

// Notify invokes every currently registered handler, in unspecified order.
// Handlers run without the bridge lock held, so they may re-enter Register
// and Unregister freely. A handler unregistered while Notify is collecting
// the handler set may still fire one last time.
func (b *Bridge) Notify() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.handlers))
	for _, fn := range b.handlers {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// HandlerCount returns the number of registered handlers.
func (b *Bridge) HandlerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

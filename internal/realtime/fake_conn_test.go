package realtime

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeConn records every frame it accepts. With fail set, Send returns an
// error and records nothing.
type fakeConn struct {
	id string

	mu   sync.Mutex
	sent [][]byte
	fail bool
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (f *fakeConn) ID() string {
	return f.id
}

func (f *fakeConn) Send(msg []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("send to %v: broken pipe", f.id)
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeConn) setFail(fail bool) {
	f.mu.Lock()
	f.fail = fail
	f.mu.Unlock()
}

func (f *fakeConn) frames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, msg := range f.sent {
		out = append(out, string(msg))
	}
	return out
}

// fakePresence records presence reports. When offlineGate is set, SetOffline
// signals offlineEntered and waits on the gate before recording.
type fakePresence struct {
	offlineGate    chan struct{}
	offlineEntered chan struct{}

	mu     sync.Mutex
	events []string
	online map[string]bool
}

func (p *fakePresence) SetOnline(identity string) {
	p.record(identity, true)
}

func (p *fakePresence) SetOffline(identity string) {
	if p.offlineGate != nil {
		select {
		case p.offlineEntered <- struct{}{}:
		default:
		}
		<-p.offlineGate
	}
	p.record(identity, false)
}

func (p *fakePresence) record(identity string, online bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.online == nil {
		p.online = make(map[string]bool)
	}
	p.online[identity] = online
	if online {
		p.events = append(p.events, "online:"+identity)
	} else {
		p.events = append(p.events, "offline:"+identity)
	}
}

func (p *fakePresence) recorded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func (p *fakePresence) isOnline(identity string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.online[identity]
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %v", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

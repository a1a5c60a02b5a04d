package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vk/plotmod/internal/ctxlog"
	"github.com/vk/plotmod/internal/document"
)

// changeWire is the wire form of one attribute-change event.
type changeWire struct {
	Kind       string          `json:"kind"`
	InstanceID string          `json:"id"`
	Attribute  string          `json:"attr"`
	Old        json.RawMessage `json:"old"`
	New        json.RawMessage `json:"new"`
}

// Server broadcasts a document's change events to connected websocket
// clients.
type Server struct {
	doc   *document.Document
	roots []*document.Instance
	upgr  websocket.Upgrader

	mu    sync.Mutex
	conns map[*conn]struct{}
}

// New creates a server for the given document and registers it as a
// change observer. The roots determine the snapshot sent on connect.
func New(doc *document.Document, roots []*document.Instance) *Server {
	s := &Server{
		doc:   doc,
		roots: roots,
		conns: make(map[*conn]struct{}),
	}
	doc.OnChange(s.broadcast)
	return s
}

// Handler returns the HTTP handler that upgrades to a websocket, sends
// the current document, and then streams change events.
func (s *Server) Handler(ctx context.Context) http.HandlerFunc {
	logger := ctxlog.FromContext(ctx)
	return func(w http.ResponseWriter, r *http.Request) {
		wc, err := s.upgr.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("Websocket upgrade failed.", "remote_addr", r.RemoteAddr, "error", err)
			return
		}

		snapshot, err := s.doc.Serialize(s.roots...)
		if err != nil {
			logger.Error("Serializing document for client failed.", "error", err)
			wc.Close()
			return
		}

		c := newConn(wc)
		c.send <- snapshot

		s.mu.Lock()
		s.conns[c] = struct{}{}
		s.mu.Unlock()
		logger.Debug("Client connected.", "remote_addr", r.RemoteAddr)

		go c.writeLoop()
		c.readLoop() // blocks until the client goes away

		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
		close(c.send)
		logger.Debug("Client disconnected.", "remote_addr", r.RemoteAddr)
	}
}

func (s *Server) broadcast(ev document.Event) {
	oldRaw, err := document.EncodeValue(ev.Old)
	if err != nil {
		oldRaw = json.RawMessage("null")
	}
	newRaw, err := document.EncodeValue(ev.New)
	if err != nil {
		return
	}
	msg, err := json.Marshal(changeWire{
		Kind:       "change",
		InstanceID: ev.InstanceID,
		Attribute:  ev.Attribute,
		Old:        oldRaw,
		New:        newRaw,
	})
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		select {
		case c.send <- msg:
		default:
			// Slow client; drop the event rather than block the
			// single-writer mutation path.
		}
	}
}

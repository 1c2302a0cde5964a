package server

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"netdash/internal/models"
	"netdash/internal/topology"
)

const (
	liveWriteTimeout = 5 * time.Second
	liveTraffic      = "traffic"
	liveTopology     = "topology"
)

var liveUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(strings.TrimSpace(r.Host))
		originHost := strings.ToLower(strings.TrimSpace(u.Host))
		return host == originHost
	},
}

type liveMessage struct {
	Type     string                `json:"type"`
	Traffic  *models.TrafficSample `json:"traffic,omitempty"`
	Topology *topology.Snapshot    `json:"topology,omitempty"`
}

// hub fans topology updates out to connected live clients.
type hub struct {
	mu     sync.Mutex
	subs   map[chan liveMessage]struct{}
	closed bool
}

func newHub() *hub {
	return &hub{subs: make(map[chan liveMessage]struct{})}
}

func (h *hub) subscribe() (<-chan liveMessage, func()) {
	ch := make(chan liveMessage, 8)
	h.mu.Lock()
	if h.closed {
		close(ch)
	} else {
		h.subs[ch] = struct{}{}
	}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			if _, ok := h.subs[ch]; ok {
				delete(h.subs, ch)
				close(ch)
			}
			h.mu.Unlock()
		})
	}
}

func (h *hub) broadcast(msg liveMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}

func (s *Server) handleLiveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := liveUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	s.serveLiveConnection(conn)
}

func (s *Server) serveLiveConnection(conn *websocket.Conn) {
	defer conn.Close()

	s.metrics.WebsocketClients.Inc()
	defer s.metrics.WebsocketClients.Dec()

	snapshot := s.topology.Snapshot()
	if err := writeLive(conn, liveMessage{Type: liveTopology, Topology: &snapshot}); err != nil {
		return
	}

	var traffic <-chan models.TrafficSample
	if s.live != nil {
		ch, cancel := s.live.Subscribe()
		defer cancel()
		traffic = ch
	}
	updates, unsubscribe := s.hub.subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case sample := <-traffic:
			if err := writeLive(conn, liveMessage{Type: liveTraffic, Traffic: &sample}); err != nil {
				return
			}
		case msg, ok := <-updates:
			if !ok {
				return
			}
			if err := writeLive(conn, msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func writeLive(conn *websocket.Conn, payload liveMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	return conn.WriteJSON(payload)
}

// Package server keeps track of the SSH sessions connected to one process.
// Every session runs its own engine; the lobby only hands out identities,
// counts players and coordinates shutdown.
package server

import (
	"io"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/tomz197/meteorfall/internal/loop/config"
)

// GameServer is the interface clients use to talk to the lobby.
// Decouples the Client from the concrete Lobby, enabling testing.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	Players() int
	SubmitScore(clientID, score int)
	TopScores(n int) []TopScoreEntry
}

// Compile-time check that Lobby implements GameServer.
var _ GameServer = (*Lobby)(nil)

// ClientHandle represents a client's seat in the lobby.
type ClientHandle struct {
	ID       int
	Username string           // Display name, trimmed to MaxUsernameLength
	Joined   time.Time        // Registration time
	EventsCh chan ClientEvent // Events sent to the client; closed on unregister
}

// ClientEvent represents an event sent from the lobby to a client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

func (t ClientEventType) String() string {
	switch t {
	case EventServerShutdown:
		return "server-shutdown"
	}
	return "unknown"
}

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// Lobby is the registry of connected sessions. It is safe for concurrent use.
type Lobby struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	best         map[int]TopScoreEntry // best finished game per client, kept after leaving
	nextClientID int
	shuttingDown bool
	log          *log.Logger
}

// NewLobby creates an empty lobby. A nil logger discards output.
func NewLobby(logger *log.Logger) *Lobby {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Lobby{
		clients:      make(map[int]*ClientHandle),
		best:         make(map[int]TopScoreEntry),
		nextClientID: 1,
		log:          logger,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
// Clients joining during a shutdown receive the shutdown event right away.
func (l *Lobby) RegisterClient(username string) *ClientHandle {
	l.mu.Lock()
	defer l.mu.Unlock()

	handle := &ClientHandle{
		ID:       l.nextClientID,
		Username: SanitizeUsername(username),
		Joined:   time.Now(),
		EventsCh: make(chan ClientEvent, 16),
	}
	l.nextClientID++
	l.clients[handle.ID] = handle

	if l.shuttingDown {
		handle.EventsCh <- ClientEvent{Type: EventServerShutdown}
	}
	l.log.Info("player joined", "id", handle.ID, "user", handle.Username, "players", len(l.clients))
	return handle
}

// UnregisterClient removes a client from the lobby and closes its event channel.
// Unknown IDs are ignored.
func (l *Lobby) UnregisterClient(clientID int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	handle, ok := l.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(l.clients, clientID)
	l.log.Info("player left", "id", clientID, "user", handle.Username,
		"played", time.Since(handle.Joined).Round(time.Second), "players", len(l.clients))
}

// Players returns the number of connected clients.
func (l *Lobby) Players() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.clients)
}

// Usernames returns the connected players' names in join order.
func (l *Lobby) Usernames() []string {
	l.mu.RLock()
	handles := make([]*ClientHandle, 0, len(l.clients))
	for _, h := range l.clients {
		handles = append(handles, h)
	}
	l.mu.RUnlock()

	sort.Slice(handles, func(i, j int) bool { return handles[i].ID < handles[j].ID })
	names := make([]string, len(handles))
	for i, h := range handles {
		names[i] = h.Username
	}
	return names
}

// SubmitScore records a finished game. Only the client's best score is kept.
func (l *Lobby) SubmitScore(clientID, score int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	handle, ok := l.clients[clientID]
	if !ok {
		return
	}
	if prev, ok := l.best[clientID]; ok && prev.Score >= score {
		return
	}
	l.best[clientID] = TopScoreEntry{Username: handle.Username, Score: score, clientID: clientID}
}

// TopScores returns up to n leaderboard entries, highest first. Equal scores
// are ordered by who joined first.
func (l *Lobby) TopScores(n int) []TopScoreEntry {
	l.mu.RLock()
	entries := make([]TopScoreEntry, 0, len(l.best))
	for _, e := range l.best {
		entries = append(entries, e)
	}
	l.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].clientID < entries[j].clientID
	})
	if len(entries) > n {
		entries = entries[:max(n, 0)]
	}
	return entries
}

// Shutdown notifies every connected client that the server is going down and
// waits for them to disconnect, up to timeout. It reports whether every
// client left in time.
func (l *Lobby) Shutdown(timeout time.Duration) bool {
	l.mu.Lock()
	l.shuttingDown = true
	for _, handle := range l.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	l.log.Info("shutdown broadcast", "players", len(l.clients), "timeout", timeout)
	l.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.Players() == 0 {
			return true
		}
		select {
		case <-deadline:
			l.log.Warn("shutdown timed out", "remaining", l.Players())
			return false
		case <-ticker.C:
		}
	}
}

// SanitizeUsername strips control characters and trims the name to
// MaxUsernameLength runes. Empty names become "pilot".
func SanitizeUsername(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || r == utf8.RuneError {
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if utf8.RuneCountInString(name) > config.MaxUsernameLength {
		name = string([]rune(name)[:config.MaxUsernameLength])
	}
	if name == "" {
		return "pilot"
	}
	return name
}

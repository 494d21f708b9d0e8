package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"asre_hazir/internal/feed"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 10 * time.Second

type feedMessage struct {
	Articles []feed.ArticleView `json:"articles,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// handleFeedSocket streams live feed snapshots over a websocket. One
// socket carries one subscription; a client changing parameters opens a
// new socket, so closing this one always tears the old listener down.
func (s *Server) handleFeedSocket(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	q, err := s.limits.NewQuery(
		r.URL.Query().Get("category"),
		r.URL.Query().Get("subCategory"),
		limit,
	)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sub := s.hub.Subscribe(r.Context(), q)
	defer sub.Close()

	// Drain reads so client close frames are noticed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sub.Close()
				return
			}
		}
	}()

	for snap := range sub.Snapshots() {
		msg := feedMessage{}
		if snap.Err != nil {
			msg.Error = "feed unavailable"
		} else {
			msg.Articles = feed.ProjectAll(snap.Articles, time.Now())
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
		if snap.Err != nil {
			return
		}
	}
}

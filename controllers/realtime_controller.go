package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/UFAZ-L2-CS1/DADLY/logging"
	"github.com/UFAZ-L2-CS1/DADLY/middlewares"
	"github.com/UFAZ-L2-CS1/DADLY/services"
)

type RealtimeController struct {
	RT       *services.RealtimeHub
	upgrader websocket.Upgrader
}

// NewRealtimeController accepts upgrades from the given browser origins.
// Requests without an Origin header (native clients) are always accepted.
func NewRealtimeController(rt *services.RealtimeHub, origins []string) *RealtimeController {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &RealtimeController{
		RT: rt,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

const pingInterval = 25 * time.Second

// GET /ws/likes
func (rc *RealtimeController) LikesWS(c *gin.Context) {
	sess, _ := middlewares.CurrentSession(c)

	conn, err := rc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Ctx(c.Request.Context()).Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	cl := services.NewWSClient(sess.User.ID, conn)
	rc.RT.Register(cl)

	done := make(chan struct{})
	defer close(done)

	// keep idle connections alive through proxies
	go func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.Ping(); err != nil {
					rc.RT.Unregister(cl)
					return
				}
			}
		}
	}()

	// read loop ends on client close/error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.RT.Unregister(cl)
			return
		}
	}
}

package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/luislong0/daily-diet-api/services"
)

const wsPingEvery = 25 * time.Second

type RealtimeController struct {
	RT     *services.RealtimeHub
	Users  *services.UserService
	Errors ErrorMapper
}

func NewRealtimeController(rt *services.RealtimeHub, users *services.UserService, errs ErrorMapper) *RealtimeController {
	return &RealtimeController{RT: rt, Users: users, Errors: errs}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// MealEventsWS streams meal events of ?userId= over a websocket.
func (rc *RealtimeController) MealEventsWS(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		badRequest(c, "userId is required")
		return
	}
	if _, err := rc.Users.Get(c.Request.Context(), userID); err != nil {
		rc.Errors.respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: userID, Conn: conn}
	rc.RT.Register(cl)

	done := make(chan struct{})
	go func() {
		t := time.NewTicker(wsPingEvery)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.Write(websocket.PingMessage, nil); err != nil {
					rc.RT.Unregister(cl)
					return
				}
			}
		}
	}()

	// read loop ends on client close or error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			close(done)
			rc.RT.Unregister(cl)
			return
		}
	}
}

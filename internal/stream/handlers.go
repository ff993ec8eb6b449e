package stream

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the live walk feed. A viewer connects to
// /ws/{walkID} and receives every stats frame broadcast for that walk
// until either side closes the socket.
func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Get("/ws/:walkID", websocket.New(func(c *websocket.Conn) {
		serveWalkFeed(c, hub)
	}))
}

func serveWalkFeed(c *websocket.Conn, hub *Hub) {
	viewer := hub.Register(c.Params("walkID"))
	defer hub.Unregister(viewer)

	done := make(chan struct{})
	go writeFrames(c, viewer, done)

	// Viewers never send application data; the read loop only notices
	// the close handshake.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
	<-done
}

func writeFrames(c *websocket.Conn, viewer *Client, done chan<- struct{}) {
	defer close(done)
	for frame := range viewer.Send {
		if err := c.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
}

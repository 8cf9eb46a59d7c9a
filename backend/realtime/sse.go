package realtime

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const heartbeatInterval = 15 * time.Second

// StreamHandler serves the per-chapter update stream as server-sent
// events. The client joins the chapter room for the lifetime of the
// connection and receives every event emitted for that chapter.
func StreamHandler(hub *Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		chapterID, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid chapter ID")
		}

		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("X-Accel-Buffering", "no")

		client := hub.Subscribe(ChapterChannel(uint(chapterID)))

		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			defer hub.Unsubscribe(client)

			heartbeat := time.NewTicker(heartbeatInterval)
			defer heartbeat.Stop()

			for {
				select {
				case event := <-client.Outbound:
					data, err := json.Marshal(event.Data)
					if err != nil {
						continue
					}
					fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
					if err := w.Flush(); err != nil {
						return
					}
				case <-heartbeat.C:
					fmt.Fprint(w, ": ping\n\n")
					if err := w.Flush(); err != nil {
						return
					}
				case <-client.Done():
					return
				}
			}
		}))

		return nil
	}
}

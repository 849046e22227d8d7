package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
)

// TileUpdate represents a single merged tile sent via SSE
type TileUpdate struct {
	X          int    `json:"x"`          // Left edge in output pixels
	Y          int    `json:"y"`          // Top edge in output pixels
	Width      int    `json:"width"`      // Tile width
	Height     int    `json:"height"`     // Tile height
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Current tile number (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// CompleteUpdate is the final SSE event of a successful render
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG of the whole image
	Stats     Stats  `json:"stats"`
}

// sseStream writes events to one client. Everything is written from the
// handler goroutine, which is also where the renderer invokes its callbacks.
type sseStream struct {
	c       echo.Context
	console chan ConsoleMessage
}

// handleRenderStream renders and streams each merged tile and log line via SSE
func (s *Server) handleRenderStream(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request: " + err.Error()})
	}

	stream := &sseStream{c: c, console: make(chan ConsoleMessage, 256)}
	stream.setHeaders()

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	raytracer, err := setupRaytracer(req, NewWebLogger(renderID, stream.console))
	if err != nil {
		return stream.send("error", err.Error())
	}

	raytracer.OnPart(func(part renderer.PartResult) {
		stream.flushConsole()
		if err := stream.sendTile(part, req.Height); err != nil {
			c.Logger().Errorf("failed to stream tile: %v", err)
		}
	})

	img, stats, err := raytracer.Render()
	stream.flushConsole()
	if err != nil {
		return stream.send("error", fmt.Sprintf("Render error: %v", err))
	}

	data, err := encodePNG(img)
	if err != nil {
		return stream.send("error", fmt.Sprintf("Failed to encode image: %v", err))
	}
	return stream.sendJSON("complete", CompleteUpdate{
		ImageData: base64.StdEncoding.EncodeToString(data),
		Stats:     newStats(stats),
	})
}

// setHeaders sets the required headers for Server-Sent Events
func (st *sseStream) setHeaders() {
	h := st.c.Response().Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	st.c.Response().WriteHeader(http.StatusOK)
}

// sendTile converts a part to output orientation and sends it
func (st *sseStream) sendTile(part renderer.PartResult, height int) error {
	tile := toOutputSpace(part.Image, height)
	data, err := encodePNG(tile)
	if err != nil {
		return err
	}

	b := tile.Bounds()
	return st.sendJSON("tile", TileUpdate{
		X:          b.Min.X,
		Y:          b.Min.Y,
		Width:      b.Dx(),
		Height:     b.Dy(),
		ImageData:  base64.StdEncoding.EncodeToString(data),
		TileNumber: part.Part,
		TotalTiles: part.TotalParts,
	})
}

// flushConsole forwards any queued log lines without blocking
func (st *sseStream) flushConsole() {
	for {
		select {
		case msg := <-st.console:
			if err := st.sendJSON("console", msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (st *sseStream) sendJSON(event string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return st.send(event, string(data))
}

// send writes one SSE event and flushes it to the client
func (st *sseStream) send(event, data string) error {
	if _, err := fmt.Fprintf(st.c.Response(), "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	st.c.Response().Flush()
	return nil
}

// toOutputSpace flips a render-space tile (row 0 at the bottom) into output
// space (row 0 at the top) of an image with the given height
func toOutputSpace(img *image.RGBA, height int) *image.RGBA {
	b := img.Bounds()
	flipped := renderer.FlipVertical(img)
	flipped.Rect = image.Rect(b.Min.X, height-b.Max.Y, b.Max.X, height-b.Min.Y)
	return flipped
}

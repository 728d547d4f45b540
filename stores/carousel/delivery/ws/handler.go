package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/goroutine"
	"github.com/x-xyz/nftcarousel/base/log"
	"github.com/x-xyz/nftcarousel/base/metrics"
	"github.com/x-xyz/nftcarousel/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16

	EventCarousel = "carousel"
	EventError    = "error"
)

// Message is sent by the client whenever its input changes
type Message struct {
	Address domain.Address `json:"address"`
}

// Event is pushed to the client
type Event struct {
	Type    string           `json:"type"`
	Data    *domain.Carousel `json:"data,omitempty"`
	Message string           `json:"message,omitempty"`
}

type handler struct {
	carousel domain.CarouselUseCase
	upgrader websocket.Upgrader
	met      metrics.Service
}

// New registers the live carousel route
func New(e *echo.Echo, carousel domain.CarouselUseCase) {
	h := &handler{
		carousel: carousel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		met: metrics.New("ws"),
	}

	e.GET("/ws/carousel", h.serve)
}

type client struct {
	conn *websocket.Conn
	send chan Event

	// mu orders result pushes, sent is the latest input sequence pushed
	mu   sync.Mutex
	sent uint64
}

func (h *handler) serve(c echo.Context) error {
	cont := c.Get("ctx").(ctx.Ctx)

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already replied with an http error
		cont.WithField("err", err).Warn("upgrader.Upgrade failed")
		return nil
	}
	defer conn.Close()

	cont = ctx.WithValue(cont, "sessionID", uuid.New().String())
	cont, cancel := ctx.WithCancel(cont)
	defer cancel()

	h.met.BumpSum("session.open", 1)
	cont.Info("carousel session opened")

	cl := &client{
		conn: conn,
		send: make(chan Event, sendBuffer),
	}
	session := h.carousel.NewSession()
	defer session.Close()

	// a dead writer cancels cont so pushes and the reader stop too
	writerDone := goroutine.RecoverableGo(func() {
		cl.writePump(cont, cancel)
	})

	cl.readPump(cont, func(seq uint64, address domain.Address) {
		goroutine.RecoverableGo(func() {
			h.load(cont, cl, session, seq, address)
		})
	})

	cancel()
	<-writerDone
	cont.Info("carousel session closed")
	return nil
}

func (h *handler) load(c ctx.Ctx, cl *client, session domain.CarouselSession, seq uint64, address domain.Address) {
	res, err := session.Load(c, address)

	var ev Event
	switch {
	case errors.Is(err, domain.ErrStaleGeneration), errors.Is(err, context.Canceled):
		h.met.BumpSum("load.dropped", 1)
		return
	case errors.Is(err, domain.ErrUnresolvedName):
		ev = Event{Type: EventCarousel, Data: &domain.Carousel{Input: address, Items: []domain.NftItem{}}}
	case err != nil:
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("session.Load failed")
		ev = Event{Type: EventError, Message: err.Error()}
	default:
		ev = Event{Type: EventCarousel, Data: res}
	}

	if !cl.pushLatest(c, seq, ev) {
		h.met.BumpSum("load.dropped", 1)
	}
}

// push queues ev unless the session is over
func (cl *client) push(c ctx.Ctx, ev Event) bool {
	select {
	case cl.send <- ev:
		return true
	case <-c.Done():
		return false
	}
}

// pushLatest queues the result of input seq unless a later input was already pushed
func (cl *client) pushLatest(c ctx.Ctx, seq uint64, ev Event) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if seq <= cl.sent {
		return false
	}
	cl.sent = seq
	return cl.push(c, ev)
}

// readPump hands every valid input to onInput, numbered from 1, until the connection closes
func (cl *client) readPump(c ctx.Ctx, onInput func(uint64, domain.Address)) {
	cl.conn.SetReadLimit(maxMessageSize)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	seq := uint64(0)
	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.WithField("err", err).Warn("conn.ReadMessage failed")
			}
			return
		}

		msg := Message{}
		if err := json.Unmarshal(data, &msg); err != nil || msg.Address.IsEmpty() {
			if !cl.push(c, Event{Type: EventError, Message: "invalid message"}) {
				return
			}
			continue
		}
		seq++
		onInput(seq, msg.Address)
	}
}

func (cl *client) writePump(c ctx.Ctx, cancel context.CancelFunc) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		cl.conn.Close()
	}()

	for {
		select {
		case ev := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteJSON(ev); err != nil {
				c.WithField("err", err).Warn("conn.WriteJSON failed")
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.Done():
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			cl.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

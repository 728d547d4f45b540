package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/domain"
	"github.com/x-xyz/nftcarousel/domain/mocks"
)

type fakeSession struct {
	closed chan struct{}
}

func (f *fakeSession) Load(c ctx.Ctx, address domain.Address) (*domain.Carousel, error) {
	switch address {
	case "nobody.eth":
		return nil, domain.ErrUnresolvedName
	case "stale":
		return nil, domain.ErrStaleGeneration
	case "broken":
		return nil, domain.ErrInternalServerError
	}
	return &domain.Carousel{
		Input:      address,
		Resolved:   address,
		Generation: 1,
		Items: []domain.NftItem{
			{ContractName: "Apes", ContractAddress: "0xaaa", TokenId: "1", Chain: domain.ChainEthMainnet},
		},
	}, nil
}

func (f *fakeSession) Close() {
	close(f.closed)
}

type wsSuite struct {
	suite.Suite

	session *fakeSession
	server  *httptest.Server
	conn    *websocket.Conn
}

func TestWsSuite(t *testing.T) {
	suite.Run(t, new(wsSuite))
}

func (s *wsSuite) SetupTest() {
	s.session = &fakeSession{closed: make(chan struct{})}
	uc := mocks.NewCarouselUseCase(s.T())
	uc.On("NewSession").Return(s.session).Once()

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, uc)
	s.server = httptest.NewServer(e)

	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws/carousel"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	s.conn = conn
}

func (s *wsSuite) TearDownTest() {
	s.conn.Close()
	select {
	case <-s.session.closed:
	case <-time.After(time.Second):
		s.Fail("session was not closed")
	}
	s.server.Close()
}

func (s *wsSuite) read() Event {
	s.conn.SetReadDeadline(time.Now().Add(time.Second))
	ev := Event{}
	s.Require().NoError(s.conn.ReadJSON(&ev))
	return ev
}

func (s *wsSuite) TestLoad() {
	s.Require().NoError(s.conn.WriteJSON(Message{Address: "0x123"}))

	ev := s.read()
	s.Equal(EventCarousel, ev.Type)
	s.Require().NotNil(ev.Data)
	s.Equal(domain.Address("0x123"), ev.Data.Resolved)
	s.Len(ev.Data.Items, 1)
}

func (s *wsSuite) TestUnresolvedName() {
	s.Require().NoError(s.conn.WriteJSON(Message{Address: "nobody.eth"}))

	ev := s.read()
	s.Equal(EventCarousel, ev.Type)
	s.Require().NotNil(ev.Data)
	s.Equal(domain.Address("nobody.eth"), ev.Data.Input)
	s.Empty(ev.Data.Items)
}

func (s *wsSuite) TestInvalidMessage() {
	s.Require().NoError(s.conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	ev := s.read()
	s.Equal(EventError, ev.Type)
	s.Equal("invalid message", ev.Message)

	s.Require().NoError(s.conn.WriteJSON(Message{}))
	ev = s.read()
	s.Equal(EventError, ev.Type)
}

func (s *wsSuite) TestLoadFailed() {
	s.Require().NoError(s.conn.WriteJSON(Message{Address: "broken"}))

	ev := s.read()
	s.Equal(EventError, ev.Type)
	s.Equal(domain.ErrInternalServerError.Error(), ev.Message)
}

func (s *wsSuite) TestStaleDropped() {
	s.Require().NoError(s.conn.WriteJSON(Message{Address: "stale"}))

	s.conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := s.conn.ReadMessage()
	s.Error(err)
}

// serverConn returns the server side of a fresh websocket connection and closes the client side on cleanup
func (s *wsSuite) serverConn() *websocket.Conn {
	conns := make(chan *websocket.Conn, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- conn
	}))
	s.T().Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	clientConn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	s.T().Cleanup(func() { clientConn.Close() })

	select {
	case conn := <-conns:
		return conn
	case <-time.After(time.Second):
		s.FailNow("no server connection")
	}
	return nil
}

func (s *wsSuite) TestWriterFailureReleasesPushes() {
	conn := s.serverConn()
	// every write fails from now on
	conn.Close()

	c, cancel := ctx.WithCancel(ctx.Background())
	defer cancel()
	cl := &client{conn: conn, send: make(chan Event, sendBuffer)}

	writerDone := make(chan struct{})
	go func() {
		cl.writePump(c, cancel)
		close(writerDone)
	}()
	cl.push(c, Event{Type: EventError, Message: "invalid message"})

	select {
	case <-writerDone:
	case <-time.After(time.Second):
		s.FailNow("writer did not stop")
	}
	s.Error(c.Err())

	// the client keeps sending past the buffer size, nothing blocks
	pushed := make(chan struct{})
	go func() {
		for i := 0; i < 2*sendBuffer; i++ {
			cl.push(c, Event{Type: EventError, Message: "invalid message"})
		}
		cl.pushLatest(c, 1, Event{Type: EventCarousel})
		close(pushed)
	}()
	select {
	case <-pushed:
	case <-time.After(time.Second):
		s.Fail("push blocked after the writer stopped")
	}
}

func (s *wsSuite) TestOlderResultNotPushedAfterNewer() {
	c := ctx.Background()
	cl := &client{send: make(chan Event, sendBuffer)}

	s.True(cl.pushLatest(c, 2, Event{Type: EventCarousel, Data: &domain.Carousel{Input: "b.eth"}}))
	s.False(cl.pushLatest(c, 1, Event{Type: EventCarousel, Data: &domain.Carousel{Input: "a.eth"}}))
	s.True(cl.pushLatest(c, 3, Event{Type: EventError, Message: "boom"}))

	s.Require().Len(cl.send, 2)
	s.Equal(domain.Address("b.eth"), (<-cl.send).Data.Input)
	s.Equal(EventError, (<-cl.send).Type)
}

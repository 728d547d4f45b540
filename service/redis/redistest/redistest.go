// Package redistest provides an in-memory redigo connection for tests which need a
// redis.Service without a running server.
package redistest

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/nftcarousel/base/metrics"
	rService "github.com/x-xyz/nftcarousel/service/redis"
)

type entry struct {
	val    []byte
	expire time.Time
}

// Store is a minimal key/value server understanding GET, SET [PX], DEL, TTL and PING.
type Store struct {
	mu   sync.Mutex
	data map[string]entry
	// Fail makes every command return the error when set
	Fail error
}

func NewStore() *Store {
	return &Store{data: make(map[string]entry)}
}

// Service returns a redis.Service backed by the store
func (s *Store) Service(name string) rService.Service {
	pool := &redis.Pool{
		MaxIdle: 4,
		Dial: func() (redis.Conn, error) {
			return &conn{store: s}, nil
		},
	}
	return rService.New(name, metrics.New(name), &rService.Pools{Src: pool})
}

// Keys returns the live keys
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ks := []string{}
	for k := range s.data {
		if _, ok := s.lookup(k); ok {
			ks = append(ks, k)
		}
	}
	return ks
}

func (s *Store) lookup(key string) (entry, bool) {
	e, ok := s.data[key]
	if !ok {
		return e, false
	}
	if !e.expire.IsZero() && time.Now().After(e.expire) {
		delete(s.data, key)
		return e, false
	}
	return e, true
}

func (s *Store) do(cmd string, args []interface{}) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cmd == "" {
		return nil, nil
	}
	if s.Fail != nil {
		return nil, s.Fail
	}

	switch strings.ToUpper(cmd) {
	case "PING":
		return "PONG", nil
	case "GET":
		e, ok := s.lookup(str(args[0]))
		if !ok {
			return nil, nil
		}
		return e.val, nil
	case "SET":
		e := entry{val: bytes(args[1])}
		if len(args) >= 4 && strings.ToUpper(str(args[2])) == "PX" {
			ms, err := strconv.Atoi(str(args[3]))
			if err != nil {
				return nil, err
			}
			e.expire = time.Now().Add(time.Duration(ms) * time.Millisecond)
		}
		s.data[str(args[0])] = e
		return "OK", nil
	case "DEL":
		n := int64(0)
		for _, a := range args {
			if _, ok := s.lookup(str(a)); ok {
				delete(s.data, str(a))
				n++
			}
		}
		return n, nil
	case "TTL":
		e, ok := s.lookup(str(args[0]))
		if !ok {
			return int64(-2), nil
		}
		if e.expire.IsZero() {
			return int64(-1), nil
		}
		return int64(time.Until(e.expire).Round(time.Second) / time.Second), nil
	}
	return nil, fmt.Errorf("redistest: unsupported command %s", cmd)
}

func str(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

func bytes(v interface{}) []byte {
	switch t := v.(type) {
	case []byte:
		return append([]byte(nil), t...)
	default:
		return []byte(str(t))
	}
}

type conn struct {
	store   *Store
	pending []interface{}
}

func (c *conn) Close() error { return nil }

func (c *conn) Err() error { return nil }

func (c *conn) Do(cmd string, args ...interface{}) (interface{}, error) {
	return c.store.do(cmd, args)
}

func (c *conn) Send(cmd string, args ...interface{}) error {
	reply, err := c.store.do(cmd, args)
	if err != nil {
		return err
	}
	c.pending = append(c.pending, reply)
	return nil
}

func (c *conn) Flush() error { return nil }

func (c *conn) Receive() (interface{}, error) {
	if len(c.pending) == 0 {
		return nil, redis.ErrNil
	}
	reply := c.pending[0]
	c.pending = c.pending[1:]
	return reply, nil
}

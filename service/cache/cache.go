package cache

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/service/cache/provider"
)

var (
	ErrNotFound = errors.New("cache: not found")
)

// OneTimeGetter loads the value on a miss, it must return a pointer of the container's type
type OneTimeGetter func() (interface{}, error)

type Serializer func(interface{}) ([]byte, error)

type Deserializer func([]byte, interface{}) error

// Service is a typed cache over one provider, keys are prefixed with Pfx
type Service interface {
	GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	Ttl         time.Duration
	Pfx         string
	Cache       provider.Provider
	Serialize   Serializer
	Deserialize Deserializer
}

// Fill copies the value behind val into container
func Fill(container, val interface{}) error {
	dst := reflect.ValueOf(container)
	src := reflect.ValueOf(val)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return fmt.Errorf("cache: container must be a non nil pointer, got %T", container)
	}
	if src.Kind() != reflect.Ptr || src.IsNil() {
		return fmt.Errorf("cache: getter must return a non nil pointer, got %T", val)
	}
	if !src.Elem().Type().AssignableTo(dst.Elem().Type()) {
		return fmt.Errorf("cache: cannot fill %T with %T", container, val)
	}
	dst.Elem().Set(src.Elem())
	return nil
}

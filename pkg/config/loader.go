package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache holds one parsed copy per configuration type.
type cache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	global = &cache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}

	dotenvLoaded sync.Once
)

// Load parses environment variables into v. The first call of the process
// also reads `.env` from the working directory when it exists.
// Every configuration type is parsed once; later calls copy the cached value.
func Load[T any](v *T) error {
	dotenvLoaded.Do(func() {
		// A missing .env file is the normal case outside development.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := typeKey[T]()

	if cached, ok := global.get(key); ok {
		*v = cached.(T)
		return nil
	}

	global.mu.Lock()
	once, exists := global.onces[key]
	if !exists {
		once = new(sync.Once)
		global.onces[key] = once
	}
	global.mu.Unlock()

	var err error
	once.Do(func() {
		if parseErr := env.Parse(v); parseErr != nil {
			err = errors.Join(ErrParsingConfig, parseErr)
			// Allow a retry after the environment has been fixed.
			global.mu.Lock()
			delete(global.onces, key)
			global.mu.Unlock()
			return
		}

		global.mu.Lock()
		global.values[key] = *v
		global.mu.Unlock()
	})
	if err != nil {
		return err
	}

	if cached, ok := global.get(key); ok {
		*v = cached.(T)
		return nil
	}
	return ErrConfigNotLoaded
}

// MustLoad is like Load but panics on failure. Use it for configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func (c *cache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

func typeKey[T any]() string {
	t := reflect.TypeFor[T]()
	return t.PkgPath() + "." + t.String()
}

package env

import (
	"fmt"
	"sync"

	"golang.org/x/exp/rand"

	"martis/game"
)

// EngineFactory builds an engine instance around the adapter's rand
// source.
type EngineFactory func(rng *rand.Rand) Engine

// The registry is an explicit factory map filled at process start. No
// decorators, no dynamic discovery: an env_id either has a registered
// factory or construction fails.
var (
	registryMu sync.RWMutex
	registry   = map[string]EngineFactory{}
)

// RegisterEngine binds an env_id to an engine factory. Re-registering an
// id is a programmer error.
func RegisterEngine(id string, factory EngineFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("engine %q registered twice", id))
	}
	registry[id] = factory
}

func engineFor(id string) (EngineFactory, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("no engine registered for env_id %q", id)
	}
	return factory, nil
}

func init() {
	RegisterEngine(DefaultEnvID, func(rng *rand.Rand) Engine {
		return game.New(rng)
	})
}

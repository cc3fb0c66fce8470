package vle

// Arena models the per-call memory arena spec §5 describes
// (`multi_call_memory_ctx`): a scope that owns an Engine's queues and
// edge_state map and is released in O(1) between emissions or on
// cancellation. Go's garbage collector already reclaims an abandoned
// Engine in full, so Arena carries no buffers of its own — it exists as
// the idiomatic stand-in for the C arena's explicit lifetime, giving
// callers an explicit point to drop their reference to an Engine.
type Arena struct {
	engine *Engine
}

// NewArena wraps engine in an Arena.
func NewArena(engine *Engine) *Arena { return &Arena{engine: engine} }

// Engine returns the wrapped Engine, or nil after Release.
func (a *Arena) Engine() *Engine { return a.engine }

// Release drops the Arena's reference to its Engine, making every
// queue/map it held eligible for collection (spec §5 "the engine
// guarantees all resources... are arena-allocated so teardown is O(1)").
func (a *Arena) Release() { a.engine = nil }

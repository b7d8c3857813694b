package primitive

// Adapter is the boundary to a rendering framework. Mount receives the live
// primitive's handle and returns whatever renderable the framework expects.
// Adapters read state through the handle, re-render on its change
// subscription, apply A11yProps to the matching elements, and route native
// events through the handle's interaction handlers rather than dispatching
// domain events themselves.
type Adapter[S any] interface {
	Mount(h *Handle[S]) (any, error)
}

// AdapterFunc adapts a function to the Adapter interface.
type AdapterFunc[S any] func(h *Handle[S]) (any, error)

// Mount implements Adapter.
func (f AdapterFunc[S]) Mount(h *Handle[S]) (any, error) {
	return f(h)
}

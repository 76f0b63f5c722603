package tools

import "github.com/agrisage/agroserve/internal/appconfig"

// Registry is the tool catalog: ordered definitions plus a name-to-handler
// dispatch table. Build one at startup and share it freely; lookups never
// mutate state, so concurrent use needs no locking.
type Registry struct {
	defs     []Definition
	handlers map[string]Handler
}

// NewRegistry assembles the catalog in its presentation order. A nil config
// falls back to defaults for every endpoint and timeout.
func NewRegistry(cfg *appconfig.Config) *Registry {
	if cfg == nil {
		cfg = &appconfig.Config{}
	}
	r := &Registry{handlers: make(map[string]Handler)}
	r.register(CurrentWeatherDefinition(), CurrentWeatherHandler(cfg))
	r.register(PlaceholderPostsDefinition(), PlaceholderPostsHandler(cfg))
	r.register(PesticideSeedDefinition(), PesticideSeedHandler())
	return r
}

func (r *Registry) register(def Definition, handler Handler) {
	r.defs = append(r.defs, def)
	r.handlers[def.Name] = handler
}

// Definitions returns the catalog in registration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Definition looks up a single tool's metadata by name.
func (r *Registry) Definition(name string) (Definition, bool) {
	for _, def := range r.defs {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}

// Handler looks up the callable for a tool name.
func (r *Registry) Handler(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names lists the tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for _, def := range r.defs {
		names = append(names, def.Name)
	}
	return names
}

package graph

import (
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/httpgraph/pkg/errors"
	"github.com/arthur-debert/httpgraph/pkg/registry"
)

// Factory builds the Wrapper for one handler. It receives the registry so
// that delegating wrappers can resolve other values.
type Factory func(r *Registry, h any) Wrapper

// Registry maps handler types, or qualified type names for types that cannot
// be referenced directly, to wrapper factories.
type Registry struct {
	mu     sync.RWMutex
	types  map[reflect.Type]Factory
	names  registry.Registry[Factory]
	strict bool
	logger zerolog.Logger

	sealed atomic.Pointer[table]
}

// table is the immutable lookup state published by Seal.
type table struct {
	types map[reflect.Type]Factory
	names map[string]Factory
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithStrictRegistration makes duplicate registrations fail with
// ErrAlreadyExists instead of replacing the previous factory.
func WithStrictRegistration() RegistryOption {
	return func(r *Registry) { r.strict = true }
}

// WithLogger sets the logger used for registration and resolution events.
// Registries log nothing without it.
func WithLogger(l zerolog.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry returns a registry with the Generic wrapper bound to the
// empty interface type, so resolution always succeeds.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		types:  map[reflect.Type]Factory{rootType: genericFactory},
		names:  registry.New[Factory]("wrapper"),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func genericFactory(_ *Registry, h any) Wrapper { return NewGeneric(h) }

// Register binds t to f. Binding the same type twice replaces the earlier
// factory and logs a warning, unless the registry is strict.
func (r *Registry) Register(t reflect.Type, f Factory) error {
	if t == nil || f == nil {
		return errors.New(errors.ErrInvalidInput, "register needs a type and a factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() != nil {
		return errors.Newf(errors.ErrRegistrySealed, "cannot register %s: registry is sealed", TypeName(t))
	}

	// the catch-all is pre-bound and may be replaced without a warning
	if _, exists := r.types[t]; exists && t != rootType {
		if r.strict {
			return errors.Newf(errors.ErrAlreadyExists, "wrapper for %s is already registered", TypeName(t)).
				WithDetail("key", TypeName(t))
		}
		r.logger.Warn().Str("key", TypeName(t)).Msg("Replacing previously registered wrapper")
	}

	r.types[t] = f
	r.logger.Debug().Str("key", TypeName(t)).Msg("Registered wrapper")
	return nil
}

// RegisterName binds a qualified type name such as "net/http.fileHandler".
// Use it for types that are unexported or whose package is optional.
func (r *Registry) RegisterName(name string, f Factory) error {
	if f == nil {
		return errors.New(errors.ErrInvalidInput, "register needs a factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() != nil {
		return errors.Newf(errors.ErrRegistrySealed, "cannot register %s: registry is sealed", name)
	}

	if r.strict {
		return r.names.Register(name, f)
	}

	replaced, err := r.names.Put(name, f)
	if err != nil {
		return err
	}
	if replaced {
		r.logger.Warn().Str("key", name).Msg("Replacing previously registered wrapper")
	}
	r.logger.Debug().Str("key", name).Msg("Registered wrapper")
	return nil
}

// MustRegister is Register for init-time tables; it panics on error.
func (r *Registry) MustRegister(t reflect.Type, f Factory) {
	if err := r.Register(t, f); err != nil {
		panic(err)
	}
}

// MustRegisterName is RegisterName for init-time tables; it panics on error.
func (r *Registry) MustRegisterName(name string, f Factory) {
	if err := r.RegisterName(name, f); err != nil {
		panic(err)
	}
}

// Seal closes the registry for registration. Lookups after Seal read an
// immutable snapshot and take no lock. Sealing twice is a no-op.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() != nil {
		return
	}

	types := make(map[reflect.Type]Factory, len(r.types))
	for k, v := range r.types {
		types[k] = v
	}
	r.sealed.Store(&table{types: types, names: r.names.Snapshot()})
	r.logger.Debug().Int("wrappers", len(types)+len(r.names.List())).Msg("Registry sealed")
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	return r.sealed.Load() != nil
}

// Resolve returns the Wrapper for h. Values that already are Wrappers are
// returned unchanged. The walk goes most specific type first and tries the
// type key before the name key at each level; the root level always matches.
func (r *Registry) Resolve(h any) Wrapper {
	if w, ok := h.(Wrapper); ok {
		return w
	}

	for _, t := range Hierarchy(h) {
		f, ok := r.lookup(t)
		if !ok {
			continue
		}
		r.logger.Trace().Str("handler", DisplayType(h)).Str("key", TypeName(t)).Msg("Resolved wrapper")
		if w := f(r, h); w != nil {
			return w
		}
		break
	}

	return NewGeneric(h)
}

func (r *Registry) lookup(t reflect.Type) (Factory, bool) {
	if tbl := r.sealed.Load(); tbl != nil {
		if f, ok := tbl.types[t]; ok {
			return f, true
		}
		f, ok := tbl.names[TypeName(t)]
		return f, ok
	}

	r.mu.RLock()
	f, ok := r.types[t]
	r.mu.RUnlock()
	if ok {
		return f, true
	}
	return r.names.Lookup(TypeName(t))
}

// Keys lists the registered keys, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.types))
	for t := range r.types {
		keys = append(keys, TypeName(t))
	}
	r.mu.RUnlock()

	keys = append(keys, r.names.List()...)
	sort.Strings(keys)
	return keys
}

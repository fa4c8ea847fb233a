package financing

import (
	"strings"
	"sync"
)

// Constructor builds a fresh calculator.
type Constructor func() Calculator

// Registry maps type tags to calculator constructors. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	ctors map[Type]Constructor
	order []Type
}

// NewRegistry returns a registry holding the mortgage, HELOC and cash
// calculators.
func NewRegistry() *Registry {
	r := &Registry{ctors: make(map[Type]Constructor)}
	r.Register(TypeMortgage, func() Calculator { return NewMortgage() })
	r.Register(TypeHELOC, func() Calculator { return NewHELOC() })
	r.Register(TypeCash, func() Calculator { return NewCash() })
	return r
}

// Register adds or replaces the constructor for t.
func (r *Registry) Register(t Type, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ctors[t]; !ok {
		r.order = append(r.order, t)
	}
	r.ctors[t] = ctor
}

// Create returns a new calculator for t or an *UnsupportedTypeError.
func (r *Registry) Create(t Type) (Calculator, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[t]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedTypeError{Type: t}
	}
	return ctor(), nil
}

// CreateMany builds one calculator per requested type, failing on the first
// unknown one.
func (r *Registry) CreateMany(types []Type) (map[Type]Calculator, error) {
	out := make(map[Type]Calculator, len(types))
	for _, t := range types {
		calc, err := r.Create(t)
		if err != nil {
			return nil, err
		}
		out[t] = calc
	}
	return out, nil
}

// Types lists the registered types in registration order.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Type, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) IsSupported(t Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[t]
	return ok
}

// Parse normalizes a user supplied tag and checks it is registered.
func (r *Registry) Parse(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsSupported(t) {
		return "", &UnsupportedTypeError{Type: Type(s)}
	}
	return t, nil
}

// Compare runs every registered calculator against the same parameters.
func (r *Registry) Compare(p Parameters) (map[Type]Result, error) {
	calcs, err := r.CreateMany(r.Types())
	if err != nil {
		return nil, err
	}
	out := make(map[Type]Result, len(calcs))
	for t, calc := range calcs {
		res, err := calc.Calculate(p)
		if err != nil {
			return nil, err
		}
		out[t] = res
	}
	return out, nil
}

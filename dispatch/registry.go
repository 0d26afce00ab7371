package dispatch

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/menpo/shogun/record"
)

// Registry is a priority-bucketed rule table. The zero value is not usable;
// construct with New, Builtin, or use the process-wide Default.
//
// All methods are safe for concurrent use. Rule lookups work on a snapshot,
// so rules themselves run outside the registry lock.
type Registry struct {
	mu       sync.RWMutex
	buckets  map[int][]Rule
	fallback Rule
}

// New returns an empty registry: no rules, no fallback. Dispatching on it
// yields ErrNoMatchingRule until rules are registered.
func New() *Registry {
	return &Registry{buckets: make(map[int][]Rule)}
}

// Builtin returns a fresh registry preloaded with the built-in rules and the
// catch-all fallback. Scoped registries start here.
func Builtin() *Registry {
	r := New()
	r.Register(PrioritySimple, BoolRule{}, RecordRule{})
	r.Register(PriorityContainer, ContainerRule{})
	r.Register(PriorityLowest, EnumRule{}, LiteralRule{})
	r.SetFallback(DefaultRule{})
	return r
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry, built on first use. Changes to
// it affect every caller that did not pass a scoped registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = Builtin()
	})
	return defaultReg
}

// Register adds rules to a priority bucket. Within a bucket, rules dispatch
// in registration order. Negative priorities panic: they are reserved.
func (r *Registry) Register(priority int, rules ...Rule) {
	if priority < 0 {
		panic(fmt.Sprintf("dispatch: priority must be >= 0, got %d", priority))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buckets[priority] = append(r.buckets[priority], rules...)
}

// SetFallback installs the catch-all rule consulted after every bucket.
func (r *Registry) SetFallback(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = rule
}

// Deregister removes the first rule equal to the given one, searching the
// buckets and then the fallback. It reports whether anything was removed.
// Rules with uncomparable dynamic types are never equal.
func (r *Registry) Deregister(rule Rule) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for priority, rules := range r.buckets {
		for i, existing := range rules {
			if sameRule(existing, rule) {
				r.buckets[priority] = append(rules[:i:i], rules[i+1:]...)
				if len(r.buckets[priority]) == 0 {
					delete(r.buckets, priority)
				}
				return true
			}
		}
	}
	if r.fallback != nil && sameRule(r.fallback, rule) {
		r.fallback = nil
		return true
	}
	return false
}

// Clear removes every rule, fallback included.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buckets = make(map[int][]Rule)
	r.fallback = nil
}

// Rules returns the rules in dispatch order: priority descending, insertion
// order within a bucket, fallback last.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	priorities := make([]int, 0, len(r.buckets))
	for p := range r.buckets {
		priorities = append(priorities, p)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(priorities)))

	var out []Rule
	for _, p := range priorities {
		out = append(out, r.buckets[p]...)
	}
	if r.fallback != nil {
		out = append(out, r.fallback)
	}
	return out
}

// Dispatch returns the first rule whose Match accepts the type.
func (r *Registry) Dispatch(t reflect.Type) (Rule, error) {
	for _, rule := range r.Rules() {
		if rule.Match(t) {
			return rule, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoMatchingRule, t)
}

// Flags builds the flag specs for a field by dispatching on its type.
func (r *Registry) Flags(f record.Field) ([]FlagSpec, error) {
	rule, err := r.Dispatch(f.Type)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.Name, err)
	}
	return rule.Flags(f, r)
}

// Serialize turns a value into an encoder-ready primitive by dispatching on
// its type. Interface values dispatch on their dynamic type.
func (r *Registry) Serialize(v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	rule, err := r.Dispatch(v.Type())
	if err != nil {
		return nil, err
	}
	return rule.Primitive(r, v)
}

func sameRule(a, b Rule) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}

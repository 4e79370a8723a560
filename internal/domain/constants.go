package domain

import (
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
	"github.com/mouse-blink/coverprobe/internal/domain/instrumentations"
	m "github.com/mouse-blink/coverprobe/internal/model"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

// ConstantPool stores distinct constant values per value type.
type ConstantPool struct {
	mu     sync.RWMutex
	values map[m.ValueType]m.ValueSet
}

// NewConstantPool creates an empty pool.
func NewConstantPool() *ConstantPool {
	return &ConstantPool{values: make(map[m.ValueType]m.ValueSet)}
}

// Add stores value under its type. Values of unsupported types and NaN are
// dropped and reported as not added.
func (p *ConstantPool) Add(value any) bool {
	t, ok := m.ValueTypeOf(value)
	if !ok {
		return false
	}

	if f, ok := value.(float64); ok && math.IsNaN(f) {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	set, ok := p.values[t]
	if !ok {
		set = m.NewValueSet()
		p.values[t] = set
	}

	set[value] = struct{}{}

	return true
}

// GetAllConstantsFor returns a copy of the values stored for t.
func (p *ConstantPool) GetAllConstantsFor(t m.ValueType) m.ValueSet {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := m.NewValueSet()
	for v := range p.values[t] {
		out[v] = struct{}{}
	}

	return out
}

// HasConstantFor reports whether any value of type t is stored.
func (p *ConstantPool) HasConstantFor(t m.ValueType) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.values[t]) > 0
}

// Snapshot returns the sorted values of every type.
func (p *ConstantPool) Snapshot() map[m.ValueType][]any {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[m.ValueType][]any, len(p.values))
	for t, set := range p.values {
		out[t] = set.Sorted()
	}

	return out
}

// ConstantProvider hands out constants for input generation.
type ConstantProvider interface {
	GetConstantFor(t m.ValueType) (any, bool)
}

// EmptyConstantProvider never provides a constant.
type EmptyConstantProvider struct{}

// GetConstantFor always reports false.
func (EmptyConstantProvider) GetConstantFor(m.ValueType) (any, bool) { return nil, false }

// StaticConstantProvider picks constants from a fixed pool.
type StaticConstantProvider struct {
	pool *ConstantPool
	rng  *lockedRand
}

// NewStaticConstantProvider picks from pool with a generator seeded by seed.
func NewStaticConstantProvider(pool *ConstantPool, seed uint64) *StaticConstantProvider {
	return &StaticConstantProvider{pool: pool, rng: newLockedRand(seed)}
}

// GetConstantFor returns a random value of type t from the pool.
func (s *StaticConstantProvider) GetConstantFor(t m.ValueType) (any, bool) {
	return pick(s.pool, t, s.rng)
}

// CollectConstants gathers the literal constants of units and of every unit
// nested in them.
func CollectConstants(units ...*bytecode.CodeUnit) *ConstantPool {
	pool := NewConstantPool()

	var walk func(unit *bytecode.CodeUnit)

	walk = func(unit *bytecode.CodeUnit) {
		for _, k := range unit.Consts {
			if nested, ok := k.(*bytecode.CodeUnit); ok {
				walk(nested)

				continue
			}

			pool.Add(k)
		}
	}

	for _, unit := range units {
		walk(unit)
	}

	return pool
}

// DynamicConstantProvider collects values observed at runtime and prefers
// them over its delegate.
type DynamicConstantProvider struct {
	pool              *ConstantPool
	delegate          ConstantProvider
	probability       float64
	maxConstantLength int
	rng               *lockedRand
}

// NewDynamicConstantProvider creates a provider storing into pool. Each value
// is admitted with the given probability; strings longer than
// maxConstantLength runes are never admitted.
func NewDynamicConstantProvider(pool *ConstantPool, delegate ConstantProvider, probability float64, maxConstantLength int, seed uint64) *DynamicConstantProvider {
	if delegate == nil {
		delegate = EmptyConstantProvider{}
	}

	return &DynamicConstantProvider{
		pool:              pool,
		delegate:          delegate,
		probability:       probability,
		maxConstantLength: maxConstantLength,
		rng:               newLockedRand(seed),
	}
}

// AddValue stores value if its type is supported and it passes admission.
func (d *DynamicConstantProvider) AddValue(value any) {
	if _, ok := m.ValueTypeOf(value); !ok {
		return
	}

	if s, ok := value.(string); ok && utf8.RuneCountInString(s) > d.maxConstantLength {
		return
	}

	if d.probability < 1 && d.rng.Float64() >= d.probability {
		return
	}

	d.pool.Add(value)
}

// AddValueForStrings stores value and a string for which method gives the
// opposite result.
func (d *DynamicConstantProvider) AddValueForStrings(value string, method string) {
	d.AddValue(value)

	if adversarial, ok := AdversarialString(method, value); ok {
		d.AddValue(adversarial)
	}
}

// GetConstantFor returns a random observed value of type t, falling back to
// the delegate when none was observed.
func (d *DynamicConstantProvider) GetConstantFor(t m.ValueType) (any, bool) {
	if v, ok := pick(d.pool, t, d.rng); ok {
		return v, true
	}

	return d.delegate.GetConstantFor(t)
}

// HasConstantFor reports whether a value of type t was observed.
func (d *DynamicConstantProvider) HasConstantFor(t m.ValueType) bool {
	return d.pool.HasConstantFor(t)
}

// AdversarialString derives from s a value for which the string predicate
// method returns the opposite of what it returns for s.
func AdversarialString(method, s string) (string, bool) {
	pred, ok := vm.StringPredicates[method]
	if !ok {
		return "", false
	}

	holds := pred(s)

	switch method {
	case "isalnum":
		return choose(holds, s+"!", "isalnum"), true
	case "islower":
		if holds {
			return flipped(strings.ToUpper(s), "ISLOWER", pred, false), true
		}

		return flipped(ensure(strings.ToLower(s), "a", pred), "islower", pred, true), true
	case "isupper":
		if holds {
			return flipped(strings.ToLower(s), "isupper", pred, false), true
		}

		return flipped(ensure(strings.ToUpper(s), "A", pred), "ISUPPER", pred, true), true
	case "isdecimal":
		return choose(holds, "non_decimal", "0123456789"), true
	case "isalpha":
		return choose(holds, s+"1", "isalpha"), true
	case "isdigit":
		return choose(holds, s+"_", "0"), true
	case "isidentifier":
		return choose(holds, s+"!", "is_Identifier"), true
	case "isnumeric":
		return choose(holds, s+"A", "012345"), true
	case "isprintable":
		return choose(holds, s+"\n", "is_printable"), true
	case "isspace":
		return choose(holds, s+"a", "   "), true
	case "istitle":
		return choose(holds, s+" AAA", "Is Title"), true
	}

	return "", false
}

func choose(holds bool, whenTrue, whenFalse string) string {
	if holds {
		return whenTrue
	}

	return whenFalse
}

// flipped returns candidate when pred(candidate) is want. Case mapping leaves
// runes without a simple mapping (ß, ϒ) untouched, so fallback is needed.
func flipped(candidate, fallback string, pred func(string) bool, want bool) string {
	if pred(candidate) == want {
		return candidate
	}

	return fallback
}

func ensure(s, suffix string, pred func(string) bool) string {
	if pred(s) {
		return s
	}

	return s + suffix
}

func pick(pool *ConstantPool, t m.ValueType, rng *lockedRand) (any, bool) {
	values := pool.GetAllConstantsFor(t).Sorted()
	if len(values) == 0 {
		return nil, false
	}

	return values[rng.IntN(len(values))], true
}

// lockedRand serialises access to a seeded generator shared by probe
// callbacks and the driver.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newLockedRand(seed uint64) *lockedRand {
	return &lockedRand{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rng.Float64()
}

func (r *lockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rng.IntN(n)
}

var _ instrumentations.ConstantSink = (*DynamicConstantProvider)(nil)

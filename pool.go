package txt2html

import (
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one converter is available.
	MinPoolSize = 1

	// MaxPoolSize caps converters; beyond this, batch conversion is
	// I/O-bound rather than CPU-bound.
	MaxPoolSize = 16
)

// ConverterPool manages converters for parallel batch conversion. Each
// converter holds its own structural and memo state, so pooled converters
// may run concurrently. Converters are created lazily on first acquire.
type ConverterPool struct {
	size    int
	opts    []Option
	convs   []*Converter
	sem     chan *Converter
	mu      sync.Mutex
	created int
	closed  bool
}

// NewConverterPool creates a pool with capacity for n converters, each
// constructed with the given options.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	if n < 1 {
		n = 1
	}
	return &ConverterPool{
		size:  n,
		opts:  opts,
		convs: make([]*Converter, 0, n),
		sem:   make(chan *Converter, n),
	}
}

// Acquire gets a converter from the pool, creating one if capacity
// allows. Blocks if all converters are in use.
func (p *ConverterPool) Acquire() (*Converter, error) {
	select {
	case conv := <-p.sem:
		return conv, nil
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		conv, err := NewConverter(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.convs = append(p.convs, conv)
		p.mu.Unlock()
		return conv, nil
	}
	p.mu.Unlock()

	return <-p.sem, nil
}

// Release returns a converter to the pool.
func (p *ConverterPool) Release(conv *Converter) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.sem <- conv
}

// Close drains the pool and resets every converter.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	convs := p.convs
	p.mu.Unlock()

	for _, conv := range convs {
		_ = conv.Close()
	}
	return nil
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size: an explicit worker count wins,
// otherwise GOMAXPROCS (adjusted by automaxprocs in the CLI) bounded to
// the documented range.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	n := runtime.GOMAXPROCS(0)
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}

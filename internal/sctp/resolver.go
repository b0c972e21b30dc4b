package sctp

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/google/gopacket/layers"
)

// Resolver dispatches SCTP parameters to their family descriptor.
type Resolver struct {
	table  *Table
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTable resolves against t instead of the default table.
func WithTable(t *Table) Option {
	return func(r *Resolver) { r.table = t }
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver returns a resolver backed by the default table.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		table:  DefaultTable(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HandleParameter resolves the descriptor of p.
//
// IPv4 and IPv6 address parameters read the resolved descriptor directly; if
// the table has no descriptor for the derived family the read fails with
// ErrNullDescriptorDereference. Set Primary Address goes through the same
// derivation, which always yields FamilyUnspecified, and reads the descriptor
// only after checking the lookup. Unrecognized parameters return nil, nil.
func (r *Resolver) HandleParameter(p ParameterType) (*Descriptor, error) {
	switch p {
	case ParamIPv4Address, ParamIPv6Address:
		family := DeriveFamily(p)
		lookup := r.table.Resolve(family)

		d, err := lookup.Read()
		if err != nil {
			return nil, fmt.Errorf("param %s: family %s: %w", p, family, err)
		}
		r.logger.Debug("resolved address parameter", "param", p.String(), "family", family.String(), "descriptor", d.Name)
		return &d, nil

	case ParamSetPrimaryAddress:
		family := DeriveFamily(p)
		lookup := r.table.Resolve(family)

		if lookup.Absent() {
			r.logger.Debug("no descriptor for set primary parameter", "param", p.String(), "family", family.String())
			return nil, nil
		}
		d, err := lookup.Read()
		if err != nil {
			return nil, fmt.Errorf("param %s: family %s: %w", p, family, err)
		}
		r.logger.Debug("resolved set primary parameter", "param", p.String(), "family", family.String(), "descriptor", d.Name)
		return &d, nil
	}

	r.logger.Debug("ignoring parameter", "param", p.String())
	return nil, nil
}

// HandleCode is HandleParameter for a raw integer code. Codes that do not fit
// a parameter type field are unrecognized.
func (r *Resolver) HandleCode(code int) (*Descriptor, error) {
	if code < 0 || code > math.MaxUint16 {
		r.logger.Debug("ignoring out of range parameter code", "code", code)
		return nil, nil
	}
	return r.HandleParameter(ParameterType(code))
}

// HandleInitParameters dispatches the parameters of a decoded INIT or
// INIT ACK chunk in order. It stops at the first failure and returns the
// descriptors resolved up to that point.
func (r *Resolver) HandleInitParameters(params []layers.SCTPInitParameter) ([]Descriptor, error) {
	var out []Descriptor
	for i, param := range params {
		d, err := r.HandleParameter(ParameterType(param.Type))
		if err != nil {
			return out, fmt.Errorf("init parameter %d: %w", i, err)
		}
		if d != nil {
			out = append(out, *d)
		}
	}
	return out, nil
}

var defaultResolver = sync.OnceValue(func() *Resolver {
	return NewResolver()
})

// HandleParameter dispatches code with the default resolver.
func HandleParameter(code int) (*Descriptor, error) {
	return defaultResolver().HandleCode(code)
}

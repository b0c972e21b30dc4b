package sctp

import (
	"fmt"
	"net"
	"net/netip"
	"sync"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// Descriptor holds the family specific constants consulted once an address
// parameter has been mapped to its family.
type Descriptor struct {
	Family       AddressFamily
	Name         string
	ParamType    ParameterType // address parameter that carries this family
	AddrLen      int
	NetHeaderLen int
}

// Contains reports whether addr belongs to the descriptor's family.
func (d Descriptor) Contains(addr netip.Addr) bool {
	switch d.Family {
	case FamilyINET:
		return addr.Is4() || addr.Is4In6()
	case FamilyINET6:
		return addr.Is6() && !addr.Is4In6()
	default:
		return false
	}
}

// sctpCommonHeaderLen is the size of the SCTP common header (ports,
// verification tag, checksum) that precedes every chunk.
const sctpCommonHeaderLen = 12

// PayloadMTU returns the bytes left for SCTP chunks in a packet of pathMTU
// bytes once the family's network header and the SCTP common header are
// taken off. It never returns less than zero.
func (d Descriptor) PayloadMTU(pathMTU int) int {
	n := pathMTU - d.NetHeaderLen - sctpCommonHeaderLen
	if n < 0 {
		return 0
	}
	return n
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s(af=%d, param=%s, addrlen=%d, nethdr=%d)",
		d.Name, uint8(d.Family), d.ParamType, d.AddrLen, d.NetHeaderLen)
}

// staticDescriptors builds the single descriptor instance of every concrete
// family. The instances live for the whole process and are never written
// after construction.
var staticDescriptors = sync.OnceValue(func() map[AddressFamily]*Descriptor {
	return map[AddressFamily]*Descriptor{
		FamilyINET: {
			Family:       FamilyINET,
			Name:         "inet",
			ParamType:    ParamIPv4Address,
			AddrLen:      net.IPv4len,
			NetHeaderLen: ipv4.HeaderLen,
		},
		FamilyINET6: {
			Family:       FamilyINET6,
			Name:         "inet6",
			ParamType:    ParamIPv6Address,
			AddrLen:      net.IPv6len,
			NetHeaderLen: ipv6.HeaderLen,
		},
	}
})

// Table indexes descriptors by family. A Table is immutable once built.
type Table struct {
	byFamily map[AddressFamily]*Descriptor
}

var defaultTable = sync.OnceValue(func() *Table {
	return NewTable(FamilyINET, FamilyINET6)
})

// DefaultTable returns the table holding every concrete family.
func DefaultTable() *Table {
	return defaultTable()
}

// NewTable returns a table holding the static descriptors of the listed
// families. Families without a descriptor, FamilyUnspecified among them, are
// skipped.
func NewTable(families ...AddressFamily) *Table {
	static := staticDescriptors()
	t := &Table{byFamily: make(map[AddressFamily]*Descriptor, len(families))}
	for _, f := range families {
		if d, ok := static[f]; ok {
			t.byFamily[f] = d
		}
	}
	return t
}

// Families returns the number of families the table resolves.
func (t *Table) Families() int {
	return len(t.byFamily)
}

// Resolve looks up the descriptor for f. The result is absent for
// FamilyUnspecified and for any family the table does not hold.
func (t *Table) Resolve(f AddressFamily) Lookup {
	if t == nil {
		return Lookup{}
	}
	return Lookup{desc: t.byFamily[f]}
}

// ResolveDescriptor resolves f against the default table.
func ResolveDescriptor(f AddressFamily) Lookup {
	return DefaultTable().Resolve(f)
}

// Lookup is the outcome of resolving a family: a descriptor reference or
// nothing.
type Lookup struct {
	desc *Descriptor
}

// Absent reports whether the lookup resolved to no descriptor.
func (l Lookup) Absent() bool {
	return l.desc == nil
}

// Read dereferences the lookup. Reading an absent lookup fails with
// ErrNullDescriptorDereference.
func (l Lookup) Read() (Descriptor, error) {
	if l.desc == nil {
		return Descriptor{}, ErrNullDescriptorDereference
	}
	return *l.desc, nil
}

// Package sctp maps SCTP address parameters to per-family descriptors.
//
// The dispatch in Resolver.HandleParameter keeps two sibling branches over the
// same lookup: the address parameter branch reads the resolved descriptor
// without checking it, the Set Primary Address branch checks first. Callers
// observe an unchecked read of an absent descriptor as
// ErrNullDescriptorDereference.
package sctp

import "fmt"

// ParameterType is the type field of an SCTP parameter TLV (RFC 4960 §3.2.1).
type ParameterType uint16

const (
	ParamIPv4Address       ParameterType = 5
	ParamIPv6Address       ParameterType = 6
	ParamSetPrimaryAddress ParameterType = 0xc004 // RFC 5061 §4.2.4
)

func (p ParameterType) String() string {
	switch p {
	case ParamIPv4Address:
		return "IPv4Address"
	case ParamIPv6Address:
		return "IPv6Address"
	case ParamSetPrimaryAddress:
		return "SetPrimaryAddress"
	default:
		return fmt.Sprintf("ParameterType(0x%04x)", uint16(p))
	}
}

// IsAddress reports whether p carries an IP address of a specific family.
func (p ParameterType) IsAddress() bool {
	return p == ParamIPv4Address || p == ParamIPv6Address
}

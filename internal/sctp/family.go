package sctp

import "fmt"

// AddressFamily uses the Linux AF_* numbering.
type AddressFamily uint8

const (
	FamilyUnspecified AddressFamily = 0
	FamilyINET        AddressFamily = 2
	FamilyINET6       AddressFamily = 10
)

func (f AddressFamily) String() string {
	switch f {
	case FamilyUnspecified:
		return "UNSPEC"
	case FamilyINET:
		return "INET"
	case FamilyINET6:
		return "INET6"
	default:
		return fmt.Sprintf("AddressFamily(%d)", uint8(f))
	}
}

// DeriveFamily returns the address family carried by an address parameter.
// Everything that is not an IPv4 or IPv6 address parameter, Set Primary
// Address included, derives FamilyUnspecified.
func DeriveFamily(p ParameterType) AddressFamily {
	switch p {
	case ParamIPv4Address:
		return FamilyINET
	case ParamIPv6Address:
		return FamilyINET6
	default:
		return FamilyUnspecified
	}
}

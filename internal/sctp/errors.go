package sctp

import "errors"

// ErrNullDescriptorDereference is returned when a descriptor is read through a
// lookup that resolved to no descriptor.
var ErrNullDescriptorDereference = errors.New("sctp: null descriptor dereference")

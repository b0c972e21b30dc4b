package bench

import (
	"context"
	"errors"
	"fmt"

	"firestige.xyz/veribench/internal/config"
	"firestige.xyz/veribench/internal/metrics"
	"firestige.xyz/veribench/internal/sctp"
	"firestige.xyz/veribench/internal/session"
)

const (
	CaseAddressFamily   = "cve_2014_7841"
	CaseResourceManager = "resource_manager"
)

// ethernetMTU is the path MTU the resolved descriptors are sized against.
const ethernetMTU = 1500

// Builtins returns the shipped cases keyed by name.
func Builtins(sc config.SessionConfig) map[string]Case {
	return map[string]Case{
		CaseAddressFamily: {
			Name: CaseAddressFamily,
			Run:  func(context.Context) error { return checkAddressFamilyDispatch() },
		},
		CaseResourceManager: {
			Name: CaseResourceManager,
			Run:  func(ctx context.Context) error { return checkResourceManager(ctx, sc) },
		},
	}
}

// checkAddressFamilyDispatch expects every recognized parameter to resolve
// cleanly on the full table, and on an empty table expects only the address
// parameter branch to fail.
func checkAddressFamilyDispatch() error {
	full := sctp.NewResolver()
	for _, p := range []sctp.ParameterType{sctp.ParamIPv4Address, sctp.ParamIPv6Address, sctp.ParamSetPrimaryAddress} {
		d, err := full.HandleParameter(p)
		if err != nil {
			return fmt.Errorf("full table: %w", err)
		}
		if !p.IsAddress() {
			continue
		}
		if d == nil || d.ParamType != p {
			return fmt.Errorf("full table: param %s resolved to %v", p, d)
		}
		if d.PayloadMTU(ethernetMTU) <= 0 {
			return fmt.Errorf("full table: %s leaves no chunk space in a %d byte packet", d, ethernetMTU)
		}
	}

	empty := sctp.NewResolver(sctp.WithTable(sctp.NewTable()))
	for _, p := range []sctp.ParameterType{sctp.ParamIPv4Address, sctp.ParamIPv6Address} {
		_, err := empty.HandleParameter(p)
		if !errors.Is(err, sctp.ErrNullDescriptorDereference) {
			return fmt.Errorf("empty table: param %s: expected null descriptor dereference, got %v", p, err)
		}
	}
	if _, err := empty.HandleParameter(sctp.ParamSetPrimaryAddress); err != nil {
		return fmt.Errorf("empty table: checked branch failed: %w", err)
	}
	return nil
}

// checkResourceManager proves camera-implies-mic over the reachable states,
// then replays a seeded random session checking it after every transition.
func checkResourceManager(ctx context.Context, sc config.SessionConfig) error {
	if err := session.CheckInvariant(session.CameraImpliesMic); err != nil {
		return err
	}

	var violation error
	m := session.NewMachine(session.WithObserver(func(tr session.Transition) {
		metrics.SessionTransitionsTotal.WithLabelValues(tr.From.String(), tr.To.String()).Inc()
		if violation == nil && !session.CameraImpliesMic(tr.To, tr.To.Flags()) {
			violation = fmt.Errorf("after %s: %w", tr.Command, session.ErrInvariantViolated)
		}
	}))

	rnd := session.NewRandomSource(sc.Seed, sc.CommandMin, sc.CommandMax)
	steps := 0
	src := session.CommandSourceFunc(func() int {
		steps++
		if steps > sc.MaxSteps || ctx.Err() != nil {
			return int(session.CmdExit)
		}
		return rnd.Next()
	})
	m.Run(src)

	if violation != nil {
		return violation
	}
	return ctx.Err()
}

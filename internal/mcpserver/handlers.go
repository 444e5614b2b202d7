package mcpserver

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oscillab/resonance/internal/discrete"
	"github.com/oscillab/resonance/internal/ratelimit"
)

// maxTickBatch bounds how far a single tool call may advance the engine.
const maxTickBatch = 1000

func report(r discrete.TickResult) TickReport {
	return TickReport{
		Fired:                r.Fired,
		Coherence:            r.Coherence,
		Entropy:              r.Entropy,
		StabilizationMargin:  r.StabilizationMargin,
		ActiveCount:          r.ActiveCount,
		DominantPhaseBin:     r.DominantPhaseBin,
		PeakPrime:            r.PeakPrime,
		DominantSemanticAxis: r.DominantSemanticAxis,
	}
}

func (s *Server) handleStatus(ctx context.Context, req *sdk.CallToolRequest, args StatusInput) (*sdk.CallToolResult, StatusOutput, error) {
	started := time.Now()

	if err := ratelimit.CheckLimit(s.toolLimiters, "resonance_status"); err != nil {
		s.audit.Record("resonance_status", started, err)
		return nil, StatusOutput{}, err
	}

	out := StatusOutput{
		Preset:      s.preset,
		Oscillators: s.engine.Size(),
		TickCount:   s.engine.TickCount(),
		ActiveCount: s.engine.ActiveCount(),
		LockedUp:    s.engine.LockedUp(),
		Last:        report(s.engine.LastResult()),
	}

	s.audit.Record("resonance_status", started, nil)
	return nil, out, nil
}

func (s *Server) handleTick(ctx context.Context, req *sdk.CallToolRequest, args TickInput) (*sdk.CallToolResult, TickOutput, error) {
	started := time.Now()

	if err := ratelimit.CheckLimit(s.toolLimiters, "resonance_tick"); err != nil {
		s.audit.Record("resonance_tick", started, err)
		return nil, TickOutput{}, err
	}

	count := args.Count
	if count <= 0 {
		count = 1
	}
	if count > maxTickBatch {
		err := fmt.Errorf("count %d exceeds maximum of %d", count, maxTickBatch)
		s.audit.Record("resonance_tick", started, err)
		return nil, TickOutput{}, err
	}

	var last discrete.TickResult
	for i := 0; i < count; i++ {
		last = s.engine.Tick()
	}

	out := TickOutput{
		Ticked:   count,
		Result:   report(last),
		LockedUp: s.engine.LockedUp(),
	}

	s.audit.Record("resonance_tick", started, nil)
	return nil, out, nil
}

func (s *Server) handleBoost(ctx context.Context, req *sdk.CallToolRequest, args BoostInput) (*sdk.CallToolResult, BoostOutput, error) {
	started := time.Now()

	if err := ratelimit.CheckLimit(s.toolLimiters, "resonance_boost"); err != nil {
		s.audit.Record("resonance_boost", started, err)
		return nil, BoostOutput{}, err
	}

	if args.Prime < 2 {
		err := fmt.Errorf("prime must be >= 2, got %d", args.Prime)
		s.audit.Record("resonance_boost", started, err)
		return nil, BoostOutput{}, err
	}

	s.engine.BoostPrime(args.Prime, args.Amount)

	out := BoostOutput{
		ActiveCount: s.engine.ActiveCount(),
		Message:     fmt.Sprintf("boosted oscillator for prime %d", args.Prime),
	}

	s.audit.Record("resonance_boost", started, nil)
	return nil, out, nil
}

func (s *Server) handleDampen(ctx context.Context, req *sdk.CallToolRequest, args DampenInput) (*sdk.CallToolResult, DampenOutput, error) {
	started := time.Now()

	if err := ratelimit.CheckLimit(s.toolLimiters, "resonance_dampen"); err != nil {
		s.audit.Record("resonance_dampen", started, err)
		return nil, DampenOutput{}, err
	}

	if args.Factor < 0 {
		err := fmt.Errorf("factor must be non-negative, got %v", args.Factor)
		s.audit.Record("resonance_dampen", started, err)
		return nil, DampenOutput{}, err
	}

	s.engine.DampenAll(args.Factor)

	out := DampenOutput{ActiveCount: s.engine.ActiveCount()}

	s.audit.Record("resonance_dampen", started, nil)
	return nil, out, nil
}

func (s *Server) handleReset(ctx context.Context, req *sdk.CallToolRequest, args ResetInput) (*sdk.CallToolResult, ResetOutput, error) {
	started := time.Now()

	if err := ratelimit.CheckLimit(s.toolLimiters, "resonance_reset"); err != nil {
		s.audit.Record("resonance_reset", started, err)
		return nil, ResetOutput{}, err
	}

	s.engine.Reset()

	out := ResetOutput{Message: "engine reset to initial state"}

	s.audit.Record("resonance_reset", started, nil)
	return nil, out, nil
}

func (s *Server) handleRecover(ctx context.Context, req *sdk.CallToolRequest, args RecoverInput) (*sdk.CallToolResult, RecoverOutput, error) {
	started := time.Now()

	if err := ratelimit.CheckLimit(s.toolLimiters, "resonance_recover"); err != nil {
		s.audit.Record("resonance_recover", started, err)
		return nil, RecoverOutput{}, err
	}

	wasLocked := s.engine.LockedUp()
	s.engine.RandomizeCoupling()

	out := RecoverOutput{
		WasLockedUp: wasLocked,
		Message:     "coupling matrix randomized",
	}

	s.audit.Record("resonance_recover", started, nil)
	return nil, out, nil
}

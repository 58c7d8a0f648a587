package callgraph

import (
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
	"github.com/fleshka4/vault-quoter/internal/token"
)

// PeekRequest asks to observe the value of Slot, an output of Token.
type PeekRequest struct {
	Token token.Token `json:"token"`
	Slot  SlotKey     `json:"slot"`
}

// PeekEntry says the value of Slot is returned at Position of the simulated
// multicall results.
type PeekEntry struct {
	Token    token.Token `json:"token"`
	Slot     SlotKey     `json:"slot"`
	Position int         `json:"position"`
}

// PeekLayout lists peek entries in request order.
type PeekLayout []PeekEntry

// LeafPeekRequests lists every output no later node consumes, in node then
// output order.
func LeafPeekRequests(g *CallGraph) []PeekRequest {
	var requests []PeekRequest
	for _, n := range g.nodes {
		if n.Action == ActionPeek {
			continue
		}
		for _, out := range n.Outputs {
			if !g.Consumed(out.Slot) {
				requests = append(requests, PeekRequest{Token: out.Token, Slot: out.Slot})
			}
		}
	}
	return requests
}

// ObservePeekRequests lists every output of the given tokens, token by token
// in node order. Used to observe intermediate share balances. A token no node
// outputs is an error.
func ObservePeekRequests(g *CallGraph, tokens []token.Token) ([]PeekRequest, error) {
	var requests []PeekRequest
	for _, tok := range tokens {
		found := false
		for _, n := range g.nodes {
			if n.Action == ActionPeek {
				continue
			}
			for _, out := range n.Outputs {
				if out.Token.Equal(tok) {
					requests = append(requests, PeekRequest{Token: out.Token, Slot: out.Slot})
					found = true
				}
			}
		}
		if !found {
			return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "no node outputs %s", tok)
		}
	}
	return requests, nil
}

// PaidPeekRequests lists the slots a later node pays from under a reference
// bound, in node then limit order, skipping slots already observed by g.
func PaidPeekRequests(g *CallGraph) []PeekRequest {
	var requests []PeekRequest
	seen := make(map[SlotKey]bool)
	for _, n := range g.nodes {
		if n.Action == ActionPeek {
			continue
		}
		for _, l := range n.Limits {
			if l.Side != SidePay || !l.Bound.IsReference() {
				continue
			}
			slot := l.Bound.Slot()
			if seen[slot] || g.Peeked(slot) {
				continue
			}
			seen[slot] = true
			requests = append(requests, PeekRequest{Token: l.Token, Slot: slot})
		}
	}
	return requests
}

// AppendPeeks returns a copy of g with one peek node per request appended in
// request order, and where each peek result lands. Requests for the same token
// are kept distinct.
func AppendPeeks(g *CallGraph, requests []PeekRequest) (*CallGraph, PeekLayout, error) {
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}

	extended := g.Clone()
	layout := make(PeekLayout, 0, len(requests))
	for _, r := range requests {
		if _, ok := extended.Producer(r.Slot); !ok {
			return nil, nil, errors.Wrapf(apperrors.ErrInvalidArgument, "peek of unknown slot %d", r.Slot)
		}
		position := extended.Len()
		err := extended.Append(Node{
			Action:        ActionPeek,
			TokenOutIndex: -1,
			Inputs:        []Input{{Token: r.Token, Amount: Reference(r.Slot)}},
		})
		if err != nil {
			return nil, nil, err
		}
		layout = append(layout, PeekEntry{Token: r.Token, Slot: r.Slot, Position: position})
	}
	return extended, layout, nil
}

// ResolvedAmount is the simulated value of one observed slot.
type ResolvedAmount struct {
	Slot   SlotKey      `json:"slot"`
	Amount token.Amount `json:"amount"`
}

// Resolved holds extracted amounts in layout order.
type Resolved []ResolvedAmount

// BySlot indexes the amounts by slot.
func (r Resolved) BySlot() map[SlotKey]token.Amount {
	return lo.SliceToMap(r, func(a ResolvedAmount) (SlotKey, token.Amount) { return a.Slot, a.Amount })
}

// Amounts returns the amounts in layout order.
func (r Resolved) Amounts() []token.Amount {
	return lo.Map(r, func(a ResolvedAmount, _ int) token.Amount { return a.Amount })
}

// ByToken sums the observed slots per token, first seen first. A slot read by
// several peeks counts once.
func (r Resolved) ByToken() ([]token.Amount, error) {
	var totals []token.Amount
	counted := make(map[SlotKey]bool, len(r))
	for _, a := range r {
		if counted[a.Slot] {
			continue
		}
		counted[a.Slot] = true

		i := slices.IndexFunc(totals, func(t token.Amount) bool { return t.Token.Equal(a.Amount.Token) })
		if i < 0 {
			totals = append(totals, a.Amount)
			continue
		}
		sum, err := totals[i].Add(a.Amount)
		if err != nil {
			return nil, errors.Wrap(err, "totals.Add")
		}
		totals[i] = sum
	}
	return totals, nil
}

var uint256Result = func() abi.Arguments {
	ty, err := abi.NewType("uint256", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{{Type: ty}}
}()

// ExtractAmounts decodes the peek results of a simulated multicall. Any
// missing or undecodable result fails the whole extraction.
func ExtractAmounts(results [][]byte, layout PeekLayout) (Resolved, error) {
	resolved := make(Resolved, 0, len(layout))
	for _, e := range layout {
		if e.Position < 0 || e.Position >= len(results) {
			return nil, errors.Wrapf(apperrors.ErrSimulationFailed, "%d results, peek expected at %d", len(results), e.Position)
		}
		vals, err := uint256Result.Unpack(results[e.Position])
		if err != nil || len(vals) != 1 {
			return nil, errors.Wrap(apperrors.ErrSimulationFailed, "peek result is not a uint256")
		}
		v, ok := vals[0].(*big.Int)
		if !ok {
			return nil, errors.Wrap(apperrors.ErrSimulationFailed, "peek result is not a uint256")
		}
		amount, err := token.NewAmount(e.Token, v)
		if err != nil {
			return nil, errors.Wrap(apperrors.ErrSimulationFailed, err.Error())
		}
		resolved = append(resolved, ResolvedAmount{Slot: e.Slot, Amount: amount})
	}
	return resolved, nil
}

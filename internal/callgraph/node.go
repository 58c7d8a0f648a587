package callgraph

import (
	"slices"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fleshka4/vault-quoter/internal/token"
)

// Action is what a node does.
type Action string

const (
	ActionExit Action = "exit"
	ActionJoin Action = "join"
	// ActionPeek reads a slot back during simulation and is never executed.
	ActionPeek Action = "peek"
)

// Kind selects between proportional and single token actions.
type Kind string

const (
	KindProportional Kind = "proportional"
	KindSingleToken  Kind = "single_token"
)

// Side says whether the caller receives or pays the limited amount.
type Side string

const (
	SideReceive Side = "receive"
	SidePay     Side = "pay"
)

// Input is an amount consumed by a node.
type Input struct {
	Token  token.Token      `json:"token"`
	Amount AmountDescriptor `json:"amount"`
}

// Output is an amount produced by a node into Slot. Index is the token
// position in the node's sorted pool tokens, -1 when the token is not listed.
type Output struct {
	Token token.Token `json:"token"`
	Index int         `json:"index"`
	Slot  SlotKey     `json:"slot"`
}

// Limit bounds one token amount of a node.
type Limit struct {
	Token token.Token      `json:"token"`
	Side  Side             `json:"side"`
	Bound AmountDescriptor `json:"bound"`
}

// Node is one pool level action of a call graph.
type Node struct {
	Action        Action         `json:"action"`
	PoolID        common.Hash    `json:"poolId,omitempty"`
	PoolAddress   common.Address `json:"poolAddress,omitempty"`
	PoolType      PoolType       `json:"poolType,omitempty"`
	Tokens        []token.Token  `json:"tokens,omitempty"`
	Kind          Kind           `json:"kind,omitempty"`
	TokenOutIndex int            `json:"tokenOutIndex"`
	Inputs        []Input        `json:"inputs"`
	Outputs       []Output       `json:"outputs"`
	Limits        []Limit        `json:"limits"`
}

// Consumes lists the slots referenced by the node inputs.
func (n Node) Consumes() []SlotKey {
	var slots []SlotKey
	for _, in := range n.Inputs {
		if in.Amount.IsReference() {
			slots = append(slots, in.Amount.Slot())
		}
	}
	return slots
}

// Produces lists the output slots of the node.
func (n Node) Produces() []SlotKey {
	slots := make([]SlotKey, 0, len(n.Outputs))
	for _, out := range n.Outputs {
		slots = append(slots, out.Slot)
	}
	return slots
}

// Clone returns a deep copy.
func (n Node) Clone() Node {
	n.Tokens = slices.Clone(n.Tokens)
	n.Inputs = slices.Clone(n.Inputs)
	n.Outputs = slices.Clone(n.Outputs)
	n.Limits = slices.Clone(n.Limits)
	return n
}

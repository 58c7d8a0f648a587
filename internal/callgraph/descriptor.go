package callgraph

import (
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"

	"github.com/fleshka4/vault-quoter/internal/apperrors"
)

// SlotKey names an output whose value is only known after simulation. A slot
// is produced by exactly one node of a graph.
type SlotKey uint64

const (
	// Relayer chained reference prefixes, stored in the top 16 bits.
	temporaryReferencePrefix = 0xba10
	readOnlyReferencePrefix  = 0xba11
)

// ChainedReference returns the relayer encoding of slot. Temporary references
// are cleared by the relayer once read, read-only ones are kept.
func ChainedReference(slot SlotKey, temporary bool) *big.Int {
	prefix := int64(readOnlyReferencePrefix)
	if temporary {
		prefix = temporaryReferencePrefix
	}
	ref := new(big.Int).Lsh(big.NewInt(prefix), 240)
	return ref.Or(ref, new(big.Int).SetUint64(uint64(slot)))
}

// DescriptorKind tags an AmountDescriptor.
type DescriptorKind string

const (
	KindLiteral   DescriptorKind = "literal"
	KindReference DescriptorKind = "reference"
)

// AmountDescriptor is either a literal value known at build time or a
// reference to a slot produced by an earlier node.
type AmountDescriptor struct {
	kind  DescriptorKind
	value *big.Int
	slot  SlotKey
}

// Literal describes a known amount. v is copied.
func Literal(v *big.Int) AmountDescriptor {
	if v == nil {
		v = new(big.Int)
	}
	return AmountDescriptor{kind: KindLiteral, value: new(big.Int).Set(v)}
}

// Reference describes the value that slot will hold.
func Reference(slot SlotKey) AmountDescriptor {
	return AmountDescriptor{kind: KindReference, slot: slot}
}

func (d AmountDescriptor) Kind() DescriptorKind {
	return d.kind
}

func (d AmountDescriptor) IsLiteral() bool {
	return d.kind == KindLiteral
}

func (d AmountDescriptor) IsReference() bool {
	return d.kind == KindReference
}

// Value returns a copy of the literal value, zero for references.
func (d AmountDescriptor) Value() *big.Int {
	if d.value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(d.value)
}

// Slot returns the referenced slot, zero for literals.
func (d AmountDescriptor) Slot() SlotKey {
	return d.slot
}

type descriptorJSON struct {
	Kind  DescriptorKind `json:"kind"`
	Value string         `json:"value,omitempty"`
	Slot  *SlotKey       `json:"slot,omitempty"`
}

func (d AmountDescriptor) MarshalJSON() ([]byte, error) {
	switch d.kind {
	case KindLiteral:
		return json.Marshal(descriptorJSON{Kind: KindLiteral, Value: d.Value().String()})
	case KindReference:
		slot := d.slot
		return json.Marshal(descriptorJSON{Kind: KindReference, Slot: &slot})
	default:
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "empty amount descriptor")
	}
}

func (d *AmountDescriptor) UnmarshalJSON(data []byte) error {
	var v descriptorJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(err, "json.Unmarshal")
	}
	switch v.Kind {
	case KindLiteral:
		raw, ok := new(big.Int).SetString(v.Value, 10)
		if !ok || raw.Sign() < 0 {
			return errors.Wrapf(apperrors.ErrInvalidArgument, "bad literal %q", v.Value)
		}
		*d = Literal(raw)
	case KindReference:
		if v.Slot == nil {
			return errors.Wrap(apperrors.ErrInvalidArgument, "reference without slot")
		}
		*d = Reference(*v.Slot)
	default:
		return errors.Wrapf(apperrors.ErrInvalidArgument, "unknown descriptor kind %q", v.Kind)
	}
	return nil
}

package builtins

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/reusee/hintvm/memories"
)

const (
	SignatureName             = "ecdsa"
	signatureCellsPerInstance = 5
	signatureInputCells       = 2
)

// SignatureRunner checks that every (pubkey, message) pair written to its
// segment carries a registered valid ECDSA signature.
type SignatureRunner struct {
	included              bool
	ratio                 int
	instancesPerComponent int
	base                  int
	stopPtr               *int
	signatures            map[memories.Address]*ecdsa.Signature
}

var _ Runner = new(SignatureRunner)

func NewSignatureRunner(ratio int, instancesPerComponent int, included bool) *SignatureRunner {
	return &SignatureRunner{
		included:              included,
		ratio:                 ratio,
		instancesPerComponent: instancesPerComponent,
		signatures:            make(map[memories.Address]*ecdsa.Signature),
	}
}

func (s *SignatureRunner) Name() string {
	return SignatureName
}

func (s *SignatureRunner) Base() int {
	return s.base
}

func (s *SignatureRunner) Included() bool {
	return s.included
}

func (s *SignatureRunner) Ratio() int {
	return s.ratio
}

func (s *SignatureRunner) CellsPerInstance() int {
	return signatureCellsPerInstance
}

func (s *SignatureRunner) InputCells() int {
	return signatureInputCells
}

// AddSignature registers a signature for the public key cell at addr.
// The first registration for an address wins.
func (s *SignatureRunner) AddSignature(addr memories.Address, sig *ecdsa.Signature) {
	if _, ok := s.signatures[addr]; ok {
		return
	}
	s.signatures[addr] = sig
}

// AddSignatureRS registers a signature given as its (r, s) components.
func (s *SignatureRunner) AddSignatureRS(addr memories.Address, r, sv *big.Int) error {
	var rs, ss btcec.ModNScalar
	if r.Sign() <= 0 || sv.Sign() <= 0 || len(r.Bytes()) > 32 || len(sv.Bytes()) > 32 {
		return fmt.Errorf("%w: r=%v s=%v", ErrMalformedSignature, r, sv)
	}
	if rs.SetByteSlice(r.Bytes()) || ss.SetByteSlice(sv.Bytes()) {
		return fmt.Errorf("%w: r=%v s=%v", ErrMalformedSignature, r, sv)
	}
	s.AddSignature(addr, ecdsa.NewSignature(&rs, &ss))
	return nil
}

func (s *SignatureRunner) InitializeSegments(segments *memories.Segments) {
	s.base = segments.Add().Segment
}

func (s *SignatureRunner) InitialStack() []memories.Value {
	if !s.included {
		return nil
	}
	return []memories.Value{
		memories.Address{Segment: s.base},
	}
}

func (s *SignatureRunner) AddValidationRule(mem *memories.Memory) {
	mem.AddValidationRule(s.base, s)
}

// Validate verifies the instance addr belongs to once both of its input cells are present.
func (s *SignatureRunner) Validate(mem *memories.Memory, addr memories.Address) ([]memories.Address, error) {
	var pubkeyAddr, msgAddr memories.Address
	switch addr.Offset % signatureCellsPerInstance {
	case 0:
		if _, ok := mem.Get(addr.Add(1)); !ok {
			return nil, nil
		}
		pubkeyAddr = addr
		msgAddr = addr.Add(1)
	case 1:
		prev, err := addr.Sub(1)
		if err != nil {
			return nil, nil
		}
		if _, ok := mem.Get(prev); !ok {
			return nil, nil
		}
		pubkeyAddr = prev
		msgAddr = addr
	default:
		return nil, nil
	}

	msg, err := mem.GetFelt(msgAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedAddress, err)
	}
	pubkey, err := mem.GetFelt(pubkeyAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedAddress, err)
	}

	key, err := btcec.ParsePubKey(pubkey.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w at %v: %w", ErrMalformedKey, pubkeyAddr, err)
	}

	sig, ok := s.signatures[pubkeyAddr]
	if !ok {
		return nil, fmt.Errorf("%w at %v", ErrMissingSignature, pubkeyAddr)
	}

	if !sig.Verify(chainhash.HashB(msg.Bytes()), key) {
		return nil, fmt.Errorf("%w at %v", ErrSignatureMismatch, pubkeyAddr)
	}

	return []memories.Address{pubkeyAddr, msgAddr}, nil
}

func (s *SignatureRunner) GetAllocatedMemoryUnits(currentStep int) (int, error) {
	if s.ratio <= 0 {
		return 0, ErrZeroRatio
	}
	return signatureCellsPerInstance * (currentStep / s.ratio), nil
}

func (s *SignatureRunner) GetUsedCells(segments *memories.Segments) (int, error) {
	return segments.UsedSize(s.base)
}

func (s *SignatureRunner) GetUsedInstances(segments *memories.Segments) (int, error) {
	used, err := s.GetUsedCells(segments)
	if err != nil {
		return 0, err
	}
	return ceilDiv(used, signatureCellsPerInstance), nil
}

func (s *SignatureRunner) GetUsedCellsAndAllocatedSize(segments *memories.Segments, currentStep int) (int, int, error) {
	if s.ratio <= 0 {
		return 0, 0, ErrZeroRatio
	}
	minStep := s.ratio * s.instancesPerComponent
	if currentStep < minStep {
		return 0, 0, fmt.Errorf("%w: %s needs %d steps, got %d", ErrInsufficientAllocatedCells, SignatureName, minStep, currentStep)
	}
	used, err := s.GetUsedCells(segments)
	if err != nil {
		return 0, 0, err
	}
	size := signatureCellsPerInstance * ceilDiv(currentStep, s.ratio)
	return used, size, nil
}

func (s *SignatureRunner) GetMemorySegmentAddresses() SegmentAddresses {
	return SegmentAddresses{
		Name:    SignatureName,
		Base:    s.base,
		StopPtr: s.stopPtr,
	}
}

// FinalStack consumes the stop pointer preceding pointer when the builtin is included.
func (s *SignatureRunner) FinalStack(segments *memories.Segments, pointer memories.Address) (memories.Address, int, error) {
	if !s.included {
		stop := 0
		s.stopPtr = &stop
		return pointer, stop, nil
	}

	prev, err := pointer.Sub(1)
	if err != nil {
		return memories.Address{}, 0, fmt.Errorf("%w: %w", ErrFinalStack, err)
	}
	stopPointer, err := segments.Memory.GetAddress(prev)
	if err != nil {
		return memories.Address{}, 0, fmt.Errorf("%w: %w", ErrFinalStack, err)
	}
	if stopPointer.Segment != s.base {
		return memories.Address{}, 0, fmt.Errorf("%w: %s stop pointer %v not in segment %d", ErrInvalidStopPointer, SignatureName, stopPointer, s.base)
	}
	instances, err := s.GetUsedInstances(segments)
	if err != nil {
		return memories.Address{}, 0, fmt.Errorf("%w: %w", ErrFinalStack, err)
	}
	if used := instances * signatureCellsPerInstance; stopPointer.Offset != used {
		return memories.Address{}, 0, fmt.Errorf("%w: %s stop pointer %v, expected offset %d", ErrInvalidStopPointer, SignatureName, stopPointer, used)
	}

	stop := stopPointer.Offset
	s.stopPtr = &stop
	return prev, stop, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

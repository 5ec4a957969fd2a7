package snapshot

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	dtcose "github.com/datatrails/go-datatrails-common/cose"
	"github.com/veraison/go-cose"
)

// Sealer produces a signature over a captured layout snapshot. The signature
// commits a code generator and a runtime to one layout: either side can
// rebuild the tree from the shared declarations and verify it matches the
// sealed capture before trusting addresses computed against it.
type Sealer struct {
	issuer string
	codec  Codec
}

func NewSealer(issuer string, codec Codec) Sealer {
	sl := Sealer{
		issuer: issuer,
		codec:  codec,
	}
	return sl
}

// Seal1 signs the snapshot as a COSE Sign1 message and returns its encoding.
func (sl Sealer) Seal1(coseSigner cose.Signer, keyIdentifier string, publicKey *ecdsa.PublicKey, subject string, s *Snapshot, external []byte) ([]byte, error) {
	payload, err := sl.codec.Encode(s)
	if err != nil {
		return nil, err
	}

	coseHeaders := cose.Headers{
		Protected: cose.ProtectedHeader{
			dtcose.HeaderLabelCWTClaims: dtcose.NewCNFClaim(
				sl.issuer, subject, keyIdentifier, coseSigner.Algorithm(), *publicKey),
		},
	}

	msg := cose.Sign1Message{
		Headers: coseHeaders,
		Payload: payload,
	}
	err = msg.Sign(rand.Reader, external, coseSigner)
	if err != nil {
		return nil, err
	}

	// We purposefully detach the node table so that verifiers are forced to
	// derive it from their own build of the declarations.
	detached := *s
	detached.Nodes = nil
	payload, err = sl.codec.Encode(&detached)
	if err != nil {
		return nil, err
	}
	msg.Payload = payload

	return msg.MarshalCBOR()
}

type publicKeyProvider interface {
	PublicKey() (crypto.PublicKey, cose.Algorithm, error)
}

// DecodeSealed decodes the snapshot carried by a sealed message. The node
// table was detached at sealing, so the returned snapshot does not verify
// until the table is restored, see VerifySealedSnapshot.
func DecodeSealed(
	codec Codec, msg []byte,
) (*dtcose.CoseSign1Message, *Snapshot, error) {
	signed, err := dtcose.NewCoseSign1MessageFromCBOR(msg, newSealDecOptions()...)
	if err != nil {
		return nil, nil, err
	}

	var unverified Snapshot
	err = codec.cbor.UnmarshalInto(signed.Payload, &unverified)
	if err != nil {
		return nil, nil, err
	}
	return signed, &unverified, nil
}

// VerifySealedSnapshot applies the provided snapshot to the sealed message
// and verifies the result.
//
// Verification is a 3 step process:
//  1. Use DecodeSealed to obtain the header carried by the sealed message.
//     The snapshot will not verify as the node table was removed after
//     sealing.
//  2. Build the layout tree from the same declarations the sealed capture
//     was built from, freeze it, and Build the node table.
//  3. Set the derived table on the decoded snapshot and call this function
//     to complete the verification.
func VerifySealedSnapshot(
	codec Codec, keyProvider publicKeyProvider, signed *dtcose.CoseSign1Message, unverified *Snapshot, external []byte) error {

	var err error
	signed.Payload, err = codec.Encode(unverified)
	if err != nil {
		return err
	}
	return signed.VerifyWithProvider(keyProvider, external)
}

func newSealDecOptions() []dtcose.SignOption {
	return []dtcose.SignOption{dtcose.WithDecOptions(dtcbor.NewDeterministicDecOpts())}
}

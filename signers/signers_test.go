package signers

import (
	"context"
	"crypto/ed25519"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerr "github.com/x402-foundation/walletcore/errors"
	"github.com/x402-foundation/walletcore/internal/hashing"
	"github.com/x402-foundation/walletcore/internal/keys"
)

func testSeed(t *testing.T) keys.Seed {
	t.Helper()
	seed, err := keys.MnemonicToSeed("test test test test test test test test test test test junk", "")
	require.NoError(t, err)
	return seed
}

func TestLocalSignerPublicKeyIsDeterministic(t *testing.T) {
	s := NewLocalSigner(testSeed(t))
	ctx := context.Background()
	ref := KeyRef{Curve: CurveSecp256k1ECDSA, Path: "m/44'/60'/0'/0/0"}

	pub1, err := s.PublicKey(ctx, ref)
	require.NoError(t, err)
	pub2, err := s.PublicKey(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, pub1, pub2)
	assert.NotEmpty(t, pub1)
}

func TestLocalSignerDifferentPathsDifferentKeys(t *testing.T) {
	s := NewLocalSigner(testSeed(t))
	ctx := context.Background()

	pubA, err := s.PublicKey(ctx, KeyRef{Curve: CurveSecp256k1ECDSA, Path: "m/44'/60'/0'/0/0"})
	require.NoError(t, err)
	pubB, err := s.PublicKey(ctx, KeyRef{Curve: CurveSecp256k1ECDSA, Path: "m/44'/60'/0'/0/1"})
	require.NoError(t, err)
	assert.NotEqual(t, pubA, pubB)
}

func TestLocalSignerEcdsaSignIsDeterministicAndLowS(t *testing.T) {
	s := NewLocalSigner(testSeed(t))
	ctx := context.Background()
	ref := KeyRef{Curve: CurveSecp256k1ECDSA, Path: "m/44'/60'/0'/0/0"}
	msg := hashing.SHA256([]byte("hello wallet"))

	sig1, err := s.Sign(ctx, ref, msg[:])
	require.NoError(t, err)
	sig2, err := s.Sign(ctx, ref, msg[:])
	require.NoError(t, err)

	require.Len(t, sig1.Bytes, 65)
	assert.Equal(t, sig1, sig2)

	sVal := new(big.Int).SetBytes(sig1.Bytes[32:64])
	assert.True(t, hashing.IsLowS(sVal))
}

func TestLocalSignerSchnorrSignProducesSixtyFourBytes(t *testing.T) {
	s := NewLocalSigner(testSeed(t))
	ctx := context.Background()
	ref := KeyRef{Curve: CurveSecp256k1Schnorr, Path: "m/86'/0'/0'/0/0"}
	msg := hashing.SHA256([]byte("taproot spend"))

	sig, err := s.Sign(ctx, ref, msg[:])
	require.NoError(t, err)
	assert.Equal(t, CurveSecp256k1Schnorr, sig.Curve)
	assert.Len(t, sig.Bytes, 64)
}

func TestLocalSignerEd25519SignVerifies(t *testing.T) {
	s := NewLocalSigner(testSeed(t))
	ctx := context.Background()
	ref := KeyRef{Curve: CurveEd25519, Path: "m/44'/501'/0'/0'"}
	msg := []byte("solana message bytes")

	pub, err := s.PublicKey(ctx, ref)
	require.NoError(t, err)

	sig, err := s.Sign(ctx, ref, msg)
	require.NoError(t, err)
	require.Len(t, sig.Bytes, 64)
	assert.True(t, ed25519.Verify(ed25519.PublicKey(pub), msg, sig.Bytes))
}

func TestLocalSignerCapabilitiesListsAllThreeCurves(t *testing.T) {
	s := NewLocalSigner(testSeed(t))
	caps := s.Capabilities()
	assert.Contains(t, caps, CurveSecp256k1ECDSA)
	assert.Contains(t, caps, CurveSecp256k1Schnorr)
	assert.Contains(t, caps, CurveEd25519)
}

func TestLocalSignerRejectsUnknownCurve(t *testing.T) {
	s := NewLocalSigner(testSeed(t))
	_, err := s.PublicKey(context.Background(), KeyRef{Curve: Curve("bls12-381"), Path: "m/0"})
	require.Error(t, err)
	var ce *coreerr.CoreError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, coreerr.KindSigner, ce.Kind)
}

// mockHardwareTransport lets tests drive HardwareSigner's three outcomes:
// success, explicit user rejection, and an unclassified transport error.
type mockHardwareTransport struct {
	pubKey   []byte
	sig      []byte
	signErr  error
	pubErr   error
}

func (m *mockHardwareTransport) GetPublicKey(ctx context.Context, ref KeyRef) ([]byte, error) {
	if m.pubErr != nil {
		return nil, m.pubErr
	}
	return m.pubKey, nil
}

func (m *mockHardwareTransport) RequestSignature(ctx context.Context, ref KeyRef, preimage []byte) ([]byte, error) {
	if m.signErr != nil {
		return nil, m.signErr
	}
	return m.sig, nil
}

func TestHardwareSignerHappyPath(t *testing.T) {
	transport := &mockHardwareTransport{pubKey: []byte{0x01, 0x02}, sig: []byte{0x03, 0x04}}
	s := NewHardwareSigner(transport, []Curve{CurveSecp256k1ECDSA})

	pub, err := s.PublicKey(context.Background(), KeyRef{Curve: CurveSecp256k1ECDSA, Path: "m/0"})
	require.NoError(t, err)
	assert.Equal(t, transport.pubKey, pub)

	sig, err := s.Sign(context.Background(), KeyRef{Curve: CurveSecp256k1ECDSA, Path: "m/0"}, []byte{0xaa})
	require.NoError(t, err)
	assert.Equal(t, transport.sig, sig.Bytes)
}

func TestHardwareSignerPropagatesUserRejection(t *testing.T) {
	rejected := coreerr.Signer(coreerr.ReasonUserRejected, "btc", errors.New("declined on device"))
	transport := &mockHardwareTransport{signErr: rejected}
	s := NewHardwareSigner(transport, []Curve{CurveSecp256k1ECDSA})

	_, err := s.Sign(context.Background(), KeyRef{Curve: CurveSecp256k1ECDSA, Path: "m/0"}, []byte{0xaa})
	require.Error(t, err)
	var ce *coreerr.CoreError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, coreerr.ReasonUserRejected, ce.Message)
}

func TestHardwareSignerClassifiesTimeoutOnContextCancel(t *testing.T) {
	transport := &mockHardwareTransport{signErr: errors.New("connection reset")}
	s := NewHardwareSigner(transport, []Curve{CurveSecp256k1ECDSA})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Sign(ctx, KeyRef{Curve: CurveSecp256k1ECDSA, Path: "m/0"}, []byte{0xaa})
	require.Error(t, err)
	var ce *coreerr.CoreError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, coreerr.ReasonCommunicationTimeout, ce.Message)
}

type mockRemoteSession struct {
	pubKey  []byte
	sig     []byte
	signErr error
}

func (m *mockRemoteSession) FetchPublicKey(ctx context.Context, ref KeyRef) ([]byte, error) {
	return m.pubKey, nil
}

func (m *mockRemoteSession) RequestSignature(ctx context.Context, ref KeyRef, preimage []byte) ([]byte, error) {
	if m.signErr != nil {
		return nil, m.signErr
	}
	return m.sig, nil
}

func TestRemoteSignerHappyPath(t *testing.T) {
	session := &mockRemoteSession{pubKey: []byte{0x05}, sig: []byte{0x06, 0x07}}
	s := NewRemoteSigner(session, []Curve{CurveEd25519})

	sig, err := s.Sign(context.Background(), KeyRef{Curve: CurveEd25519, Path: "m/0'"}, []byte{0xbb})
	require.NoError(t, err)
	assert.Equal(t, session.sig, sig.Bytes)
}

func TestRemoteSignerClassifiesBackendErrorWithoutCanceledContext(t *testing.T) {
	session := &mockRemoteSession{signErr: errors.New("session dropped")}
	s := NewRemoteSigner(session, []Curve{CurveEd25519})

	_, err := s.Sign(context.Background(), KeyRef{Curve: CurveEd25519, Path: "m/0'"}, []byte{0xbb})
	require.Error(t, err)
	var ce *coreerr.CoreError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, coreerr.ReasonBackend, ce.Message)
}

package aesp

import (
	"bytes"
	"errors"
	"testing"
)

// NIST SP 800-38D Test Case 1: empty plaintext, empty AAD, all-zero
// 128-bit key, all-zero 96-bit nonce.
func TestGCMNISTTestCase1(t *testing.T) {
	key, err := NewKey(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	c := NewCipher(key)

	nonce := make([]byte, 12)
	cipherText, err := c.coreCTR(nil, nonce, 2)
	if err != nil {
		t.Fatalf("coreCTR: %v", err)
	}
	tag, err := c.gmac(cipherText, nil, nonce)
	if err != nil {
		t.Fatalf("gmac: %v", err)
	}

	wantTag := mustHexBytes(t, "58e2fccefa7e3061367f1d57a4e7455a")
	if !bytes.Equal(tag, wantTag) {
		t.Errorf("tag = % x, want % x", tag, wantTag)
	}
}

// NIST SP 800-38D Test Case 2: all-zero 128-bit key, all-zero 96-bit
// nonce, 16 zero bytes of plaintext and no AAD.
func TestGCMNISTTestCase2(t *testing.T) {
	key, err := NewKey(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	c := NewCipher(key)

	nonce := make([]byte, 12)
	plain := make([]byte, 16)

	cipherText, err := c.coreCTR(plain, nonce, 2)
	if err != nil {
		t.Fatalf("coreCTR: %v", err)
	}
	wantCipherText := mustHexBytes(t, "0388dace60b6a392f328c2b971b2fe78")
	if !bytes.Equal(cipherText, wantCipherText) {
		t.Errorf("ciphertext = % x, want % x", cipherText, wantCipherText)
	}

	tag, err := c.gmac(cipherText, nil, nonce)
	if err != nil {
		t.Fatalf("gmac: %v", err)
	}
	wantTag := mustHexBytes(t, "ab6e47d42cec13bdf53a67b21257bddf")
	if !bytes.Equal(tag, wantTag) {
		t.Errorf("tag = % x, want % x", tag, wantTag)
	}
}

func TestGCMRoundTrip(t *testing.T) {
	c := testCipher(t)

	for _, n := range []int{0, 1, 15, 16, 17, 31, 32, 1 << 20} {
		plain := make([]byte, n)
		for i := range plain {
			plain[i] = byte(i * 3)
		}
		aad := []byte("metadata that travels alongside the ciphertext")

		blob, err := c.EncryptGCM(plain, aad)
		if err != nil {
			t.Fatalf("EncryptGCM(%d bytes): %v", n, err)
		}

		gotPlain, gotAAD, err := c.DecryptGCM(blob)
		if err != nil {
			t.Fatalf("DecryptGCM(%d bytes): %v", n, err)
		}
		if !bytes.Equal(gotPlain, plain) {
			t.Errorf("round trip plaintext mismatch for %d bytes", n)
		}
		if !bytes.Equal(gotAAD, aad) {
			t.Errorf("round trip AAD mismatch for %d bytes: got %q want %q", n, gotAAD, aad)
		}
	}
}

func TestGCMNilAADRoundTrip(t *testing.T) {
	c := testCipher(t)
	plain := []byte("no associated data here")

	blob, err := c.EncryptGCM(plain, nil)
	if err != nil {
		t.Fatalf("EncryptGCM: %v", err)
	}

	gotPlain, gotAAD, err := c.DecryptGCM(blob)
	if err != nil {
		t.Fatalf("DecryptGCM: %v", err)
	}
	if !bytes.Equal(gotPlain, plain) {
		t.Errorf("plaintext mismatch: got %q want %q", gotPlain, plain)
	}
	if len(gotAAD) != 0 {
		t.Errorf("AAD = %q, want empty", gotAAD)
	}
}

func TestGCMDetectsTamperedCiphertext(t *testing.T) {
	c := testCipher(t)
	blob, err := c.EncryptGCM([]byte("authenticated payload"), []byte("aad"))
	if err != nil {
		t.Fatalf("EncryptGCM: %v", err)
	}

	blob[len(blob)-1] ^= 0x01

	if _, _, err := c.DecryptGCM(blob); !errors.Is(err, ErrInvalidTag) {
		t.Errorf("DecryptGCM(tampered ciphertext) = %v, want ErrInvalidTag", err)
	}
}

func TestGCMDetectsTamperedAAD(t *testing.T) {
	c := testCipher(t)
	blob, err := c.EncryptGCM([]byte("payload"), []byte("original-aad"))
	if err != nil {
		t.Fatalf("EncryptGCM: %v", err)
	}

	// aad begins right after the 12-byte nonce + 16-byte tag + 4-byte
	// length header.
	blob[gcmHeaderSize] ^= 0x01

	if _, _, err := c.DecryptGCM(blob); !errors.Is(err, ErrInvalidTag) {
		t.Errorf("DecryptGCM(tampered AAD) = %v, want ErrInvalidTag", err)
	}
}

func TestGCMDetectsTamperedTag(t *testing.T) {
	c := testCipher(t)
	blob, err := c.EncryptGCM([]byte("payload"), nil)
	if err != nil {
		t.Fatalf("EncryptGCM: %v", err)
	}

	blob[12] ^= 0x01 // first byte of the tag field

	if _, _, err := c.DecryptGCM(blob); !errors.Is(err, ErrInvalidTag) {
		t.Errorf("DecryptGCM(tampered tag) = %v, want ErrInvalidTag", err)
	}
}

func TestDecryptGCMRejectsShortBlob(t *testing.T) {
	c := testCipher(t)
	if _, _, err := c.DecryptGCM(make([]byte, gcmHeaderSize-1)); !errors.Is(err, ErrInvalidCiphertext) {
		t.Errorf("DecryptGCM(short blob) = %v, want ErrInvalidCiphertext", err)
	}
}

func TestConstantTimeEqual(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{1, 2, 3, 4}
	c := []byte{1, 2, 3, 5}
	d := []byte{1, 2, 3}

	if !constantTimeEqual(a, b) {
		t.Error("constantTimeEqual(equal slices) = false")
	}
	if constantTimeEqual(a, c) {
		t.Error("constantTimeEqual(differing slices) = true")
	}
	if constantTimeEqual(a, d) {
		t.Error("constantTimeEqual(different lengths) = true")
	}
}

func TestPadTo16(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 16},
		{16, 16},
		{17, 32},
	}
	for _, tc := range cases {
		got := padTo16(make([]byte, tc.n))
		if len(got) != tc.want {
			t.Errorf("padTo16(%d bytes) length = %d, want %d", tc.n, len(got), tc.want)
		}
	}
}

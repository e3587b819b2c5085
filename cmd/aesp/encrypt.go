package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tobygrice/aesp"
)

var (
	encryptInput   string
	encryptOutput  string
	encryptMode    string
	encryptAAD     string
	encryptGenKey  bool
	encryptKeySize int
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a file under ecb, ctr, or gcm (default gcm)",
	RunE:  runEncrypt,
}

func init() {
	encryptCmd.Flags().StringVar(&encryptInput, "input", "", "Path to the plaintext file")
	encryptCmd.Flags().StringVar(&encryptOutput, "output", "", "Path to write the ciphertext")
	encryptCmd.Flags().StringVar(&encryptMode, "mode", "gcm", "Mode of operation: ecb, ctr, or gcm")
	encryptCmd.Flags().StringVar(&encryptAAD, "aad", "", "Additional authenticated data, hex-encoded (gcm only)")
	encryptCmd.Flags().BoolVar(&encryptGenKey, "gen-key", false, "Generate a fresh random key and write it to --key instead of reading one")
	encryptCmd.Flags().IntVar(&encryptKeySize, "key-size", 256, "Key size in bits for --gen-key: 128, 192, or 256")
	_ = encryptCmd.MarkFlagRequired("input")
	_ = encryptCmd.MarkFlagRequired("output")
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	debugFromFlags(cmd)
	log := requestLogger()

	plainText, err := os.ReadFile(encryptInput)
	if err != nil {
		return fmt.Errorf("reading %s: %w", encryptInput, err)
	}

	var cipher *aesp.Cipher
	if encryptGenKey {
		cipher, err = generateAndLoadCipher(encryptKeySize)
	} else {
		cipher, err = loadCipher()
	}
	if err != nil {
		return err
	}

	var aad []byte
	if encryptAAD != "" {
		aad, err = hex.DecodeString(encryptAAD)
		if err != nil {
			return fmt.Errorf("decoding --aad: %w", err)
		}
	}

	var cipherText []byte
	switch encryptMode {
	case "ecb":
		cipherText = cipher.EncryptECB(plainText)
	case "ctr":
		cipherText, err = cipher.EncryptCTR(plainText)
	case "gcm":
		cipherText, err = cipher.EncryptGCM(plainText, aad)
	default:
		return fmt.Errorf("unknown mode %q: want ecb, ctr, or gcm", encryptMode)
	}
	if err != nil {
		return fmt.Errorf("encrypting: %w", err)
	}

	if err := os.WriteFile(encryptOutput, cipherText, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", encryptOutput, err)
	}

	log.Info("encrypted file", "mode", encryptMode, "input", encryptInput, "output", encryptOutput, "bytes", len(plainText))
	return nil
}

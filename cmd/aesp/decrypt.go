package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	decryptInput  string
	decryptOutput string
	decryptMode   string
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt a file under ecb, ctr, or gcm (default gcm)",
	RunE:  runDecrypt,
}

func init() {
	decryptCmd.Flags().StringVar(&decryptInput, "input", "", "Path to the ciphertext file")
	decryptCmd.Flags().StringVar(&decryptOutput, "output", "", "Path to write the recovered plaintext")
	decryptCmd.Flags().StringVar(&decryptMode, "mode", "gcm", "Mode of operation: ecb, ctr, or gcm")
	_ = decryptCmd.MarkFlagRequired("input")
	_ = decryptCmd.MarkFlagRequired("output")
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	debugFromFlags(cmd)
	log := requestLogger()

	cipherText, err := os.ReadFile(decryptInput)
	if err != nil {
		return fmt.Errorf("reading %s: %w", decryptInput, err)
	}

	cipher, err := loadCipher()
	if err != nil {
		return err
	}

	var plainText, aad []byte
	switch decryptMode {
	case "ecb":
		plainText, err = cipher.DecryptECB(cipherText)
	case "ctr":
		plainText, err = cipher.DecryptCTR(cipherText)
	case "gcm":
		plainText, aad, err = cipher.DecryptGCM(cipherText)
	default:
		return fmt.Errorf("unknown mode %q: want ecb, ctr, or gcm", decryptMode)
	}
	if err != nil {
		return fmt.Errorf("decrypting: %w", err)
	}

	if err := os.WriteFile(decryptOutput, plainText, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", decryptOutput, err)
	}

	if decryptMode == "gcm" && len(aad) > 0 {
		fmt.Fprintln(os.Stdout, hex.EncodeToString(aad))
	}

	log.Info("decrypted file", "mode", decryptMode, "input", decryptInput, "output", decryptOutput, "bytes", len(plainText))
	return nil
}

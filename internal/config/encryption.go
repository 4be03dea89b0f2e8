package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/crypto/pbkdf2"
	"gopkg.in/yaml.v3"
)

// EncryptPassword encrypts a plaintext tracker password with AES-256-GCM.
// The key is derived from machine-local information, so the blob is only
// usable on the machine that produced it.
func EncryptPassword(password string) (EncryptedData, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return EncryptedData{}, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return EncryptedData{}, fmt.Errorf("failed to generate nonce: %w", err)
	}

	gcm, err := newGCM(salt)
	if err != nil {
		return EncryptedData{}, err
	}

	encrypted := gcm.Seal(nil, nonce, []byte(password), nil)

	return EncryptedData{
		Encrypted: base64.StdEncoding.EncodeToString(encrypted),
		Salt:      base64.StdEncoding.EncodeToString(salt),
		Nonce:     base64.StdEncoding.EncodeToString(nonce),
		Algorithm: EncryptionAlgorithm,
	}, nil
}

// EncryptPasswordYAML encrypts a password and renders it as the
// encrypted_password block to paste into the lubelogger config section.
func EncryptPasswordYAML(password string) (string, error) {
	data, err := EncryptPassword(password)
	if err != nil {
		return "", err
	}

	blob, err := yaml.Marshal(struct {
		EncryptedPassword EncryptedData `yaml:"encrypted_password"`
	}{data})
	if err != nil {
		return "", fmt.Errorf("failed to render encrypted password: %w", err)
	}

	return string(blob), nil
}

// DecryptPassword decrypts an encrypted tracker password.
func DecryptPassword(data EncryptedData) (string, error) {
	if err := validateEncryptedData(data); err != nil {
		return "", fmt.Errorf("invalid encrypted data: %w", err)
	}

	encrypted, err := base64.StdEncoding.DecodeString(data.Encrypted)
	if err != nil {
		return "", fmt.Errorf("failed to decode encrypted data: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(data.Salt)
	if err != nil {
		return "", fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(data.Nonce)
	if err != nil {
		return "", fmt.Errorf("failed to decode nonce: %w", err)
	}

	gcm, err := newGCM(salt)
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, nonce, encrypted, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt password: %w", err)
	}

	return string(plaintext), nil
}

// newGCM derives the encryption key for the given salt and returns the AEAD.
func newGCM(salt []byte) (cipher.AEAD, error) {
	secret, err := machineSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to get machine secret: %w", err)
	}

	key := pbkdf2.Key([]byte(secret), salt, PBKDF2Iterations, 32, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return gcm, nil
}

// machineSecret builds a machine-specific secret for key derivation, tying
// the encrypted password to the user and machine that created it.
func machineSecret() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return fmt.Sprintf("fuelio-lubelogger-sync:%s", home), nil
}

// validateEncryptedData checks that an encrypted blob is structurally sound.
func validateEncryptedData(data EncryptedData) error {
	if data.Algorithm != EncryptionAlgorithm {
		return fmt.Errorf("unsupported encryption algorithm: %s", data.Algorithm)
	}

	if data.Encrypted == "" {
		return fmt.Errorf("encrypted data is empty")
	}

	salt, err := base64.StdEncoding.DecodeString(data.Salt)
	if err != nil {
		return fmt.Errorf("invalid base64 encoding for salt: %w", err)
	}
	if len(salt) != SaltSize {
		return fmt.Errorf("invalid salt size: expected %d, got %d", SaltSize, len(salt))
	}

	nonce, err := base64.StdEncoding.DecodeString(data.Nonce)
	if err != nil {
		return fmt.Errorf("invalid base64 encoding for nonce: %w", err)
	}
	if len(nonce) != NonceSize {
		return fmt.Errorf("invalid nonce size: expected %d, got %d", NonceSize, len(nonce))
	}

	if _, err := base64.StdEncoding.DecodeString(data.Encrypted); err != nil {
		return fmt.Errorf("invalid base64 encoding for encrypted data: %w", err)
	}

	return nil
}

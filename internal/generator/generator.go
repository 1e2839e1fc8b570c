// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Ashy Pass Authors

// Package generator produces random passwords, passphrases and PIN codes
// from crypto/rand, and rates password strength.
package generator

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/nbutton23/zxcvbn-go"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128

	MinPINLength = 4
	MaxPINLength = 12

	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"

	// defaultSymbols is the symbol set used when the config supplies none.
	defaultSymbols = "!@#$%&*()-_=+[]{}|;:,.<>?/"

	// ambiguousChars are glyphs that read alike in common fonts and are
	// stripped when the config asks for unambiguous output.
	ambiguousChars = "il1Lo0O"
)

// Config describes one password generation request.
type Config struct {
	Length           int
	UseLowercase     bool
	UseUppercase     bool
	UseDigits        bool
	UseSymbols       bool
	ExcludeAmbiguous bool

	// CustomSymbols replaces the default symbol set when non-empty.
	CustomSymbols string
}

// DefaultConfig returns the generation settings used when the caller has no
// preference: 16 characters, all classes on, ambiguous glyphs excluded.
func DefaultConfig() Config {
	return Config{
		Length:           16,
		UseLowercase:     true,
		UseUppercase:     true,
		UseDigits:        true,
		UseSymbols:       true,
		ExcludeAmbiguous: true,
	}
}

// GeneratePassword produces a random password per cfg. After the initial
// draw, a repair pass guarantees at least one character from every enabled
// class, so short passwords cannot accidentally miss a requested class.
func GeneratePassword(cfg Config) (string, error) {
	if cfg.Length < MinPasswordLength || cfg.Length > MaxPasswordLength {
		return "", ErrInvalidLength
	}

	var charset strings.Builder
	if cfg.UseLowercase {
		charset.WriteString(lowercaseChars)
	}
	if cfg.UseUppercase {
		charset.WriteString(uppercaseChars)
	}
	if cfg.UseDigits {
		charset.WriteString(digitChars)
	}
	if cfg.UseSymbols {
		charset.WriteString(cfg.symbols())
	}

	chars := charset.String()
	if cfg.ExcludeAmbiguous {
		chars = stripAmbiguous(chars)
	}
	if chars == "" {
		return "", ErrEmptyCharset
	}

	password := make([]byte, cfg.Length)
	for i := range password {
		c, err := randomChar(chars)
		if err != nil {
			return "", err
		}
		password[i] = c
	}

	if err := ensureComplexity(password, cfg); err != nil {
		return "", err
	}

	return string(password), nil
}

// ensureComplexity overwrites one random position per missing character
// class. The repair draws from the class's own alphabet, filtered the same
// way as the main charset.
func ensureComplexity(password []byte, cfg Config) error {
	classes := []struct {
		enabled  bool
		alphabet string
	}{
		{cfg.UseLowercase, lowercaseChars},
		{cfg.UseUppercase, uppercaseChars},
		{cfg.UseDigits, digitChars},
		{cfg.UseSymbols, cfg.symbols()},
	}

	for _, class := range classes {
		alphabet := class.alphabet
		if cfg.ExcludeAmbiguous {
			alphabet = stripAmbiguous(alphabet)
		}
		if !class.enabled || alphabet == "" || containsAny(password, alphabet) {
			continue
		}

		pos, err := randomInt(len(password))
		if err != nil {
			return err
		}
		c, err := randomChar(alphabet)
		if err != nil {
			return err
		}
		password[pos] = c
	}

	return nil
}

func (c Config) symbols() string {
	if c.CustomSymbols != "" {
		return c.CustomSymbols
	}
	return defaultSymbols
}

// GeneratePassphrase joins numWords random dictionary words with separator.
// When capitalize is set each word is title-cased; when addNumber is set a
// zero-padded four-digit suffix is appended as one more separator segment.
func GeneratePassphrase(numWords int, separator string, capitalize, addNumber bool) (string, error) {
	if numWords < 1 {
		return "", ErrInvalidWordCount
	}

	words := make([]string, numWords)
	for i := range words {
		n, err := randomInt(len(passphraseWords))
		if err != nil {
			return "", err
		}
		word := passphraseWords[n]
		if capitalize {
			word = strings.ToUpper(word[:1]) + word[1:]
		}
		words[i] = word
	}

	passphrase := strings.Join(words, separator)

	if addNumber {
		n, err := randomInt(10000)
		if err != nil {
			return "", err
		}
		digits := []byte{
			byte('0' + n/1000%10),
			byte('0' + n/100%10),
			byte('0' + n/10%10),
			byte('0' + n%10),
		}
		passphrase += separator + string(digits)
	}

	return passphrase, nil
}

// GeneratePIN produces a random numeric code of the given length.
func GeneratePIN(length int) (string, error) {
	if length < MinPINLength || length > MaxPINLength {
		return "", ErrInvalidPINLength
	}

	pin := make([]byte, length)
	for i := range pin {
		c, err := randomChar(digitChars)
		if err != nil {
			return "", err
		}
		pin[i] = c
	}

	return string(pin), nil
}

func stripAmbiguous(chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(ambiguousChars, r) {
			return -1
		}
		return r
	}, chars)
}

func containsAny(password []byte, alphabet string) bool {
	return strings.ContainsAny(string(password), alphabet)
}

func randomChar(alphabet string) (byte, error) {
	n, err := randomInt(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[n], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// Level is a human-readable strength band.
type Level int

const (
	VeryWeak Level = iota
	Weak
	Medium
	Strong
	VeryStrong
)

func (l Level) String() string {
	switch l {
	case VeryStrong:
		return "Very Strong"
	case Strong:
		return "Strong"
	case Medium:
		return "Medium"
	case Weak:
		return "Weak"
	default:
		return "Very Weak"
	}
}

// CheckStrength rates a password with zxcvbn's pattern-aware estimator and
// maps its 0..4 score onto a 0..100 scale and the five display bands.
// Dictionary passwords ("password", "qwerty", ...) score 0 there, so the
// common-password floor comes for free.
func CheckStrength(password string) (int, Level) {
	if password == "" {
		return 0, VeryWeak
	}

	strength := zxcvbn.PasswordStrength(password, nil)

	return strength.Score * 25, Level(strength.Score)
}

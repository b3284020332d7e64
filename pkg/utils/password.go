package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// 存储格式：pbkdf2:<digest>:<iterations>:<salt>:<hexkey>
const (
	hashPrefix        = "pbkdf2"
	DefaultIterations = 310000
	keyLen            = 64
	saltBytes         = 16
	defaultDigest     = "sha512"
)

var ErrEmptyPassword = errors.New("password cannot be empty")

var digests = map[string]func() hash.Hash{
	"sha512": sha512.New,
	"sha256": sha256.New,
}

// PasswordHasher PBKDF2-SHA512；Iterations 为 0 时取默认值
type PasswordHasher struct {
	Iterations int
}

func (h PasswordHasher) Hash(pw string) (string, error) {
	if strings.TrimSpace(pw) == "" {
		return "", ErrEmptyPassword
	}
	iter := h.Iterations
	if iter <= 0 {
		iter = DefaultIterations
	}
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	// salt 以 hex 文本参与派生，兼容旧数据
	salt := hex.EncodeToString(raw)
	key := pbkdf2.Key([]byte(pw), []byte(salt), iter, keyLen, digests[defaultDigest])
	return strings.Join([]string{
		hashPrefix, defaultDigest, strconv.Itoa(iter), salt, hex.EncodeToString(key),
	}, ":"), nil
}

// Compare 任何格式问题都返回 false
func (h PasswordHasher) Compare(pw, stored string) bool {
	parts := strings.Split(stored, ":")
	if len(parts) != 5 || parts[0] != hashPrefix {
		return false
	}
	newHash, ok := digests[parts[1]]
	if !ok {
		return false
	}
	iter, err := strconv.Atoi(parts[2])
	if err != nil || iter <= 0 {
		return false
	}
	want, err := hex.DecodeString(parts[4])
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(pw), []byte(parts[3]), iter, len(want), newHash)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func HashPassword(pw string) (string, error) { return PasswordHasher{}.Hash(pw) }
func CheckPassword(pw, hashed string) bool   { return PasswordHasher{}.Compare(pw, hashed) }

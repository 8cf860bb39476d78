package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// SealedPrefix 配置文件中加密令牌的前缀
const SealedPrefix = "enc:"

// IsSealed 是否为加密令牌
func IsSealed(value string) bool {
	return strings.HasPrefix(strings.TrimSpace(value), SealedPrefix)
}

// SealToken 使用 AES-256-GCM 加密平台令牌, 返回带 enc: 前缀的 base64 文本
func SealToken(key, token string) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, []byte(token), nil)
	return SealedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenToken 解密 enc: 前缀的令牌, 明文令牌原样返回且不要求 key
func OpenToken(key, value string) (string, error) {
	value = strings.TrimSpace(value)
	if !IsSealed(value) {
		return value, nil
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, SealedPrefix))
	if err != nil {
		return "", fmt.Errorf("令牌不是合法的 base64: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	if len(raw) < gcm.NonceSize() {
		return "", fmt.Errorf("密文长度非法")
	}

	nonce, data := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, data, nil)
	if err != nil {
		return "", fmt.Errorf("令牌解密失败, 请检查 crypto.aes_key: %w", err)
	}
	return string(plain), nil
}

func newGCM(key string) (cipher.AEAD, error) {
	if key == "" {
		return nil, fmt.Errorf("未配置 crypto.aes_key")
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("crypto.aes_key 长度必须为32字节")
	}
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

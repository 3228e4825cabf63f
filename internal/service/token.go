package service

import (
	"crypto/rand"
	"encoding/base64"
)

const sessionTokenBytes = 32

// generateSessionToken 生成不透明会话令牌
// 32 字节随机数，URL 安全 base64 无填充编码
func generateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const sessionStateCacheTTL = 10 * time.Minute

// AdminSessionState 管理员会话快照
// 以令牌摘要为键缓存，避免明文令牌落入 Redis
// expires_at 为 Unix 秒时间戳
type AdminSessionState struct {
	SessionID uint   `json:"session_id"`
	AdminID   uint   `json:"admin_id"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expires_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// ShopSessionState 商城用户会话快照
type ShopSessionState struct {
	SessionID uint   `json:"session_id"`
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expires_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func adminSessionStateKey(token string) string {
	return fmt.Sprintf("session:admin:%s", tokenDigest(token))
}

func shopSessionStateKey(token string) string {
	return fmt.Sprintf("session:shop:%s", tokenDigest(token))
}

func adminSessionsRevokedKey(adminID uint) string {
	return fmt.Sprintf("session:admin:revoked:%d", adminID)
}

func shopSessionsRevokedKey(userID uint) string {
	return fmt.Sprintf("session:shop:revoked:%d", userID)
}

func sessionTTL(expiresAt int64) time.Duration {
	ttl := sessionStateCacheTTL
	remain := time.Until(time.Unix(expiresAt, 0))
	if remain <= 0 {
		return 0
	}
	if remain < ttl {
		ttl = remain
	}
	return ttl
}

// GetAdminSessionState 获取管理员会话快照
func GetAdminSessionState(ctx context.Context, token string) (*AdminSessionState, bool, error) {
	if token == "" {
		return nil, false, nil
	}
	var state AdminSessionState
	hit, err := GetJSON(ctx, adminSessionStateKey(token), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAdminSessionState 写入管理员会话快照
func SetAdminSessionState(ctx context.Context, token string, state *AdminSessionState) error {
	if token == "" || state == nil || state.AdminID == 0 {
		return nil
	}
	ttl := sessionTTL(state.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, adminSessionStateKey(token), state, ttl)
}

// DelAdminSessionState 删除管理员会话快照
func DelAdminSessionState(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return Del(ctx, adminSessionStateKey(token))
}

// GetShopSessionState 获取商城用户会话快照
func GetShopSessionState(ctx context.Context, token string) (*ShopSessionState, bool, error) {
	if token == "" {
		return nil, false, nil
	}
	var state ShopSessionState
	hit, err := GetJSON(ctx, shopSessionStateKey(token), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetShopSessionState 写入商城用户会话快照
func SetShopSessionState(ctx context.Context, token string, state *ShopSessionState) error {
	if token == "" || state == nil || state.UserID == 0 {
		return nil
	}
	ttl := sessionTTL(state.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, shopSessionStateKey(token), state, ttl)
}

// DelShopSessionState 删除商城用户会话快照
func DelShopSessionState(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return Del(ctx, shopSessionStateKey(token))
}

// MarkAdminSessionsRevoked 记录管理员全量吊销时间点
// 快照按令牌键入，吊销只知道主体，用主体级时间戳让旧快照失效
func MarkAdminSessionsRevoked(ctx context.Context, adminID uint) error {
	if adminID == 0 {
		return nil
	}
	return SetJSON(ctx, adminSessionsRevokedKey(adminID), time.Now().Unix(), sessionStateCacheTTL)
}

// GetAdminSessionsRevokedAt 获取管理员全量吊销时间点
func GetAdminSessionsRevokedAt(ctx context.Context, adminID uint) (int64, bool, error) {
	if adminID == 0 {
		return 0, false, nil
	}
	var revokedAt int64
	hit, err := GetJSON(ctx, adminSessionsRevokedKey(adminID), &revokedAt)
	if err != nil || !hit {
		return 0, hit, err
	}
	return revokedAt, true, nil
}

// MarkShopSessionsRevoked 记录商城用户全量吊销时间点
func MarkShopSessionsRevoked(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return SetJSON(ctx, shopSessionsRevokedKey(userID), time.Now().Unix(), sessionStateCacheTTL)
}

// GetShopSessionsRevokedAt 获取商城用户全量吊销时间点
func GetShopSessionsRevokedAt(ctx context.Context, userID uint) (int64, bool, error) {
	if userID == 0 {
		return 0, false, nil
	}
	var revokedAt int64
	hit, err := GetJSON(ctx, shopSessionsRevokedKey(userID), &revokedAt)
	if err != nil || !hit {
		return 0, hit, err
	}
	return revokedAt, true, nil
}

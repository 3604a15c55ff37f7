// Package logging 提供全局 zap 日志器
//
// 默认是 Nop 日志器（静默），入口调用 Init() 后才会真正输出。
// 日志消息沿用 "[SystemName] ..." 前缀风格，便于按系统过滤。
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop().Sugar()
)

// Init 初始化全局日志器
//
// 参数:
//   - verbose: true 输出 Debug 级别日志，false 只输出 Info 及以上
//
// 返回:
//   - error: zap 配置构建失败时返回错误
func Init(verbose bool) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = true

	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	Set(built)
	return nil
}

// Set 替换全局日志器（测试中可以注入 zaptest/observer 日志器）
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		logger = zap.NewNop().Sugar()
		return
	}
	logger = l.Sugar()
}

// L 返回全局 SugaredLogger
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Sync 刷新缓冲的日志
func Sync() {
	_ = L().Sync()
}

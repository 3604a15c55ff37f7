// Package embedded 提供嵌入数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包保存它的引用，并允许用磁盘目录覆盖（开发时热重载用）。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	overrideDir string
	initialized bool
)

// ErrNotInitialized 未调用 Init
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

// Init 初始化嵌入的数据文件系统
// 必须在 main() 开始时、任何数据加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// SetOverrideDir 设置磁盘数据目录；非空时优先读取磁盘上的同名文件
//
// dir 对应 "data/" 前缀，例如 dir=./data 时 "data/reveal.yaml" 读取 ./data/reveal.yaml。
func SetOverrideDir(dir string) {
	overrideDir = dir
}

// OverrideDir 当前磁盘数据目录
func OverrideDir() string {
	return overrideDir
}

// normalize 标准化路径并检查前缀
func normalize(path string) (string, error) {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// ReadFile 读取数据文件，路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}

	if overrideDir != "" {
		local := filepath.Join(overrideDir, filepath.FromSlash(strings.TrimPrefix(path, "data/")))
		data, err := os.ReadFile(local)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if !initialized {
		return nil, ErrNotInitialized
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查数据文件是否存在（磁盘覆盖或嵌入）
func Exists(path string) bool {
	_, err := ReadFile(path)
	return err == nil
}

// Glob 在嵌入的数据中匹配文件
func Glob(pattern string) ([]string, error) {
	pattern, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	if !initialized {
		return nil, ErrNotInitialized
	}
	return fs.Glob(dataFS, pattern)
}

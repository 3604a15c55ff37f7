//go:build !android

package utils

// EnsureStorageDir 确保偏好存储目录存在（非 Android 平台由 gdata 自行创建）
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 获取存储路径（非 Android 平台返回空字符串）
func GetStoragePath() string {
	return ""
}

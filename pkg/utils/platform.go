//go:build !mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false；设置 REDFLAG_MOBILE_EMULATE=1 可在本地模拟移动端（隐藏键盘提示）
func IsMobile() bool {
	return os.Getenv("REDFLAG_MOBILE_EMULATE") == "1"
}

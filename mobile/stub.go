//go:build !mobile

// stub.go - 桌面构建时的占位文件
//
// 绑定代码在 mobile.go 和 embed.go 中，仅在 -tags mobile 时编译；
// 普通构建只编译这里的 Dummy，保证 ./... 可以正常构建。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}

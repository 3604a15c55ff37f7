//go:build mobile

// embed.go - 移动端数据嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// go:embed 只能嵌入本目录下的文件，构建前需要把 data/ 复制到 mobile/data/（见 mobile.go）。
package mobile

import "embed"

//go:embed data/landing.yaml data/reveal.yaml
var dataFS embed.FS

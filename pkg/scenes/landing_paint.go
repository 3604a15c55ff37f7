package scenes

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/redflag/pkg/config"
	"github.com/decker502/redflag/pkg/content"
)

// 调试字体每个字符 6x16 像素
const (
	glyphWidth  = 6
	lineHeight  = 16
	cardPadding = 12
)

var (
	colorPage  = color.RGBA{241, 245, 249, 255}
	colorNavy  = color.RGBA{15, 23, 42, 255}
	colorCard  = color.RGBA{30, 41, 59, 255}
	colorWhite = color.RGBA{255, 255, 255, 255}
	colorRed   = color.RGBA{220, 38, 38, 255}
)

// accentColors 条目强调色
var accentColors = map[string]color.RGBA{
	"red":     colorRed,
	"amber":   {245, 158, 11, 255},
	"emerald": {16, 185, 129, 255},
	"green":   {16, 185, 129, 255},
	"sky":     {14, 165, 233, 255},
	"blue":    {59, 130, 246, 255},
	"slate":   {100, 116, 139, 255},
}

func accentColor(name string) color.RGBA {
	if c, ok := accentColors[name]; ok {
		return c
	}
	return colorRed
}

// cardPainter 离屏绘制并缓存卡片图像
//
// 卡片内容不随帧变化，只在内容或排版变化时（reset）重新绘制。
type cardPainter struct {
	cards   map[string]*ebiten.Image
	headers map[string]*ebiten.Image
}

func newCardPainter() *cardPainter {
	return &cardPainter{
		cards:   make(map[string]*ebiten.Image),
		headers: make(map[string]*ebiten.Image),
	}
}

// reset 释放所有缓存图像
func (p *cardPainter) reset() {
	for id, img := range p.cards {
		img.Deallocate()
		delete(p.cards, id)
	}
	for name, img := range p.headers {
		img.Deallocate()
		delete(p.headers, name)
	}
}

// card 返回条目的卡片图像
func (p *cardPainter) card(id string, payload *content.Payload, rect config.Rect) *ebiten.Image {
	if img, ok := p.cards[id]; ok {
		return img
	}

	w, h := max(1, int(rect.W)), max(1, int(rect.H))
	img := ebiten.NewImage(w, h)

	switch {
	case payload == nil:
		img.Fill(colorCard)
	case payload.Decorative:
		paintSpinner(img, accentColor(payload.Accent))
	case payload.Layout == "dots":
		paintDot(img, accentColor(payload.Accent))
	case payload.Layout == "inset":
		paintInset(img, payload)
	default:
		paintCard(img, payload)
	}

	p.cards[id] = img
	return img
}

// header 返回区块标题图像
func (p *cardPainter) header(name, title, subtitle string, rect config.Rect) *ebiten.Image {
	if img, ok := p.headers[name]; ok {
		return img
	}

	w, h := max(1, int(rect.W)), max(1, int(rect.H))
	img := ebiten.NewImage(w, h)
	vector.DrawFilledRect(img, 0, 8, 4, float32(h-24), colorRed, false)

	y := 12
	ebitenutil.DebugPrintAt(img, strings.ToUpper(title), cardPadding, y)
	y += lineHeight + 4
	for _, line := range wrapText(subtitle, (w-cardPadding)/glyphWidth) {
		ebitenutil.DebugPrintAt(img, line, cardPadding, y)
		y += lineHeight
	}

	p.headers[name] = img
	return img
}

// paintCard 深色卡片：左侧强调条、标签、数值、说明、要点和角标
func paintCard(img *ebiten.Image, payload *content.Payload) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	accent := accentColor(payload.Accent)

	img.Fill(colorCard)
	vector.DrawFilledRect(img, 0, 0, 4, float32(h), accent, false)
	vector.StrokeRect(img, 0.5, 0.5, float32(w)-1, float32(h)-1, 1, color.RGBA{51, 65, 85, 255}, false)

	cols := (w - 2*cardPadding) / glyphWidth
	x, y := cardPadding, cardPadding/2

	if payload.Badge != "" {
		badgeW := float32(len(payload.Badge)*glyphWidth + 8)
		vector.DrawFilledRect(img, float32(w)-badgeW-6, 6, badgeW, lineHeight+2, accent, false)
		ebitenutil.DebugPrintAt(img, payload.Badge, w-int(badgeW)-2, 6)
	}

	if payload.Label != "" {
		ebitenutil.DebugPrintAt(img, payload.Label, x, y)
		y += lineHeight
	}
	if payload.Value != "" {
		ebitenutil.DebugPrintAt(img, payload.Value, x, y)
		y += lineHeight
	}
	if payload.Score > 0 {
		paintScoreBar(img, x, y+4, w-2*cardPadding, payload.Score, accent)
		ebitenutil.DebugPrintAt(img, fmt.Sprintf("%d/100", payload.Score), x, y+10)
		y += lineHeight + 12
	}
	for _, line := range wrapText(payload.Detail, cols) {
		if y+lineHeight > h {
			return
		}
		ebitenutil.DebugPrintAt(img, line, x, y)
		y += lineHeight
	}
	for _, bullet := range payload.Bullets {
		if y+lineHeight > h {
			return
		}
		vector.DrawFilledRect(img, float32(x), float32(y+7), 3, 3, accent, false)
		ebitenutil.DebugPrintAt(img, bullet, x+8, y)
		y += lineHeight
	}
}

func paintScoreBar(img *ebiten.Image, x, y, w, score int, clr color.RGBA) {
	vector.DrawFilledRect(img, float32(x), float32(y), float32(w), 4, color.RGBA{51, 65, 85, 255}, false)
	filled := float32(w) * float32(min(score, 100)) / 100
	vector.DrawFilledRect(img, float32(x), float32(y), filled, 4, clr, false)
}

// paintDot 风险指示圆点
func paintDot(img *ebiten.Image, clr color.RGBA) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	r := float32(min(w, h)) / 2
	vector.DrawFilledCircle(img, float32(w)/2, float32(h)/2, r, clr, true)
}

// paintInset 叠放在卡片上的小字，没有背景
func paintInset(img *ebiten.Image, payload *content.Payload) {
	text := payload.Value
	if text == "" {
		text = payload.Label
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	x := max(0, w-len(text)*glyphWidth)
	vector.DrawFilledRect(img, float32(x), float32(h-2), float32(w-x), 2, accentColor(payload.Accent), false)
	ebitenutil.DebugPrintAt(img, text, x, (h-lineHeight)/2)
}

// paintSpinner 扫描中的旋转图标：四根辐条，绘制时由循环元素的 Rotation 转动
func paintSpinner(img *ebiten.Image, clr color.RGBA) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	cx, cy := float64(w)/2, float64(h)/2
	r := math.Min(cx, cy) - 1
	for i := range 4 {
		a := float64(i) * math.Pi / 4
		dx, dy := math.Cos(a)*r, math.Sin(a)*r
		vector.StrokeLine(img, float32(cx-dx), float32(cy-dy), float32(cx+dx), float32(cy+dy), 2, clr, true)
	}
	vector.DrawFilledCircle(img, float32(cx), float32(cy), float32(r/3), colorWhite, true)
}

// wrapText 按字符宽度折行
func wrapText(text string, cols int) []string {
	if text == "" {
		return nil
	}
	if cols <= 0 {
		return []string{text}
	}

	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > cols {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

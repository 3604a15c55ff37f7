package config

import (
	"math"

	"github.com/decker502/redflag/pkg/content"
)

// 页面排版常量（页面坐标，像素）
const (
	PageTopPadding  = 24.0
	SectionGap      = 48.0
	SectionHeader   = 88.0
	CardGap         = 16.0
	HeroColumnGap   = 24.0
	DotSize         = 12.0
	InsetWidth      = 64.0
	InsetHeight     = 20.0
	InsetPadding    = 12.0
	DefaultColumns  = 3
	heroLeftHeight  = 84.0
	heroRightHeight = 52.0
	stackHeight     = 56.0
	gridHeight      = 120.0
)

// Rect 页面坐标系中的矩形
type Rect struct {
	X, Y, W, H float64
}

// Bottom 矩形底边
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// union 合并两个矩形；零值矩形视为空
func (r Rect) union(o Rect) Rect {
	if r.W == 0 && r.H == 0 {
		return o
	}
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	return Rect{
		X: x,
		Y: y,
		W: math.Max(r.X+r.W, o.X+o.W) - x,
		H: math.Max(r.Bottom(), o.Bottom()) - y,
	}
}

// ItemLayout 条目卡片位置
type ItemLayout struct {
	ID   string
	Rect Rect
}

// SectionLayout 区块排版结果
type SectionLayout struct {
	Name   string
	Group  int
	Anchor string
	// Bounds 区块整体区域（含标题），即分组的视口观测区域
	Bounds Rect
	// Header 标题区域，没有标题时为零值
	Header Rect
	Items  []ItemLayout
}

// PageLayout 整页排版
type PageLayout struct {
	Sections []SectionLayout
	Height   float64
}

// Item 按条目ID查找卡片位置
func (p *PageLayout) Item(id string) (Rect, bool) {
	for _, s := range p.Sections {
		for _, it := range s.Items {
			if it.ID == id {
				return it.Rect, true
			}
		}
	}
	return Rect{}, false
}

// Anchor 锚点对应的滚动位置（区块顶部）
func (p *PageLayout) Anchor(name string) (float64, bool) {
	for _, s := range p.Sections {
		if s.Anchor == name {
			return s.Bounds.Y, true
		}
	}
	return 0, false
}

// LayoutLanding 计算落地页排版
//
// 连续的 hero-left/hero-right/dots/inset 区块组成首屏两栏；
// dots 区块的条目与前一个 hero-right 区块的行逐一对齐，
// inset 区块的条目从右向左叠放在前一个 hero-right 区块第一行的右侧。
// 其余区块自上而下排列：grid 按列排布，默认单列堆叠。
func LayoutLanding(landing *content.Landing) *PageLayout {
	cw := ContentWidth()
	colW := (cw - HeroColumnGap) / 2
	leftX := PageMarginX
	rightX := PageMarginX + colW + HeroColumnGap

	ids := itemIDsBySection(landing)
	page := &PageLayout{}

	y := PageTopPadding
	inHero := false
	leftY, rightY := y, y
	lastRight := -1

	endHero := func() {
		if inHero {
			y = math.Max(leftY, rightY) - CardGap + SectionGap
			inHero = false
			lastRight = -1
		}
	}

	for si, section := range landing.Sections {
		sl := SectionLayout{Name: section.Name, Group: section.Group, Anchor: section.Anchor}
		sectionIDs := ids[si]

		switch section.Layout {
		case "hero-left", "hero-right", "dots", "inset":
			if !inHero {
				inHero = true
				leftY, rightY = y, y
			}
			switch section.Layout {
			case "hero-left":
				h := cardHeight(section, heroLeftHeight)
				for _, id := range sectionIDs {
					sl.Items = append(sl.Items, ItemLayout{ID: id, Rect: Rect{leftX, leftY, colW, h}})
					leftY += h + CardGap
				}
			case "hero-right":
				h := cardHeight(section, heroRightHeight)
				for _, id := range sectionIDs {
					sl.Items = append(sl.Items, ItemLayout{ID: id, Rect: Rect{rightX, rightY, colW, h}})
					rightY += h + CardGap
				}
			case "dots":
				for i, id := range sectionIDs {
					r := Rect{rightX + colW - 2*DotSize, rightY, DotSize, DotSize}
					if lastRight >= 0 && i < len(page.Sections[lastRight].Items) {
						row := page.Sections[lastRight].Items[i].Rect
						r = Rect{row.X + row.W - 2*DotSize, row.Y + (row.H-DotSize)/2, DotSize, DotSize}
					}
					sl.Items = append(sl.Items, ItemLayout{ID: id, Rect: r})
				}
			case "inset":
				row := Rect{rightX, rightY, colW, InsetHeight}
				if lastRight >= 0 && len(page.Sections[lastRight].Items) > 0 {
					row = page.Sections[lastRight].Items[0].Rect
				}
				x := row.X + row.W - InsetPadding - float64(len(sectionIDs))*InsetWidth
				for i, id := range sectionIDs {
					sl.Items = append(sl.Items, ItemLayout{ID: id, Rect: Rect{
						x + float64(i)*InsetWidth,
						row.Y + (row.H-InsetHeight)/2,
						InsetWidth, InsetHeight,
					}})
				}
			}

		default:
			endHero()
			start := y
			if section.Title != "" {
				sl.Header = Rect{PageMarginX, y, cw, SectionHeader}
				y += SectionHeader
			}

			if section.Layout == "grid" {
				cols := section.Columns
				if cols <= 0 {
					cols = DefaultColumns
				}
				h := cardHeight(section, gridHeight)
				w := (cw - float64(cols-1)*CardGap) / float64(cols)
				rows := (len(sectionIDs) + cols - 1) / cols
				for i, id := range sectionIDs {
					c, r := i%cols, i/cols
					sl.Items = append(sl.Items, ItemLayout{ID: id, Rect: Rect{
						PageMarginX + float64(c)*(w+CardGap),
						y + float64(r)*(h+CardGap),
						w, h,
					}})
				}
				if rows > 0 {
					y += float64(rows)*(h+CardGap) - CardGap
				}
			} else {
				h := cardHeight(section, stackHeight)
				for i, id := range sectionIDs {
					sl.Items = append(sl.Items, ItemLayout{ID: id, Rect: Rect{PageMarginX, y, cw, h}})
					y += h
					if i < len(sectionIDs)-1 {
						y += CardGap
					}
				}
			}

			sl.Bounds = Rect{PageMarginX, start, cw, y - start}
			y += SectionGap
		}

		if inHero {
			for _, it := range sl.Items {
				sl.Bounds = sl.Bounds.union(it.Rect)
			}
		}
		page.Sections = append(page.Sections, sl)
		if section.Layout == "hero-right" {
			lastRight = len(page.Sections) - 1
		}
	}
	endHero()

	page.Height = y
	return page
}

func cardHeight(section content.Section, fallback float64) float64 {
	if section.CardHeight > 0 {
		return section.CardHeight
	}
	return fallback
}

// itemIDsBySection 按区块分组的条目ID（与 Landing.Items 的展开顺序一致）
func itemIDsBySection(landing *content.Landing) [][]string {
	items := landing.Items()
	out := make([][]string, len(landing.Sections))
	i := 0
	for si, section := range landing.Sections {
		for range section.Items {
			out[si] = append(out[si], items[i].ID)
			i++
		}
	}
	return out
}

// ApplyLayout 用排版结果填充分组区域和页面高度
//
// 配置中显式写了 bounds 的分组保持不变；未声明的分组会被追加（使用默认触发）。
func (c *RevealConfig) ApplyLayout(page *PageLayout) {
	if c.PageHeight <= 0 {
		c.PageHeight = page.Height
	}

	bounds := make(map[int]Rect)
	names := make(map[int]string)
	var order []int
	for _, s := range page.Sections {
		if _, seen := bounds[s.Group]; !seen {
			order = append(order, s.Group)
			names[s.Group] = s.Name
		}
		bounds[s.Group] = bounds[s.Group].union(s.Bounds)
	}

	for _, group := range order {
		b := BoundsConfig{Y: bounds[group].Y, Height: bounds[group].H}
		found := false
		for i := range c.Groups {
			g := &c.Groups[i]
			if g.Index != group {
				continue
			}
			found = true
			if g.Bounds.Y == 0 && g.Bounds.Height == 0 {
				g.Bounds = b
			}
		}
		if !found {
			c.Groups = append(c.Groups, GroupConfig{Index: group, Name: names[group], Bounds: b})
		}
	}
}

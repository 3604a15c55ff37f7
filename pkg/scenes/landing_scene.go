package scenes

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/redflag/pkg/components"
	"github.com/decker502/redflag/pkg/config"
	"github.com/decker502/redflag/pkg/content"
	"github.com/decker502/redflag/pkg/ecs"
	"github.com/decker502/redflag/pkg/game"
	"github.com/decker502/redflag/pkg/logging"
	"github.com/decker502/redflag/pkg/systems"
	"github.com/decker502/redflag/pkg/utils"
)

// ContentLoader 读取落地页内容和揭示策略（启动和热重载时调用）
type ContentLoader func() (*content.Landing, *config.RevealConfig, error)

// anchorKeys 数字键对应的导航锚点
var anchorKeys = []struct {
	key    ebiten.Key
	anchor string
	label  string
}{
	{ebiten.KeyDigit1, "how-it-works", "How It Works"},
	{ebiten.KeyDigit2, "features", "Features"},
	{ebiten.KeyDigit3, "pricing", "Pricing"},
}

// LandingScene 落地页场景
//
// 场景只负责输入、滚动和绘制；条目什么时候出现、以什么姿态出现全部来自
// RevealStage 每帧生成的视觉描述。
type LandingScene struct {
	loader  ContentLoader
	prefs   *game.PreferencesManager
	watcher *config.Watcher

	landing *content.Landing
	policy  *config.RevealConfig
	page    *config.PageLayout
	payload map[string]*content.Payload

	stage  *game.RevealStage
	scroll *systems.ScrollSystem

	drag    *utils.DragManager
	painter *cardPainter
	byItem  map[string]components.VisualDescriptor
}

// NewLandingScene 加载内容、排版并挂载揭示舞台
//
// 参数:
//   - loader: 内容加载函数
//   - prefs: 访客偏好（减少动画、上次滚动位置），不可为 nil
//   - watcher: 数据目录监听器，可为 nil（不热重载）
func NewLandingScene(loader ContentLoader, prefs *game.PreferencesManager, watcher *config.Watcher) (*LandingScene, error) {
	s := &LandingScene{
		loader:  loader,
		prefs:   prefs,
		watcher: watcher,
		drag:    utils.NewDragManager(),
		painter: newCardPainter(),
		byItem:  make(map[string]components.VisualDescriptor),
	}

	landing, policy, err := loader()
	if err != nil {
		return nil, fmt.Errorf("failed to load landing content: %w", err)
	}

	s.stage = game.NewRevealStage(policy, game.WithReducedMotion(prefs.Preferences().ReducedMotion))
	if err := s.apply(landing, policy); err != nil {
		return nil, err
	}

	// 滚动实体不属于舞台，卸载/重载时滚动位置保持不变
	s.scroll = systems.NewScrollSystem(ecs.NewEntityManager(), config.ViewportHeight(), config.MaxScroll(s.policy.PageHeight))
	s.scroll.ScrollTo(prefs.Preferences().LastScrollY)

	return s, nil
}

// apply 排版并（重新）挂载
func (s *LandingScene) apply(landing *content.Landing, policy *config.RevealConfig) error {
	reg, err := landing.Registry()
	if err != nil {
		return fmt.Errorf("invalid landing content: %w", err)
	}

	page := config.LayoutLanding(landing)
	policy.ApplyLayout(page)
	if err := policy.Validate(); err != nil {
		return err
	}

	s.stage.SetPolicy(policy)
	if err := s.stage.Remount(reg); err != nil {
		return err
	}

	s.landing = landing
	s.policy = policy
	s.page = page
	s.payload = make(map[string]*content.Payload, reg.Len())
	for _, item := range reg.List() {
		if p, ok := item.Payload.(*content.Payload); ok {
			s.payload[item.ID] = p
		}
	}
	s.painter.reset()
	if s.scroll != nil {
		s.scroll.SetMaxOffset(config.MaxScroll(policy.PageHeight))
	}
	return nil
}

// reload 热重载：失败时保留当前内容
func (s *LandingScene) reload(change config.Change) {
	logging.L().Infof("[LandingScene] reloading after change: %v", change.Files)
	landing, policy, err := s.loader()
	if err == nil {
		err = s.apply(landing, policy)
	}
	if err != nil {
		logging.L().Errorf("[LandingScene] reload failed, keeping current content: %v", err)
		// 挂载失败时恢复旧内容
		if !s.stage.Mounted() {
			if restoreErr := s.apply(s.landing, s.policy); restoreErr != nil {
				logging.L().Errorf("[LandingScene] restore failed: %v", restoreErr)
			}
		}
	}
}

// Update 处理输入并推进舞台
func (s *LandingScene) Update(dt time.Duration) {
	if s.watcher != nil {
		if change, ok := s.watcher.Poll(); ok {
			s.reload(change)
		}
	}

	s.handleInput()
	s.scroll.Update(dt)
	s.stage.Update(dt, s.scroll.Viewport())

	clear(s.byItem)
	for _, d := range s.stage.Descriptors() {
		s.byItem[d.ItemID] = d
	}
}

func (s *LandingScene) handleInput() {
	if _, wy := ebiten.Wheel(); wy != 0 {
		s.scroll.ScrollBy(-wy * config.ScrollStep)
	}

	// 拖动页面滚动（触摸或鼠标）
	s.drag.Update()
	if s.drag.IsDragging() && s.drag.GetInfo().StartY >= config.NavHeight {
		if _, dy := s.drag.FrameDelta(); dy != 0 {
			s.scroll.ScrollBy(-float64(dy))
		}
	}

	switch {
	case repeatingKey(ebiten.KeyArrowDown):
		s.scroll.ScrollBy(config.ScrollStep)
	case repeatingKey(ebiten.KeyArrowUp):
		s.scroll.ScrollBy(-config.ScrollStep)
	case repeatingKey(ebiten.KeyPageDown), repeatingKey(ebiten.KeySpace):
		s.scroll.ScrollBy(config.PageStep)
	case repeatingKey(ebiten.KeyPageUp):
		s.scroll.ScrollBy(-config.PageStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		s.scroll.MoveTo(0, config.AnchorScrollSpeed)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		s.scroll.MoveTo(config.MaxScroll(s.policy.PageHeight), config.AnchorScrollSpeed)
	}

	for _, ak := range anchorKeys {
		if inpututil.IsKeyJustPressed(ak.key) {
			if y, ok := s.page.Anchor(ak.anchor); ok {
				s.scroll.MoveTo(y, config.AnchorScrollSpeed)
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.toggleReducedMotion()
	}
}

// repeatingKey 按下时触发一次，按住 300ms 后每 3 帧重复
func repeatingKey(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > 18 && d%3 == 0)
}

func (s *LandingScene) toggleReducedMotion() {
	on := !s.stage.ReducedMotion()
	s.prefs.SetReducedMotion(on)
	if err := s.prefs.Save(); err != nil {
		logging.L().Warnf("[LandingScene] failed to save preferences: %v", err)
	}

	s.stage.SetReducedMotion(on)
	if err := s.stage.Remount(s.stage.Registry()); err != nil {
		logging.L().Errorf("[LandingScene] remount failed: %v", err)
	}
	logging.L().Infof("[LandingScene] reduced motion: %v", on)
}

// Leave 离开场景：卸载舞台，停止监听
func (s *LandingScene) Leave() {
	s.stage.Unmount()
	if s.watcher != nil {
		s.watcher.Stop()
	}
}

// SaveOnExit 保存滚动位置
func (s *LandingScene) SaveOnExit() bool {
	s.prefs.SetLastScrollY(s.scroll.Offset())
	if err := s.prefs.Save(); err != nil {
		logging.L().Warnf("[LandingScene] failed to save preferences: %v", err)
		return false
	}
	return true
}

// Draw 绘制页面
func (s *LandingScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorPage)
	scrollY := s.scroll.Offset()

	for _, section := range s.page.Sections {
		if section.Header.H > 0 {
			s.drawHeader(screen, section, scrollY)
		}
	}

	for _, d := range s.stage.Descriptors() {
		rect, ok := s.page.Item(d.ItemID)
		if !ok {
			continue
		}
		screenY := config.NavHeight + rect.Y - scrollY
		if screenY+rect.H < config.NavHeight || screenY > config.WindowHeight {
			continue
		}
		img := s.painter.card(d.ItemID, s.payload[d.ItemID], rect)
		drawDescriptor(screen, img, d, rect.X, screenY)
	}

	s.drawNav(screen)
}

// drawDescriptor 按视觉描述绘制卡片：以中心为原点缩放、旋转，再平移和调整透明度
func drawDescriptor(screen, img *ebiten.Image, d components.VisualDescriptor, x, y float64) {
	if d.Opacity <= 0 || d.Scale <= 0 {
		return
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	cx, cy := float64(w)/2, float64(h)/2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-cx, -cy)
	op.GeoM.Scale(d.Scale, d.Scale)
	if d.Rotation != 0 {
		op.GeoM.Rotate(d.Rotation * math.Pi / 180)
	}
	op.GeoM.Translate(x+cx+d.TranslateX, y+cy+d.TranslateY)
	op.ColorScale.ScaleAlpha(float32(d.Opacity))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// drawHeader 区块标题跟随区块第一个条目的透明度和位移
func (s *LandingScene) drawHeader(screen *ebiten.Image, section config.SectionLayout, scrollY float64) {
	alpha, offsetY := 1.0, 0.0
	if len(section.Items) > 0 {
		if d, ok := s.byItem[section.Items[0].ID]; ok {
			alpha, offsetY = d.Opacity, d.TranslateY
		}
	}
	if alpha <= 0 {
		return
	}

	y := config.NavHeight + section.Header.Y - scrollY + offsetY
	if y+section.Header.H < config.NavHeight || y > config.WindowHeight {
		return
	}

	src, ok := s.landing.SectionByGroup(section.Group)
	if !ok {
		return
	}
	img := s.painter.header(section.Name, src.Title, src.Subtitle, section.Header)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(section.Header.X, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(img, op)
}

func (s *LandingScene) drawNav(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, config.WindowWidth, config.NavHeight, colorNavy, false)
	vector.DrawFilledRect(screen, config.PageMarginX, 18, 4, 20, colorWhite, false)
	vector.DrawFilledRect(screen, config.PageMarginX+4, 18, 14, 12, colorRed, false)
	ebitenutil.DebugPrintAt(screen, s.landing.Brand, int(config.PageMarginX)+24, 20)

	// 移动端没有键盘，不显示快捷键提示
	if !utils.IsMobile() {
		x := int(config.WindowWidth) - 420
		for i, ak := range anchorKeys {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("[%d] %s", i+1, ak.label), x, 12)
			x += 110
		}

		motion := "off"
		if s.stage.ReducedMotion() {
			motion = "on"
		}
		ebitenutil.DebugPrintAt(screen, "[R] reduced motion: "+motion, int(config.WindowWidth)-420, 30)
	}

	// 滚动条
	if maxScroll := config.MaxScroll(s.policy.PageHeight); maxScroll > 0 {
		track := config.ViewportHeight()
		thumb := math.Max(24, track*track/s.policy.PageHeight)
		top := config.NavHeight + (track-thumb)*s.scroll.Offset()/maxScroll
		vector.DrawFilledRect(screen, config.WindowWidth-6, float32(top), 4, float32(thumb), color.RGBA{148, 163, 184, 200}, false)
	}
}

// Stage 返回揭示舞台（调试和测试用）
func (s *LandingScene) Stage() *game.RevealStage {
	return s.stage
}

package content

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// itemNamespace 用于为未显式声明 id 的条目生成基于名称的 UUID (v5)
// 同一 section/label 在任何一次运行中都得到相同的 ID
var itemNamespace = uuid.MustParse("5f0b7f5e-2f43-4c8e-9d0c-8a1d2b6c7e10")

// Landing 落地页内容（data/landing.yaml）
type Landing struct {
	// Brand 品牌名，如 "RedFlag"
	Brand string `yaml:"brand"`

	// Tagline 页脚标语
	Tagline string `yaml:"tagline"`

	// Sections 自上而下排列的页面区块
	Sections []Section `yaml:"sections"`
}

// Section 页面区块，一个区块对应一个揭示分组
type Section struct {
	// Name 区块名，如 "hero", "features"
	Name string `yaml:"name"`

	// Group 揭示分组索引（与 reveal.yaml 中的 groups[].index 对应）
	Group int `yaml:"group"`

	// Anchor 锚点名，导航跳转使用（可为空）
	Anchor string `yaml:"anchor"`

	// Title, Subtitle 区块标题文案
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`

	// Layout 排版方式："hero-left", "hero-right", "dots", "inset", "grid", 空为单列堆叠
	Layout string `yaml:"layout"`

	// Columns 网格列数（grid 使用，默认 3）
	Columns int `yaml:"columns"`

	// CardHeight 条目卡片高度（像素，0 使用排版默认值）
	CardHeight float64 `yaml:"cardHeight"`

	// Items 区块内条目
	Items []ItemSpec `yaml:"items"`
}

// ItemSpec YAML 中的条目描述
type ItemSpec struct {
	// ID 可选；为空时由 section/label 生成稳定 UUID
	ID string `yaml:"id"`

	// Order 可选；为空时使用条目在区块中的位置
	Order *int `yaml:"order"`

	Label   string   `yaml:"label"`
	Detail  string   `yaml:"detail"`
	Value   string   `yaml:"value"`
	Score   int      `yaml:"score"`
	Accent  string   `yaml:"accent"`
	Badge   string   `yaml:"badge"`
	Bullets []string `yaml:"bullets"`

	// Decorative 装饰性元素（如扫描中的旋转图标），不参与揭示，只循环播放
	Decorative bool `yaml:"decorative"`
}

// Payload 条目附带的展示数据（Item.Payload 的具体类型）
type Payload struct {
	Section    string
	Layout     string
	Label      string
	Detail     string
	Value      string
	Score      int
	Accent     string
	Badge      string
	Bullets    []string
	Decorative bool
}

// LoadLandingFile 从文件加载落地页内容
func LoadLandingFile(path string) (*Landing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read landing content: %w", err)
	}
	return LoadLanding(data)
}

// LoadLanding 解析落地页内容
func LoadLanding(data []byte) (*Landing, error) {
	var landing Landing
	if err := yaml.Unmarshal(data, &landing); err != nil {
		return nil, fmt.Errorf("failed to parse landing content: %w", err)
	}

	for i, section := range landing.Sections {
		if section.Name == "" {
			return nil, fmt.Errorf("%w: section %d has no name", ErrInvalidItem, i)
		}
		if section.Group < 0 {
			return nil, fmt.Errorf("%w: section %q has negative group %d", ErrInvalidItem, section.Name, section.Group)
		}
	}

	return &landing, nil
}

// Items 展开为揭示引擎使用的条目列表（未排序，保持 YAML 中的顺序）
func (l *Landing) Items() []Item {
	var items []Item
	for _, section := range l.Sections {
		for i, spec := range section.Items {
			order := i
			if spec.Order != nil {
				order = *spec.Order
			}
			items = append(items, Item{
				ID:         itemID(section.Name, spec),
				GroupIndex: section.Group,
				Order:      order,
				Payload: &Payload{
					Section:    section.Name,
					Layout:     section.Layout,
					Label:      spec.Label,
					Detail:     spec.Detail,
					Value:      spec.Value,
					Score:      spec.Score,
					Accent:     spec.Accent,
					Badge:      spec.Badge,
					Bullets:    spec.Bullets,
					Decorative: spec.Decorative,
				},
			})
		}
	}
	return items
}

// Registry 展开并注册全部条目
func (l *Landing) Registry() (*Registry, error) {
	return Register(l.Items())
}

// SectionByGroup 查找分组对应的区块
func (l *Landing) SectionByGroup(group int) (Section, bool) {
	for _, section := range l.Sections {
		if section.Group == group {
			return section, true
		}
	}
	return Section{}, false
}

// SectionByAnchor 查找锚点对应的区块
func (l *Landing) SectionByAnchor(anchor string) (Section, bool) {
	for _, section := range l.Sections {
		if anchor != "" && section.Anchor == anchor {
			return section, true
		}
	}
	return Section{}, false
}

func itemID(section string, spec ItemSpec) string {
	if spec.ID != "" {
		return spec.ID
	}
	return uuid.NewSHA1(itemNamespace, []byte(section+"/"+spec.Label)).String()
}

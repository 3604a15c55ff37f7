package content

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLanding = `
brand: RedFlag
tagline: See the risks before you buy.
sections:
  - name: report
    group: 1
    items:
      - id: flag-legal
        label: Legal Risk
        score: 8
        accent: red
      - label: Insider Selling
        score: 7
        accent: amber
      - label: Scanned 50+ risk sources
        decorative: true
        order: 10
  - name: pricing
    group: 7
    anchor: pricing
    title: Simple, transparent pricing
    items:
      - label: Pro
        value: "$19"
        badge: Most Popular
        bullets: [Unlimited reports, Email alerts]
`

func TestLoadLanding(t *testing.T) {
	landing, err := LoadLanding([]byte(testLanding))
	require.NoError(t, err)

	assert.Equal(t, "RedFlag", landing.Brand)
	require.Len(t, landing.Sections, 2)

	items := landing.Items()
	require.Len(t, items, 4)

	assert.Equal(t, "flag-legal", items[0].ID)
	assert.Equal(t, 1, items[0].GroupIndex)
	assert.Equal(t, 0, items[0].Order)
	assert.Equal(t, 1, items[1].Order)
	// 显式 order 覆盖位置
	assert.Equal(t, 10, items[2].Order)

	payload, ok := items[2].Payload.(*Payload)
	require.True(t, ok)
	assert.True(t, payload.Decorative)
	assert.Equal(t, "report", payload.Section)

	pro := items[3].Payload.(*Payload)
	assert.Equal(t, "Most Popular", pro.Badge)
	assert.Equal(t, []string{"Unlimited reports", "Email alerts"}, pro.Bullets)
}

func TestGeneratedIDsAreStable(t *testing.T) {
	first, err := LoadLanding([]byte(testLanding))
	require.NoError(t, err)
	second, err := LoadLanding([]byte(testLanding))
	require.NoError(t, err)

	a, b := first.Items(), second.Items()
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
	}

	// 未声明 id 的条目使用 v5 UUID
	parsed, err := uuid.Parse(a[1].ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
}

func TestLandingRegistry(t *testing.T) {
	landing, err := LoadLanding([]byte(testLanding))
	require.NoError(t, err)

	reg, err := landing.Registry()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 7}, reg.Groups())

	section, ok := landing.SectionByAnchor("pricing")
	require.True(t, ok)
	assert.Equal(t, 7, section.Group)

	_, ok = landing.SectionByAnchor("")
	assert.False(t, ok)

	section, ok = landing.SectionByGroup(1)
	require.True(t, ok)
	assert.Equal(t, "report", section.Name)
}

func TestLoadLandingErrors(t *testing.T) {
	_, err := LoadLanding([]byte("sections: [{group: 1}]"))
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = LoadLanding([]byte("sections: [{name: a, group: -1}]"))
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = LoadLanding([]byte("sections: {"))
	assert.Error(t, err)
}

func TestDuplicateLabelsCollide(t *testing.T) {
	landing, err := LoadLanding([]byte(`
sections:
  - name: s
    group: 0
    items:
      - label: same
      - label: same
`))
	require.NoError(t, err)

	_, err = landing.Registry()
	var dup *DuplicateIDError
	assert.ErrorAs(t, err, &dup)
}

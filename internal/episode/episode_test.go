package episode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://wiki.52poke.com/wiki/%E5%AE%9D%E5%8F%AF%E6%A2%A6_%E7%AC%AC1%E9%9B%86", "第1集"},
		{"https://wiki.52poke.com/wiki/宝可梦_第275集", "第275集"},
		{"https://wiki.52poke.com/wiki/宝可梦_超世代_第42集", "第42集"},
		{"https://wiki.52poke.com/wiki/皮卡丘", ""},
		// literal + in a path segment stays a +, never a space
		{"https://wiki.52poke.com/wiki/宝可梦+剧场版_第7集", "第7集"},
		{"https://wiki.52poke.com/wiki/%E5%AE%9D%E5%8F%AF%E6%A2%A6+%E7%AC%AC9%E9%9B%86", "第9集"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, TitleFromURL(c.url), c.url)
	}
}

func TestNormalizedConvertsAllFields(t *testing.T) {
	r := Record{
		Title:        "第1集",
		Introduction: "宝可梦动画的开端。",
		Summary:      "小智开始了他的旅程。",
		MainEvents:   []string{"小智得到皮卡丘", "火箭队登场"},
		SourceURL:    "https://wiki.52poke.com/wiki/x",
	}

	n := r.Normalized()

	assert.Equal(t, "第1集", n.Title)
	assert.Equal(t, "寶可夢動畫的開端。", n.Introduction)
	assert.Equal(t, "小智開始了他的旅程。", n.Summary)
	assert.Equal(t, []string{"小智得到皮卡丘", "火箭隊登場"}, n.MainEvents)
	assert.Equal(t, r.SourceURL, n.SourceURL)
}

func TestNormalizedDoesNotMutateReceiver(t *testing.T) {
	r := Record{Summary: "旅程", MainEvents: []string{"火箭队"}}
	_ = r.Normalized()

	assert.Equal(t, "旅程", r.Summary)
	assert.Equal(t, []string{"火箭队"}, r.MainEvents)
}

func TestNormalizedIdempotent(t *testing.T) {
	r := Record{
		Title:      "第5集",
		Summary:    "宝可梦与训练家",
		MainEvents: []string{"小刚加入队伍"},
	}

	once := r.Normalized()
	twice := once.Normalized()

	assert.Equal(t, once, twice)
}

func TestNormalizedPassesThroughNonChinese(t *testing.T) {
	r := Record{Title: "EP001 - Pokemon, I Choose You! (1997)"}

	assert.Equal(t, r.Title, r.Normalized().Title)
}

func TestNormalizedEmptyRecord(t *testing.T) {
	n := Record{SourceURL: "https://example.com"}.Normalized()

	assert.Empty(t, n.Title)
	assert.Nil(t, n.MainEvents)
	assert.Equal(t, "https://example.com", n.SourceURL)
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const episodeURL = "https://wiki.52poke.com/wiki/%E5%AE%9D%E5%8F%AF%E6%A2%A6_%E7%AC%AC1%E9%9B%86"

const fullPage = `<html><body>
<h1 id="firstHeading">宝可梦 第1集</h1>
<div id="mw-content-text">
<p></p>
<p><b>梦的开始</b>是<a href="/wiki/x">宝可梦动画</a>的第1集。</p>
<h2><span class="mw-headline" id=".E6.91.98.E8.A6.81">摘要</span><span class="mw-editsection">[编辑]</span></h2>
<p>小智睡过了头。</p>
<p>他在真新镇得到了皮卡丘。</p>
<h2><span class="mw-headline" id=".E4.B8.BB.E8.A6.81.E4.BA.8B.E4.BB.B6">主要事件</span></h2>
<ul>
<li>小智得到<a href="/wiki/pikachu">皮卡丘</a></li>
<li>小智离开真新镇</li>
</ul>
<h2><span class="mw-headline" id="登场人物">登场人物</span></h2>
<p>小智、花子。</p>
</div>
</body></html>`

func TestExtractFullPage(t *testing.T) {
	rec := New(Headings{}).Extract(fullPage, episodeURL)

	assert.Equal(t, "第1集", rec.Title)
	assert.Equal(t, "梦的开始是宝可梦动画的第1集。", rec.Introduction)
	assert.Equal(t, "小智睡过了头。\n他在真新镇得到了皮卡丘。", rec.Summary)
	assert.Equal(t, []string{"小智得到皮卡丘", "小智离开真新镇"}, rec.MainEvents)
	assert.Equal(t, episodeURL, rec.SourceURL)
}

func TestExtractMatchesPlainAnchorIDs(t *testing.T) {
	page := `<html><body>
<p>引言。</p>
<h2><span class="mw-headline" id="摘要">摘要</span></h2>
<p>概要段落。</p>
</body></html>`

	rec := New(Headings{}).Extract(page, episodeURL)

	assert.Equal(t, "概要段落。", rec.Summary)
}

func TestExtractMatchesHeadingTextWithEditLink(t *testing.T) {
	page := `<html><body>
<h2>主要事件<span class="mw-editsection">[编辑]</span></h2>
<ul><li>事件一</li></ul>
</body></html>`

	rec := New(Headings{}).Extract(page, episodeURL)

	assert.Equal(t, []string{"事件一"}, rec.MainEvents)
}

func TestExtractMissingSections(t *testing.T) {
	page := `<html><body>
<h1>宝可梦 第10集</h1>
<p>只有引言。</p>
</body></html>`

	rec := New(Headings{}).Extract(page, "https://wiki.52poke.com/wiki/other")

	assert.Equal(t, "宝可梦 第10集", rec.Title, "falls back to h1 when URL has no episode marker")
	assert.Equal(t, "只有引言。", rec.Introduction)
	assert.Empty(t, rec.Summary)
	assert.Empty(t, rec.MainEvents)
}

func TestExtractMissingMainEventsHeading(t *testing.T) {
	page := `<html><body>
<p>引言。</p>
<h2><span id=".E6.91.98.E8.A6.81">摘要</span></h2>
<p>概要。</p>
</body></html>`

	rec := New(Headings{}).Extract(page, episodeURL)

	assert.Equal(t, "概要。", rec.Summary)
	assert.Empty(t, rec.MainEvents)
}

func TestExtractHeadingWithoutList(t *testing.T) {
	page := `<html><body>
<h2><span id="主要事件">主要事件</span></h2>
<p>没有列表。</p>
</body></html>`

	rec := New(Headings{}).Extract(page, episodeURL)

	assert.Empty(t, rec.MainEvents)
}

func TestExtractEmptyAndGarbageInput(t *testing.T) {
	for _, raw := range []string{"", "<<<<not html>>>>", "\x00\x01\x02"} {
		rec := New(Headings{}).Extract(raw, episodeURL)

		assert.Equal(t, episodeURL, rec.SourceURL)
		assert.Equal(t, "第1集", rec.Title, "URL-derived title survives bad pages")
		assert.Empty(t, rec.Summary)
	}
}

func TestExtractCustomSynonyms(t *testing.T) {
	page := `<html><body>
<h2><span id="剧情">剧情</span></h2>
<p>改版后的概要。</p>
</body></html>`

	ex := New(Headings{Summary: []string{"剧情"}})
	rec := ex.Extract(page, episodeURL)

	assert.Equal(t, "改版后的概要。", rec.Summary)
}

func TestExtractPreservesEventOrder(t *testing.T) {
	page := `<html><body>
<h2><span id="主要事件">主要事件</span></h2>
<ul>
<li>丙</li>
<li>甲</li>
<li>乙</li>
</ul>
</body></html>`

	rec := New(Headings{}).Extract(page, episodeURL)

	require.Equal(t, []string{"丙", "甲", "乙"}, rec.MainEvents)
}

func TestDecodeAnchor(t *testing.T) {
	assert.Equal(t, "摘要", decodeAnchor(".E6.91.98.E8.A6.81"))
	assert.Equal(t, "主要事件", decodeAnchor(".E4.B8.BB.E8.A6.81.E4.BA.8B.E4.BB.B6"))
	assert.Equal(t, "plain_id", decodeAnchor("plain_id"))
	assert.Equal(t, "v1.5", decodeAnchor("v1.5"), "undecodable ids pass through")
}

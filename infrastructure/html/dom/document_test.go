package dom

import (
	"strings"
	"testing"
)

const sample = `<html><head>
<meta property="og:title" content="タイトル | サイト">
</head><body>
<div class="body"><p>今日は<ruby>天気<rt>てんき</rt></ruby>です。</p><!-- note --><p>二つ目</p></div>
<div class="raw">一行目<br>二行目<br><br>三段落<script>var x;</script></div>
</body></html>`

func TestDocument_SelectFirstAndAttr(t *testing.T) {
	doc, err := ParseString(sample)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	meta, ok := doc.SelectFirst(`meta[property="og:title"]`)
	if !ok {
		t.Fatal("og:title meta not found")
	}
	if v, _ := meta.Attr("content"); v != "タイトル | サイト" {
		t.Errorf("content = %q", v)
	}
	if _, ok := doc.SelectFirst("h1.missing"); ok {
		t.Error("SelectFirst should report a missing element")
	}
}

func TestElement_ChildNodesSkipComments(t *testing.T) {
	doc, _ := ParseString(sample)
	body, ok := doc.SelectFirst("div.body")
	if !ok {
		t.Fatal("div.body not found")
	}

	children := body.ChildNodes()
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}

	p := children[0].ChildNodes()
	if len(p) != 3 {
		t.Fatalf("got %d nodes in first paragraph, want 3", len(p))
	}
	if !p[0].IsText() || p[0].Text() != "今日は" {
		t.Errorf("first node = %q (text=%v)", p[0].Text(), p[0].IsText())
	}
	if p[1].Tag() != "ruby" {
		t.Errorf("second node tag = %q, want ruby", p[1].Tag())
	}
	rt, ok := p[1].SelectFirst("rt")
	if !ok || rt.Text() != "てんき" {
		t.Error("rt not found inside ruby")
	}
	if p[0].Select("rt") != nil {
		t.Error("text nodes have no descendants")
	}
}

func TestElement_RawTextKeepsLineBreaks(t *testing.T) {
	doc, _ := ParseString(sample)
	raw, _ := doc.SelectFirst("div.raw")

	text := raw.RawText()
	if strings.Contains(text, "var x") {
		t.Error("RawText should skip script content")
	}
	if !strings.Contains(text, "二行目\n\n三段落") {
		t.Errorf("RawText = %q, want a blank line before 三段落", text)
	}
}

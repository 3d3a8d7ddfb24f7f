package adapters

import (
	"reflect"
	"testing"

	"yomu-news-api/core/domain"
	"yomu-news-api/infrastructure/html/dom"
)

func text(s string) domain.ContentNode { return domain.NewText(s) }

func rb(kanji, reading string) domain.ContentNode {
	n, _ := domain.NewRuby(kanji, reading)
	return n
}

func TestExtractInlineFurigana(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []domain.ContentNode
	}{
		{
			name: "ideograph run before paren",
			in:   "今日は天気（てんき）がいい",
			want: []domain.ContentNode{text("今日は"), rb("天気", "てんき"), text("がいい")},
		},
		{
			name: "kana before paren is not a reading",
			in:   "これは（ちゅうい）です",
			want: []domain.ContentNode{text("これは（ちゅうい）です")},
		},
		{
			name: "annotation at the start",
			in:   "東京（とうきょう）へ",
			want: []domain.ContentNode{rb("東京", "とうきょう"), text("へ")},
		},
		{
			name: "two annotations",
			in:   "大雨（おおあめ）で電車（でんしゃ）",
			want: []domain.ContentNode{rb("大雨", "おおあめ"), text("で"), rb("電車", "でんしゃ")},
		},
		{
			name: "unclosed paren stays text",
			in:   "日本（にほん",
			want: []domain.ContentNode{text("日本（にほん")},
		},
		{
			name: "non-kana paren content stays text",
			in:   "首相（69）が",
			want: []domain.ContentNode{text("首相（69）が")},
		},
		{
			name: "sentence split after punctuation",
			in:   "雨（あめ）です。雪（ゆき）",
			want: []domain.ContentNode{rb("雨", "あめ"), text("です。"), rb("雪", "ゆき")},
		},
		{
			name: "empty",
			in:   "",
			want: []domain.ContentNode{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractInlineFurigana(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractInlineFurigana(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractInlineFurigana_IdeographRunOnly(t *testing.T) {
	// 晴れ: only the trailing ideograph run before the paren is the base text
	got := ExtractInlineFurigana("あした晴（は）れ")
	want := []domain.ContentNode{text("あした"), rb("晴", "は"), text("れ")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNodeBuilder_SplitsSentencesKeepingClosingQuotes(t *testing.T) {
	var b nodeBuilder
	b.text("A。B！C")
	b.text("「はい。」と言った")
	want := []domain.ContentNode{text("A。"), text("B！"), text("C"), text("「はい。」"), text("と言った")}
	if got := b.result(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestExtractRubyNodes(t *testing.T) {
	doc, err := dom.ParseString(`<p>
		<span class="color1"><ruby>大雪<rt>おおゆき</rt></ruby></span>で
		<a class="dicWin" href="#"><ruby><rb>電車</rb><rp>(</rp><rt>でんしゃ</rt><rp>)</rp></ruby></a>が止まりました。
		<ruby>空<rt></rt></ruby>
	</p>`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	p, _ := doc.SelectFirst("p")

	got := ExtractRubyNodes(p)
	want := []domain.ContentNode{
		rb("大雪", "おおゆき"),
		text("で"),
		rb("電車", "でんしゃ"),
		text("が止まりました。"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractRubyNodes = %+v, want %+v", got, want)
	}
}

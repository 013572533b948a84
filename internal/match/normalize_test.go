package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePipeline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"fullwidth ascii", "ＡＢＣ１２３", "abc123"},
		{"latin case", "Tokyo TRADING", "tokyo trading"},
		{"katakana to hiragana", "サンプル", "さんぷる"},
		{"halfwidth katakana", "ｻﾝﾌﾟﾙ", "さんぷる"},
		{"long vowel mark kept", "データー", "でーたー"},
		{"kabushiki long form", "〇〇株式会社", "〇〇"},
		{"kabushiki paren", "〇〇(株)", "〇〇"},
		{"kabushiki fullwidth paren", "〇〇（株）", "〇〇"},
		{"kabushiki circled", "〇〇㈱", "〇〇"},
		{"yugen long form", "△△有限会社", "△△"},
		{"yugen circled", "△△㈲", "△△"},
		{"godo gaisha", "合同会社ほげ", "ほげ"},
		{"latin co ltd", "Sample Co., Ltd.", "sample"},
		{"latin inc", "Sample Inc.", "sample"},
		{"latin holdings", "Sample Holdings", "sample"},
		{"only legal form", "株式会社", ""},
		{"symbols stripped without space", "エヌ・ティ・ティ", "えぬてぃてぃ"},
		{"slash and dash", "A／B-C", "abc"},
		{"leading cross", "×サンプル", "さんぷる"},
		{"whitespace collapsed", "  あ　 い  ", "あ い"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", "サンプル商事株式会社", "ＡＢＣ Holdings", "エヌ・ティ・ティ",
		"×合同会社テスト／開発", "営業部（第２）", "Sample Co., Ltd.",
	}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}

func TestNormalizeScriptAndWidthInvariance(t *testing.T) {
	// 全角/半角・カタカナ/ひらがなの違いは正準形に影響しない
	assert.Equal(t, Normalize("abc"), Normalize("ＡＢＣ"))
	assert.Equal(t, Normalize("さんぷるしょうじ"), Normalize("サンプルショウジ"))
	assert.Equal(t, Normalize("〇〇(株)"), Normalize("〇〇株式会社"))
	assert.Equal(t, Normalize("〇〇㈱"), Normalize("〇〇株式会社"))
}

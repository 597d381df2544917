package i18n

import "strings"

// Language 描述行标签使用的语言，使用简短代码（en、ja、zh）。
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageJapanese Language = "ja"
	LanguageChinese  Language = "zh"

	// DefaultLanguage 未配置时的默认语言。
	DefaultLanguage = LanguageEnglish
)

// Normalize 将用户输入的语言值转换为统一的语言代码。
// 空字符串回退到默认语言，未知值原样透传。
func Normalize(value string) Language {
	lang := strings.ToLower(strings.TrimSpace(value))
	switch lang {
	case "":
		return DefaultLanguage
	case "en", "en-us", "en_us", "en-gb", "english":
		return LanguageEnglish
	case "ja", "ja-jp", "ja_jp", "jp", "japanese", "日本語":
		return LanguageJapanese
	case "zh", "zh-cn", "zh_cn", "zh-hans", "cn", "chinese", "中文":
		return LanguageChinese
	default:
		return Language(lang)
	}
}

// Code 返回规范化后的语言代码，空值回退到默认语言。
func (l Language) Code() string {
	if l == "" {
		return string(DefaultLanguage)
	}
	return string(Normalize(string(l)))
}

// DisplayName 返回适合展示的语言名称；未知语言直接返回原始代码。
func (l Language) DisplayName() string {
	switch Normalize(string(l)) {
	case LanguageEnglish:
		return "English"
	case LanguageJapanese:
		return "日本語"
	case LanguageChinese:
		return "中文"
	default:
		return strings.TrimSpace(string(l))
	}
}

// Labels 是商品行上的固定文案。
type Labels struct {
	Image    string
	Name     string
	Category string
	Empty    string
}

var labels = map[Language]Labels{
	LanguageEnglish:  {Image: "Image", Name: "Name", Category: "Category", Empty: "No items"},
	LanguageJapanese: {Image: "画像", Name: "商品名", Category: "カテゴリ", Empty: "商品がありません"},
	LanguageChinese:  {Image: "图片", Name: "名称", Category: "分类", Empty: "暂无商品"},
}

// LabelsFor 返回对应语言的文案，未知语言使用英文。
func LabelsFor(l Language) Labels {
	if v, ok := labels[Normalize(string(l))]; ok {
		return v
	}
	return labels[LanguageEnglish]
}

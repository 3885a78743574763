package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// 支持的语言
const (
	LocaleEN = "en-US"
	LocaleZH = "zh-CN"
)

// DefaultLocale 未指定语言时的默认值
const DefaultLocale = LocaleEN

var supportedTags = []language.Tag{
	language.AmericanEnglish,
	language.SimplifiedChinese,
}

var matcher = language.NewMatcher(supportedTags)

var tagLocales = map[language.Tag]string{
	language.AmericanEnglish:   LocaleEN,
	language.SimplifiedChinese: LocaleZH,
}

// ResolveLocale 解析请求语言
// 优先 X-Locale 头，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if explicit := strings.TrimSpace(c.GetHeader("X-Locale")); explicit != "" {
		return NormalizeLocale(explicit)
	}
	accept := strings.TrimSpace(c.GetHeader("Accept-Language"))
	if accept == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	return matchLocale(tags...)
}

// NormalizeLocale 将任意语言标签归一为支持的语言
func NormalizeLocale(raw string) string {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return DefaultLocale
	}
	return matchLocale(tag)
}

func matchLocale(tags ...language.Tag) string {
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	if locale, ok := tagLocales[supportedTags[index]]; ok {
		return locale
	}
	return DefaultLocale
}

// T 翻译消息 key，缺失时回退到默认语言，再回退到 key 本身
func T(locale, key string) string {
	if catalog, ok := catalogs[locale]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	ContextLanguage = "lang"
	DefaultLanguage = "hr"
)

var languageMatcher = language.NewMatcher([]language.Tag{language.Croatian, language.English})

// LanguageMiddleware picks hr or en for the request: an explicit ?lang= wins,
// then Accept-Language, then Croatian.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextLanguage, negotiate(c.Query("lang"), c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func negotiate(query, acceptLanguage string) string {
	switch query {
	case "hr", "en":
		return query
	}
	if acceptLanguage == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, idx, conf := languageMatcher.Match(tags...)
	if conf == language.No {
		return DefaultLanguage
	}
	if idx == 1 {
		return "en"
	}
	return "hr"
}

// Language returns the negotiated language, Croatian when the middleware did not run.
func Language(c *gin.Context) string {
	if lang := c.GetString(ContextLanguage); lang != "" {
		return lang
	}
	return DefaultLanguage
}

package normalize

import (
	"regexp"
	"strings"

	"github.com/gyeh/hisdash/internal/model"
)

var codeJunk = regexp.MustCompile(`[^A-Z0-9.]`)

// DiseaseCode upper-cases an ICD-10 style code and strips everything but
// letters, digits and the dot ("k29.0 " -> "K29.0"). Empty input yields
// model.NoDiseaseCode.
func DiseaseCode(v any) string {
	s := strings.ToUpper(Text(v))
	if s == "" || s == model.NoDiseaseCode {
		return model.NoDiseaseCode
	}
	s = codeJunk.ReplaceAllString(s, "")
	if s == "" {
		return model.NoDiseaseCode
	}
	return s
}

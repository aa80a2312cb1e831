package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

// Source languages offered by the translation service. Models are loaded
// lazily, one per language, on first use.
var candidates = []lingua.Language{
	lingua.English, lingua.Japanese, lingua.Chinese, lingua.Korean,
	lingua.French, lingua.German, lingua.Spanish, lingua.Portuguese,
	lingua.Italian, lingua.Dutch, lingua.Russian, lingua.Arabic,
	lingua.Polish, lingua.Swedish, lingua.Danish, lingua.Finnish,
	lingua.Bokmal, lingua.Indonesian, lingua.Malay, lingua.Thai,
	lingua.Vietnamese, lingua.Turkish, lingua.Greek, lingua.Hungarian,
	lingua.Czech, lingua.Romanian, lingua.Bulgarian, lingua.Hebrew,
	lingua.Ukrainian,
}

// Codes the service spells differently from ISO 639-1.
var serviceCodes = map[string]string{
	"nb": "no",
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

const minLetters = 6

// Detect returns the service language code of text, or "" when the sample is
// too short or ambiguous.
func Detect(text string) string {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return ""
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < minLetters {
		return ""
	}

	language, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return ""
	}

	code := strings.ToLower(language.IsoCode639_1().String())
	if len(code) != 2 {
		return ""
	}
	if mapped, ok := serviceCodes[code]; ok {
		return mapped
	}
	return code
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidates...).
			Build()
	})
	return detector
}

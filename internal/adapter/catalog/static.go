package catalog

import "github.com/statsmaths/fasttextm/internal/domain"

// Static is the built-in catalog of languages for which aligned fastText
// wiki embeddings are published. The list is fixed at build time and
// ordered by language code.
type Static struct{}

func NewStatic() *Static {
	return &Static{}
}

func (Static) Languages() []domain.Language {
	out := make([]domain.Language, len(languages))
	copy(out, languages)
	return out
}

var languages = []domain.Language{
	{Code: "af", Name: "Afrikaans"},
	{Code: "ar", Name: "Arabic"},
	{Code: "bg", Name: "Bulgarian"},
	{Code: "bn", Name: "Bengali"},
	{Code: "bs", Name: "Bosnian"},
	{Code: "ca", Name: "Catalan"},
	{Code: "cs", Name: "Czech"},
	{Code: "da", Name: "Danish"},
	{Code: "de", Name: "German"},
	{Code: "el", Name: "Greek"},
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Spanish"},
	{Code: "et", Name: "Estonian"},
	{Code: "fa", Name: "Persian"},
	{Code: "fi", Name: "Finnish"},
	{Code: "fr", Name: "French"},
	{Code: "he", Name: "Hebrew"},
	{Code: "hi", Name: "Hindi"},
	{Code: "hr", Name: "Croatian"},
	{Code: "hu", Name: "Hungarian"},
	{Code: "id", Name: "Indonesian"},
	{Code: "it", Name: "Italian"},
	{Code: "ko", Name: "Korean"},
	{Code: "lt", Name: "Lithuanian"},
	{Code: "lv", Name: "Latvian"},
	{Code: "mk", Name: "Macedonian"},
	{Code: "ms", Name: "Malay"},
	{Code: "nl", Name: "Dutch"},
	{Code: "no", Name: "Norwegian"},
	{Code: "pl", Name: "Polish"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "ro", Name: "Romanian"},
	{Code: "ru", Name: "Russian"},
	{Code: "sk", Name: "Slovak"},
	{Code: "sl", Name: "Slovenian"},
	{Code: "sq", Name: "Albanian"},
	{Code: "sv", Name: "Swedish"},
	{Code: "ta", Name: "Tamil"},
	{Code: "th", Name: "Thai"},
	{Code: "tl", Name: "Tagalog"},
	{Code: "tr", Name: "Turkish"},
	{Code: "uk", Name: "Ukrainian"},
	{Code: "vi", Name: "Vietnamese"},
	{Code: "zh", Name: "Chinese"},
}

// Package i18n provides the message catalog for user-facing API errors.
// English is the default language; its translations are the exact strings
// the HTTP API is contracted to return.
package i18n

import (
	"sync"

	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"

	"github.com/Nofexxx/pet-f/internal/logger"
)

// Supported languages.
const (
	LangEnUS = "en-US"
	LangRuRU = "ru-RU"
)

var (
	instance *I18n
	once     sync.Once

	translations = map[string]map[string]string{
		LangEnUS: {
			"success":               "Success",
			"internal_server_error": "Internal server error",
			"invalid_params":        "Invalid parameters",
			"not_found":             "Resource not found",

			"no_file_found":       "No file found",
			"no_file_name":        "No file name",
			"no_file_specified":   "No file specified",
			"file_already_exists": "File already exists",
			"file_parse_failed":   "File could not be parsed",
			"file_not_found":      "File not found",
			"tag_not_found":       "Tag not found",

			"database_query":       "Database query error",
			"database_insert":      "Database insert error",
			"database_transaction": "Database transaction error",

			"unknown_error": "Unknown error",
		},
		LangRuRU: {
			"success":               "Успешно",
			"internal_server_error": "Внутренняя ошибка сервера",
			"invalid_params":        "Неверные параметры",
			"not_found":             "Ресурс не найден",

			"no_file_found":       "Файл не передан",
			"no_file_name":        "Не указано имя файла",
			"no_file_specified":   "Не указан файл",
			"file_already_exists": "Файл уже существует",
			"file_parse_failed":   "Не удалось разобрать файл",
			"file_not_found":      "Файл не найден",
			"tag_not_found":       "Тег не найден",

			"database_query":       "Ошибка запроса к базе данных",
			"database_insert":      "Ошибка вставки в базу данных",
			"database_transaction": "Ошибка транзакции базы данных",

			"unknown_error": "Неизвестная ошибка",
		},
	}
)

// I18n resolves message keys to translated strings.
type I18n struct {
	translators map[string]ut.Translator
	defaultLang string
}

// GetInstance returns the I18n singleton.
func GetInstance() *I18n {
	once.Do(func() {
		instance = &I18n{
			translators: make(map[string]ut.Translator),
			defaultLang: LangEnUS,
		}
		instance.initTranslators()
	})
	return instance
}

// initTranslators registers the supported locales.
func (i *I18n) initTranslators() {
	enUS := en_US.New()
	ruRU := ru.New()
	uni := ut.New(enUS, enUS, ruRU)

	langMappings := map[string]string{
		LangEnUS: "en_US",
		LangRuRU: "ru",
	}

	for ourLang, localeLang := range langMappings {
		trans, found := uni.GetTranslator(localeLang)
		if !found {
			logger.Errorf("failed to init translator for %s (locale %s)", ourLang, localeLang)
			continue
		}
		i.translators[ourLang] = trans
	}
}

// Translate resolves a message key for the given language, falling back to
// the default language and finally to the key itself.
func (i *I18n) Translate(key, lang string) string {
	if _, exists := i.translators[lang]; !exists {
		lang = i.defaultLang
	}

	if translation, found := translations[lang][key]; found {
		return translation
	}

	if lang != i.defaultLang {
		if translation, found := translations[i.defaultLang][key]; found {
			return translation
		}
	}

	logger.Warnf("missing translation: key=%s lang=%s", key, lang)
	return key
}

// SetDefaultLanguage changes the fallback language.
func (i *I18n) SetDefaultLanguage(lang string) {
	i.defaultLang = lang
}

// GetDefaultLanguage returns the fallback language.
func (i *I18n) GetDefaultLanguage() string {
	return i.defaultLang
}

// IsSupportedLanguage reports whether a translator exists for lang.
func (i *I18n) IsSupportedLanguage(lang string) bool {
	_, exists := i.translators[lang]
	return exists
}

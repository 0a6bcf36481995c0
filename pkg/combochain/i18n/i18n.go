package i18n

import (
	"embed"
	"encoding/json"
	"path"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var embeddedLocales embed.FS

var (
	mu sync.RWMutex
	i  *I18N
)

type I18N struct {
	localizer *i18n.Localizer
	bundle    *i18n.Bundle
}

type MessageFile struct {
	Name    string
	Content []byte
}

func newBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

func install(bundle *i18n.Bundle, langs ...string) {
	langs = append(langs, language.English.String())
	localizer := i18n.NewLocalizer(bundle, langs...)

	mu.Lock()
	i = &I18N{localizer: localizer, bundle: bundle}
	mu.Unlock()
}

func current() *I18N {
	mu.RLock()
	defer mu.RUnlock()
	return i
}

// InitDefault loads the bundled English and Spanish hint messages
func InitDefault() error {
	entries, err := embeddedLocales.ReadDir("locales")
	if err != nil {
		return err
	}

	files := make([]MessageFile, 0, len(entries))
	for _, entry := range entries {
		content, err := embeddedLocales.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return err
		}
		files = append(files, MessageFile{Name: entry.Name(), Content: content})
	}

	return InitI18NFromBytes(files)
}

func InitI18N(messageFilePaths []string) error {
	bundle := newBundle()

	for _, messageFile := range messageFilePaths {
		_, err := bundle.LoadMessageFile(messageFile)
		if err != nil {
			return err
		}
	}

	install(bundle)
	return nil
}

func InitI18NFromBytes(messageFiles []MessageFile) error {
	bundle := newBundle()

	for _, messageFile := range messageFiles {
		_, err := bundle.ParseMessageFileBytes(messageFile.Content, messageFile.Name)
		if err != nil {
			return err
		}
	}

	install(bundle)
	return nil
}

// SetLanguage switches the active language, English remains the fallback
func SetLanguage(lang language.Tag) {
	cur := current()
	if cur == nil {
		return
	}
	install(cur.bundle, lang.String())
}

func SetWithCode(code string) error {
	lang, err := language.Parse(code)
	if err != nil {
		return err
	}
	SetLanguage(lang)
	return nil
}

// Lookup returns the localized string for key and whether it was found
func Lookup(key string) (string, bool) {
	cur := current()
	if cur == nil {
		return "", false
	}

	msg, err := cur.localizer.Localize(&i18n.LocalizeConfig{
		MessageID: key,
	})
	if err != nil {
		return "", false
	}
	return msg, true
}

// GetString retrieves a localized string by key
// If the key is not found, it returns the key itself as fallback
func GetString(key string) string {
	if msg, ok := Lookup(key); ok {
		return msg
	}
	return key
}

// Translate resolves a message ID, returning an empty string when it is unknown.
// Its signature matches hints.Translator.
func Translate(key string) string {
	msg, _ := Lookup(key)
	return msg
}

// GetStringWithData retrieves a localized string by key with template data
func GetStringWithData(key string, templateData map[string]interface{}) string {
	cur := current()
	if cur == nil {
		return key
	}

	msg, err := cur.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: templateData,
	})
	if err != nil {
		return key
	}
	return msg
}

// GetPluralString retrieves a localized string with plural support
// count determines which plural form to use and is available to the template as .Count
func GetPluralString(key string, count int) string {
	cur := current()
	if cur == nil {
		return key
	}

	msg, err := cur.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		PluralCount:  count,
		TemplateData: map[string]interface{}{"Count": count},
	})
	if err != nil {
		return key
	}
	return msg
}

// Message is an alias for i18n.Message to avoid requiring users to import go-i18n directly
type Message = i18n.Message

// Localize retrieves a localized string using the go-i18n struct pattern.
// The message's Other field is returned when no translation exists.
func Localize(message *Message, templateData map[string]interface{}) string {
	if message == nil {
		return "I18N Error: nil message"
	}

	cur := current()
	if cur == nil {
		return message.Other
	}

	config := &i18n.LocalizeConfig{
		DefaultMessage: message,
	}

	if templateData != nil {
		config.TemplateData = templateData
	}

	msg, err := cur.localizer.Localize(config)
	if err != nil {
		if message.Other != "" {
			return message.Other
		}
		return "I18N Error"
	}
	return msg
}

package intl

import (
	"context"
	"errors"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/mnicoli13/programmazione-web-2/pkg/constants"
)

var ErrNoLocalizer = errors.New("localizer not found in context")

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
}

// SupportedLanguages lists the languages the application ships locale
// files for. Italian first: it is the default UI language.
var SupportedLanguages = []SupportedLanguage{
	{
		Code:        "it",
		VerboseName: "Italiano",
		Tag:         language.Italian,
	},
	{
		Code:        "en",
		VerboseName: "English",
		Tag:         language.English,
	},
}

func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, constants.LocalizerKey, l)
}

// UseLocalizer returns the localizer from the context.
// If the localizer is not found, the second return value will be false.
func UseLocalizer(ctx context.Context) (*i18n.Localizer, bool) {
	l, ok := ctx.Value(constants.LocalizerKey).(*i18n.Localizer)
	return l, ok
}

// MustT localizes the given message ID and panics if no localizer is
// attached to the context.
func MustT(ctx context.Context, msgID string) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		panic(ErrNoLocalizer)
	}
	return l.MustLocalize(&i18n.LocalizeConfig{MessageID: msgID})
}

// T localizes the message ID, falling back to the default when the
// message or the localizer is missing.
func T(ctx context.Context, msgID, defaultMessage string) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		return defaultMessage
	}
	out, err := l.Localize(&i18n.LocalizeConfig{
		MessageID: msgID,
		DefaultMessage: &i18n.Message{
			ID:    msgID,
			Other: defaultMessage,
		},
	})
	if err != nil {
		return defaultMessage
	}
	return out
}

package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	AppKey       ContextKey = "app"
	DBKey        ContextKey = "db"
	LoggerKey    ContextKey = "logger"
	ParamsKey    ContextKey = "params"
	UserKey      ContextKey = "user"
	SessionKey   ContextKey = "session"
	LocalizerKey ContextKey = "localizer"
	RequestStart ContextKey = "request-start"
)

// Validate is the shared validator instance used by every DTO.
var Validate = validator.New()

package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/mnicoli13/programmazione-web-2/pkg/logging"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		panic(err)
	}
	return c
})

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"gestione_veicoli"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type Configuration struct {
	Database DatabaseOptions

	ServerPort       int           `env:"PORT" envDefault:"3200"`
	SocketAddress    string        `env:"-"`
	GoAppEnvironment string        `env:"GO_APP_ENV" envDefault:"development"`
	Domain           string        `env:"DOMAIN" envDefault:"localhost"`
	Origin           string        `env:"ORIGIN" envDefault:"http://localhost:3200"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"error"`
	LogPath          string        `env:"LOG_PATH" envDefault:"./logs/app.log"`
	SessionDuration  time.Duration `env:"SESSION_DURATION" envDefault:"720h"`
	// Session lifetime when the user checks "remember me" on login.
	RememberDuration time.Duration `env:"REMEMBER_DURATION" envDefault:"720h"`
	// The server looks for this header in the request; if it's absent a
	// random uuidv4 is generated.
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	// The server looks for this header in the request; if it's absent
	// request.RemoteAddr is used.
	RealIPHeader string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`
	// Session ID cookie key
	SidCookieKey string `env:"SID_COOKIE_KEY" envDefault:"sid"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	logger *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func (c *Configuration) Scheme() string {
	if c.GoAppEnvironment == Production { // assume 'https' on production mode
		return "https"
	}
	return "http"
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logger = logger

	c.Database.Opts = c.Database.ConnectionString()
	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}

	if os.Getenv("ORIGIN") == "" {
		if c.GoAppEnvironment == "development" {
			c.Origin = fmt.Sprintf("%s://%s:%d", c.Scheme(), c.Domain, c.ServerPort)
		} else {
			c.Origin = fmt.Sprintf("%s://%s", c.Scheme(), c.Domain)
		}
	}

	return nil
}

package cryptopallab

import (
	"os"
	"strconv"
	"strings"

	"github.com/raykavin/cryptopallab/pkg/logger"
	"github.com/raykavin/cryptopallab/pkg/logger/logrus"
	"github.com/raykavin/cryptopallab/pkg/logger/zerolog"
)

const (
	// Default configuration values
	defaultLogLevel      = "info"
	defaultLogTimeFormat = "2006-01-02 15:04:05"
	defaultLogColored    = "true"
	defaultLogJSON       = "false"
	defaultLogBackend    = "zerolog"
)

// Environment variable names
const (
	envLogLevel      = "CRYPTOPALLAB_LOG_LEVEL"
	envLogTimeFormat = "CRYPTOPALLAB_LOG_TIME_FORMAT"
	envLogColor      = "CRYPTOPALLAB_LOG_COLOR"
	envLogJSON       = "CRYPTOPALLAB_LOG_JSON"
	envLogBackend    = "LOG_BACKEND"
)

// DefaultLog is the process logger, configured from the environment.
var DefaultLog logger.Logger

func init() {
	log, err := initLogger()
	if err != nil {
		panic(err)
	}
	DefaultLog = log
}

// initLogger creates the logger selected by LOG_BACKEND.
func initLogger() (logger.Logger, error) {
	level := getEnvWithDefault(envLogLevel, defaultLogLevel)
	timeFormat := getEnvWithDefault(envLogTimeFormat, defaultLogTimeFormat)

	colored, err := parseBoolEnv(envLogColor, defaultLogColored)
	if err != nil {
		return nil, err
	}

	jsonFormat, err := parseBoolEnv(envLogJSON, defaultLogJSON)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(getEnvWithDefault(envLogBackend, defaultLogBackend), "logrus") {
		return logrus.New(os.Stdout, logger.ParseLevel(level), timeFormat, jsonFormat), nil
	}

	zl, err := zerolog.New(level, timeFormat, colored, jsonFormat)
	if err != nil {
		return nil, err
	}
	return zerolog.NewAdapter(zl), nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key, defaultValue string) (bool, error) {
	return strconv.ParseBool(getEnvWithDefault(key, defaultValue))
}

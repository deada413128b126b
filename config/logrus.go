package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"real-time-messenger/config/common"
)

func NewLogger(cfg *common.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.000"})

	_, level := cfg.GetLogConfig()
	if parsed, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(parsed)
	}
	return log
}

func NewValidator() *validator.Validate {
	return validator.New()
}

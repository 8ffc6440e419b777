package main

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger prints printf-style progress messages for an operator watching the
// console.
type Logger struct {
	DebugMode bool

	sugar *zap.SugaredLogger
}

func NewLogger() *Logger {
	config := zap.NewDevelopmentConfig()
	config.DisableStacktrace = true
	config.DisableCaller = true

	l, err := config.Build()
	if err != nil {
		l = zap.NewNop()
	}

	return &Logger{sugar: l.Sugar()}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.DebugMode {
		l.sugar.Debug(fmt.Sprintf(format, args...))
	}
}

package logging

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

const (
	FATAL Level = iota
	ERROR
	WARNING
	INFO
	DEBUG
)

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case FATAL:
		return zapcore.FatalLevel
	case ERROR:
		return zapcore.ErrorLevel
	case WARNING:
		return zapcore.WarnLevel
	case DEBUG:
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func Debugf(msg string, args ...interface{}) {
	defaultLogBroker.logf(DEBUG, "", msg, args...)
}

func Infof(msg string, args ...interface{}) {
	defaultLogBroker.logf(INFO, "", msg, args...)
}

func Warnf(msg string, args ...interface{}) {
	defaultLogBroker.logf(WARNING, "", msg, args...)
}

func Errorf(msg string, args ...interface{}) {
	defaultLogBroker.logf(ERROR, "", msg, args...)
}

func Fatalf(msg string, args ...interface{}) {
	defaultLogBroker.logf(FATAL, "", msg, args...)
}

// Progress logs msg at debug level unless quiet is set. Long running
// steps call it repeatedly.
func Progress(msg string) {
	if defaultLogBroker.isQuiet() {
		return
	}
	defaultLogBroker.logf(DEBUG, "", "%s", msg)
}

func SetQuiet(quiet bool) {
	defaultLogBroker.SetQuiet(quiet)
}

// SetLevel sets the minimal level of the default logger. Unknown levels
// fall back to info.
func SetLevel(level string) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	defaultLogBroker.level.SetLevel(lvl)
}

type Logger struct {
	Component string
}

func (l *Logger) Print(args ...interface{}) {
	defaultLogBroker.logf(INFO, l.Component, "%s", fmt.Sprint(args...))
}

func (l *Logger) Printf(msg string, args ...interface{}) {
	defaultLogBroker.logf(INFO, l.Component, msg, args...)
}

func (l *Logger) Infof(msg string, args ...interface{}) {
	defaultLogBroker.logf(INFO, l.Component, msg, args...)
}

func (l *Logger) Debugf(msg string, args ...interface{}) {
	defaultLogBroker.logf(DEBUG, l.Component, msg, args...)
}

func (l *Logger) Fatal(args ...interface{}) {
	defaultLogBroker.logf(FATAL, l.Component, "%s", fmt.Sprint(args...))
}

func (l *Logger) Fatalf(msg string, args ...interface{}) {
	defaultLogBroker.logf(FATAL, l.Component, msg, args...)
}

func (l *Logger) Errorf(msg string, args ...interface{}) {
	defaultLogBroker.logf(ERROR, l.Component, msg, args...)
}

func (l *Logger) Warn(args ...interface{}) {
	defaultLogBroker.logf(WARNING, l.Component, "%s", fmt.Sprint(args...))
}

func (l *Logger) Warnf(msg string, args ...interface{}) {
	defaultLogBroker.logf(WARNING, l.Component, msg, args...)
}

func (l *Logger) Printfl(level Level, msg string, args ...interface{}) {
	defaultLogBroker.logf(level, l.Component, msg, args...)
}

func (l *Logger) StartStep(msg string) string {
	defaultLogBroker.startStep(Step{l.Component, msg})
	return msg
}

func (l *Logger) StopStep(msg string) {
	defaultLogBroker.stopStep(Step{l.Component, msg})
}

func NewLogger(component string) *Logger {
	return &Logger{component}
}

type Step struct {
	Component string
	Name      string
}

// LogBroker routes all component loggers into one zap logger and keeps
// the start times of running steps.
type LogBroker struct {
	mu    sync.Mutex
	zl    *zap.Logger
	level zap.AtomicLevel
	quiet bool
	steps map[Step]time.Time
}

func (l *LogBroker) SetQuiet(quiet bool) {
	l.mu.Lock()
	l.quiet = quiet
	l.mu.Unlock()
}

func (l *LogBroker) isQuiet() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.quiet
}

func (l *LogBroker) logger(component string) *zap.Logger {
	l.mu.Lock()
	zl := l.zl
	l.mu.Unlock()
	if component != "" {
		return zl.Named(component)
	}
	return zl
}

func (l *LogBroker) logf(level Level, component string, msg string, args ...interface{}) {
	l.log(level, component, fmt.Sprintf(msg, args...))
}

// callerSkip is the number of frames between log and the caller of a
// Logger method. Every log call goes through exactly one broker method
// and one exported function or method.
const callerSkip = 3

func (l *LogBroker) log(level Level, component string, msg string, fields ...zap.Field) {
	zl := l.logger(component).WithOptions(zap.AddCallerSkip(callerSkip))
	if ce := zl.Check(level.zapLevel(), msg); ce != nil {
		ce.Write(fields...)
	}
}

func (l *LogBroker) startStep(step Step) {
	l.mu.Lock()
	l.steps[step] = time.Now()
	l.mu.Unlock()
	l.log(INFO, step.Component, "[step] Starting: "+step.Name)
}

func (l *LogBroker) stopStep(step Step) {
	l.mu.Lock()
	startTime, ok := l.steps[step]
	delete(l.steps, step)
	l.mu.Unlock()
	if !ok {
		return
	}
	l.log(INFO, step.Component, "[step] Finished: "+step.Name,
		zap.Duration("took", time.Since(startTime)),
	)
}

// ReplaceLogger routes all log output to zl until the returned function
// is called.
func ReplaceLogger(zl *zap.Logger) func() {
	defaultLogBroker.mu.Lock()
	prev := defaultLogBroker.zl
	defaultLogBroker.zl = zl
	defaultLogBroker.mu.Unlock()
	return func() {
		defaultLogBroker.mu.Lock()
		defaultLogBroker.zl = prev
		defaultLogBroker.mu.Unlock()
	}
}

// Zap returns the zap logger of component for libraries that take one.
func Zap(component string) *zap.Logger {
	return defaultLogBroker.logger(component)
}

// Shutdown flushes buffered log output.
func Shutdown() {
	_ = defaultLogBroker.logger("").Sync()
}

var defaultLogBroker *LogBroker

func newConsoleLogger(level zap.AtomicLevel) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.Stamp)
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config := zap.Config{
		Level:            level,
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	zl, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return zl
}

func init() {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	defaultLogBroker = &LogBroker{
		zl:    newConsoleLogger(level),
		level: level,
		steps: make(map[Step]time.Time),
	}
}

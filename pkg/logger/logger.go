package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	permission = 0664
)

// Logger is the leveled logging interface accepted by packages in this
// module that emit their own diagnostics, such as
// [github.com/autolink/autolink.go/contrib/wslink].
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// LogBuild configures a zerolog-backed log destination.
type LogBuild struct {
	writer io.Writer
	path   string
}

// LogData is a zerolog-backed log destination. Its Log and Err methods
// match the supervisor's sink signature, so a LogData can be wired
// directly:
//
//	s.SetLogFunc(logData.Log)
//	s.SetErrorFunc(logData.Err)
type LogData struct {
	writer  io.Writer
	LogFile *os.File
	Logger  zerolog.Logger
}

func New() *LogBuild {
	return &LogBuild{}
}

// FromPath logs to the file at path, appending and creating as needed.
func (build *LogBuild) FromPath(path string) *LogBuild {
	build.path = path
	return build
}

// FromBuffer logs to w.
func (build *LogBuild) FromBuffer(w io.Writer) *LogBuild {
	build.writer = w
	return build
}

// Make builds the LogData. With neither a path nor a buffer configured
// it logs to os.Stdout.
func (build *LogBuild) Make() (logData *LogData, err error) {
	logData = new(LogData)
	logData.writer = os.Stdout
	if build.writer != nil {
		logData.writer = build.writer
	}
	if build.path != "" {
		logData.LogFile, err = os.OpenFile(build.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		logData.writer = zerolog.SyncWriter(logData.LogFile)
	}
	logData.Logger = zerolog.New(logData.writer).With().Timestamp().Logger()
	return
}

// Log writes msg at info level.
func (logData *LogData) Log(msg string) {
	logData.Logger.Info().Msg(msg)
}

// Err writes msg at error level.
func (logData *LogData) Err(msg string) {
	logData.Logger.Error().Msg(msg)
}

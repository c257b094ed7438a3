package logger

import (
	"EnvStore/internal/console"
	"EnvStore/internal/paths"
	"EnvStore/internal/version"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Helper to resolve message from any type to string
func resolveMsg(msg any) string {
	switch v := msg.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case []any:
		var parts []string
		for _, item := range v {
			parts = append(parts, resolveMsg(item))
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprint(v)
	}
}

func log(ctx context.Context, level slog.Level, msg any, args ...any) {
	logAt(ctx, time.Now(), level, msg, args...)
}

// logAt renders the message through the console tag parser and hands one
// record per line to the handler, so multi-line messages share a timestamp
// and every line resets colors before the next one starts.
func logAt(ctx context.Context, t time.Time, level slog.Level, msg any, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	msgStr := resolveMsg(msg)
	if len(args) > 0 && strings.Contains(msgStr, "%") {
		msgStr = fmt.Sprintf(msgStr, args...)
		args = nil
	}
	msgStr = console.Parse(msgStr)

	if !strings.Contains(msgStr, "\n") {
		r := slog.NewRecord(t, level, msgStr+console.CodeReset, 0)
		r.Add(args...)
		_ = h.Handle(ctx, r)
		return
	}

	for i, line := range strings.Split(msgStr, "\n") {
		r := slog.NewRecord(t, level, line+console.CodeReset, 0)
		if i == 0 {
			r.Add(args...)
		}
		_ = h.Handle(ctx, r)
	}
}

// Custom log levels
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
	LevelFatal  = slog.Level(12)
)

// LevelVar allows dynamic changing of the console log level
var LevelVar = new(slog.LevelVar)

// FileLevelVar allows dynamic changing of the log file level
var FileLevelVar = new(slog.LevelVar)

func init() {
	LevelVar.Set(LevelNotice)
	FileLevelVar.Set(LevelInfo)
}

// SetLevel changes the console level. The file level follows downward so a
// -x/--debug run captures trace detail in the log file too.
func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	if level < LevelInfo {
		FileLevelVar.Set(level)
	} else {
		FileLevelVar.Set(LevelInfo)
	}
}

// fileOnly is the file half of the fanout. Display echoes command output to
// it so the log file shows what the user actually saw.
var fileOnly slog.Handler

// logFile is the open handle behind fileOnly, kept so Cleanup can close it.
var logFile *os.File

// NewLogger builds the default logger: a colored console handler on stderr
// plus an uncolored file handler appending to the state directory, fanned
// out together.
func NewLogger() *slog.Logger {
	wStderr := os.Stderr

	stat, _ := wStderr.Stat()
	isTTY := (stat.Mode() & os.ModeCharDevice) != 0

	var (
		ansiReset  string
		ansiBlue   string
		ansiGreen  string
		ansiYellow string
		ansiRed    string
		ansiRedBg  string
	)

	if isTTY {
		ansiReset = console.CodeReset
		ansiBlue = console.CodeBlue
		ansiGreen = console.CodeGreen
		ansiYellow = console.CodeYellow
		ansiRed = console.CodeRed
		ansiRedBg = console.CodeRedBg + console.CodeWhite
	}

	replaceAttrConsole := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey {
			level := a.Value.Any().(slog.Level)
			switch level {
			case LevelTrace:
				a.Value = slog.StringValue(ansiBlue + "[TRACE ]" + ansiReset + "  ")
			case LevelDebug:
				a.Value = slog.StringValue(ansiBlue + "[DEBUG ]" + ansiReset + "  ")
			case LevelInfo:
				a.Value = slog.StringValue(ansiBlue + "[INFO  ]" + ansiReset + "  ")
			case LevelNotice:
				a.Value = slog.StringValue(ansiGreen + "[NOTICE]" + ansiReset + "  ")
			case LevelWarn:
				a.Value = slog.StringValue(ansiYellow + "[WARN  ]" + ansiReset + "  ")
			case LevelError:
				a.Value = slog.StringValue(ansiRed + "[ERROR ]" + ansiReset + "  ")
			case LevelFatal:
				a.Value = slog.StringValue(ansiRedBg + "[FATAL ]" + ansiReset + "  ")
			default:
				a.Value = slog.StringValue("[" + level.String() + "]")
			}
		}
		return a
	}

	consoleHandler := tint.NewHandler(wStderr, &tint.Options{
		Level:       LevelVar,
		TimeFormat:  "2006-01-02 15:04:05",
		NoColor:     !isTTY,
		ReplaceAttr: replaceAttrConsole,
	})

	handlers := []slog.Handler{consoleHandler}

	if wFile := openLogFile(); wFile != nil {
		replaceAttrFile := func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				level := a.Value.Any().(slog.Level)
				switch level {
				case LevelTrace:
					a.Value = slog.StringValue("[TRACE ]  ")
				case LevelDebug:
					a.Value = slog.StringValue("[DEBUG ]  ")
				case LevelInfo:
					a.Value = slog.StringValue("[INFO  ]  ")
				case LevelNotice:
					a.Value = slog.StringValue("[NOTICE]  ")
				case LevelWarn:
					a.Value = slog.StringValue("[WARN  ]  ")
				case LevelError:
					a.Value = slog.StringValue("[ERROR ]  ")
				case LevelFatal:
					a.Value = slog.StringValue("[FATAL ]  ")
				default:
					a.Value = slog.StringValue("[" + level.String() + "]")
				}
			}
			if a.Key == slog.MessageKey {
				a.Value = slog.StringValue(console.StripANSI(a.Value.String()))
			}
			return a
		}

		fileHandler := tint.NewHandler(wFile, &tint.Options{
			Level:       FileLevelVar,
			TimeFormat:  "2006-01-02 15:04:05",
			NoColor:     true,
			ReplaceAttr: replaceAttrFile,
		})
		handlers = append(handlers, fileHandler)
		fileOnly = fileHandler
		logFile = wFile
	}

	return slog.New(&FanoutHandler{handlers: handlers})
}

// Cleanup closes the log file. Records logged after this only reach the
// console.
func Cleanup() {
	if logFile == nil {
		return
	}
	fileOnly = nil
	_ = logFile.Close()
	logFile = nil
}

// openLogFile opens the append-mode log file in the state directory,
// creating the directory on first run. A nil return means console-only
// logging.
func openLogFile() *os.File {
	logFilePath := paths.GetLogFilePath()
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return nil
	}
	wFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return nil
	}
	return wFile
}

// FanoutHandler broadcasts records to multiple handlers
type FanoutHandler struct {
	handlers []slog.Handler
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: newHandlers}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: newHandlers}
}

// Global helpers for custom levels that don't satisfy standard slog methods
func Trace(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelError, msg, args...)
}

// Display prints command output to stdout regardless of the console level,
// without the level and timestamp decoration. The output still lands in the
// log file so the file shows what the user saw.
func Display(ctx context.Context, msg any, args ...any) {
	msgStr := resolveMsg(msg)
	if len(args) > 0 && strings.Contains(msgStr, "%") {
		msgStr = fmt.Sprintf(msgStr, args...)
	}

	// Printing to stdout would garble the alternate screen while the
	// editor is up; the file handler still gets the line.
	if !console.IsTUIEnabled() {
		console.Println(msgStr)
	}

	if fileOnly == nil || !fileOnly.Enabled(ctx, LevelInfo) {
		return
	}
	now := time.Now()
	for _, line := range strings.Split(console.Parse(msgStr), "\n") {
		r := slog.NewRecord(now, LevelInfo, line, 0)
		_ = fileOnly.Handle(ctx, r)
	}
}

func getSystemInfo() []string {
	var info []string

	info = append(info, fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", version.ApplicationName, version.Version))
	info = append(info, "")

	executable, _ := os.Executable()
	info = append(info, fmt.Sprintf("Currently running as: %s (PID %d)", executable, os.Getpid()))
	info = append(info, "")

	info = append(info, fmt.Sprintf("ARCH:             %s", runtime.GOARCH))
	info = append(info, fmt.Sprintf("OS:               %s", runtime.GOOS))

	base := filepath.Base(executable)
	dir := filepath.Dir(executable)
	info = append(info, fmt.Sprintf("SCRIPTPATH:       %s", dir))
	info = append(info, fmt.Sprintf("SCRIPTNAME:       %s", base))
	info = append(info, "")

	currentUser, err := user.Current()
	if err == nil {
		info = append(info, fmt.Sprintf("DETECTED_PUID:    %s", currentUser.Uid))
		info = append(info, fmt.Sprintf("DETECTED_UNAME:   %s", currentUser.Username))
		info = append(info, fmt.Sprintf("DETECTED_GID:     %s", currentUser.Gid))
		info = append(info, fmt.Sprintf("DETECTED_HOMEDIR: %s", currentUser.HomeDir))
	} else {
		info = append(info, fmt.Sprintf("User Info Error: %v", err))
	}

	return info
}

// Fatal logs a message at Fatal level with system information and a stack
// trace, then panics with FatalError so the main run loop can clean up.
func Fatal(ctx context.Context, msg any, args ...any) {
	FatalWithStackSkip(ctx, 1, msg, args...)
}

// FatalWithStackSkip is Fatal with skip extra stack frames hidden from the
// trace (used by panic recovery to hide its own plumbing).
func FatalWithStackSkip(ctx context.Context, skip int, msg any, args ...any) {
	now := time.Now()

	// 1. Gather Stack Frames
	pc := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pc)
	frames := runtime.CallersFrames(pc[:n])

	// 2. System Info
	var infoLines []string
	for _, i := range getSystemInfo() {
		if i != "" {
			infoLines = append(infoLines, "  "+i)
		} else {
			infoLines = append(infoLines, "")
		}
	}

	// 3. Stack Trace
	var allFrames []runtime.Frame
	for {
		frame, more := frames.Next()
		allFrames = append(allFrames, frame)
		if !more {
			break
		}
	}

	var traceLines []string
	maxIndex := len(allFrames) - 1
	width := len(fmt.Sprintf("%d", maxIndex))

	wd, _ := os.Getwd()

	// Iterate in reverse: Main (Last) -> Fatal (First)
	indent := ""
	for i := len(allFrames) - 1; i >= 0; i-- {
		frame := allFrames[i]

		// Try to make path relative to CWD
		if wd != "" {
			if rel, err := filepath.Rel(wd, frame.File); err == nil {
				if !strings.HasPrefix(rel, "..") && !strings.HasPrefix(rel, string(filepath.Separator)) {
					frame.File = "./" + filepath.ToSlash(rel)
				}
			}
		}

		suffix := ""
		arrowIndent := indent
		if i < len(allFrames)-1 {
			suffix = "└>"
			if len(indent) >= 2 {
				arrowIndent = indent[:len(indent)-2]
			}
		}

		fmtStr := fmt.Sprintf("{{_TraceFrameNumber_}}%%%dd{{|-|}}: %%s{{_TraceFrameLines_}}%%s{{|-|}}{{_TraceSourceFile_}}%%s{{|-|}}:{{_TraceLineNumber_}}%%d{{|-|}} ({{_TraceFunction_}}%%s{{|-|}})", width)

		line := fmt.Sprintf(fmtStr,
			i,
			arrowIndent,
			suffix,
			frame.File,
			frame.Line,
			filepath.Base(frame.Function),
		)

		traceLines = append(traceLines, "  "+line)
		indent += "  "
	}

	// 4. Assemble and log
	output := []any{
		"{{_TraceHeader_}}### BEGIN SYSTEM INFORMATION AND STACK TRACE ###{{|-|}}",
		infoLines,
		"",
		traceLines,
		"{{_TraceFooter_}}### END SYSTEM INFORMATION AND STACK TRACE ###{{|-|}}",
		"",
		msg,
		"",
		"{{_FatalFooter_}}Please let the dev know of this error.{{|-|}}",
		fmt.Sprintf("{{_FatalFooter_}}It has been appended to{{|-|}} '{{_File_}}%s{{|-|}}'.", paths.GetLogFilePath()),
	}

	logAt(ctx, now, LevelFatal, output, args...)

	panic(FatalError{})
}

// FatalNoTrace logs a message at Fatal level without a stack trace and exits
func FatalNoTrace(ctx context.Context, msg any, args ...any) {
	output := []any{
		msg,
		"",
		"{{_FatalFooter_}}Please let the dev know of this error.{{|-|}}",
	}
	logAt(ctx, time.Now(), LevelFatal, output, args...)
	panic(FatalError{})
}

// FatalError is a special error used to panic from Fatal logger calls.
// This allows the main run loop to recover and perform cleanup before exiting.
type FatalError struct{}

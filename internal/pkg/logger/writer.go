package logger

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// LogWriter 与日志共用输出目标, 供 gin 调试输出与 cron 使用
type LogWriter struct {
	zapcore.WriteSyncer
}

// Printf 满足 cron.PrintfLogger 的参数要求
func (l *LogWriter) Printf(format string, args ...interface{}) {
	_, _ = l.WriteSyncer.Write([]byte(fmt.Sprintf(format, args...)))
	_, _ = l.WriteSyncer.Write([]byte("\n"))
	_ = l.WriteSyncer.Sync()
}

// GetWriter 未初始化时返回 nil
func GetWriter() *LogWriter {
	return logWriter
}

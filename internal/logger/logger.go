// Package logger 终端客户端的文件日志
//
// 终端界面占用标准输出，客户端把标准库 log 重定向到文件；
// 服务端不调用 Init，日志仍然写到标准错误。
package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	logName    = "debug.log"
	maxLogSize = 10 * 1024 * 1024
	keepOld    = 3 // 保留的轮转文件数
)

var (
	logFile *os.File
	logPath string
)

// Init 把日志写到 dir/debug.log，dir 为空时使用 ~/.mybridge
func Init(dir string) error {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("获取用户目录失败: %w", err)
		}
		dir = filepath.Join(home, ".mybridge")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建日志目录失败: %w", err)
	}

	path := filepath.Join(dir, logName)
	if err := rotate(path); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("打开日志文件失败: %w", err)
	}
	logFile, logPath = f, path

	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	LogInfo("日志文件: %s", path)
	return nil
}

// rotate 文件过大时改名为 debug.log.<unix>，并删除多余的旧文件
func rotate(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return nil
	}
	if err := os.Rename(path, fmt.Sprintf("%s.%d", path, time.Now().UnixNano())); err != nil {
		return fmt.Errorf("轮转日志失败: %w", err)
	}

	old, err := filepath.Glob(path + ".*")
	if err != nil || len(old) <= keepOld {
		return nil
	}
	sort.Slice(old, func(i, j int) bool {
		return suffixNum(old[i]) < suffixNum(old[j])
	})
	for _, p := range old[:len(old)-keepOld] {
		_ = os.Remove(p)
	}
	return nil
}

func suffixNum(p string) int64 {
	n, _ := strconv.ParseInt(strings.TrimPrefix(filepath.Ext(p), "."), 10, 64)
	return n
}

// Close 关闭日志文件，log 恢复写标准错误
func Close() {
	if logFile == nil {
		return
	}
	log.SetOutput(os.Stderr)
	_ = logFile.Close()
	logFile = nil
}

func LogInfo(format string, args ...any) {
	log.Printf("[INFO] "+format, args...)
}

func LogError(format string, args ...any) {
	log.Printf("[ERROR] "+format, args...)
}

// LogPanic 记录 recover 到的值和调用栈
func LogPanic(r any) {
	log.Printf("[PANIC] %v\n%s", r, debug.Stack())
}

// GetLogPath 当前日志文件路径，未 Init 时为空
func GetLogPath() string {
	return logPath
}

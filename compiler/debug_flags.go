package compiler

import (
	"os"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Package-wide debug switch for verbose logging in the SPU JIT.
// Default is off to keep logs clean unless explicitly enabled by tests or callers.
var (
	// DebugLogsEnabled toggles all SPU JIT debug logs (builder + backends + cache).
	DebugLogsEnabled = false
)

func init() {
	if os.Getenv("SPU_JIT_DEBUG") == "1" || os.Getenv("SPU_JIT_DEBUG") == "true" {
		DebugLogsEnabled = true
	}
}

// EnableJitDebugLogs toggles all SPU JIT debug logs.
func EnableJitDebugLogs(on bool) { DebugLogsEnabled = on }

func shouldLog() bool { return DebugLogsEnabled }

// JitDebugWarn emits a warning only if debug logging is enabled.
func JitDebugWarn(msg string, ctx ...interface{}) {
	if shouldLog() {
		ethlog.Warn(msg, ctx...)
	}
}

// JitDebugInfo emits info only if debug logging is enabled.
func JitDebugInfo(msg string, ctx ...interface{}) {
	if shouldLog() {
		ethlog.Info(msg, ctx...)
	}
}

// JitDebugError emits an error only if debug logging is enabled.
func JitDebugError(msg string, ctx ...interface{}) {
	if shouldLog() {
		ethlog.Error(msg, ctx...)
	}
}

package log

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/natefinch/lumberjack.v2"
)

// The log file should be rotated when it reaches the maximum size.
func TestLogRotation(t *testing.T) {
	dir, err := os.MkdirTemp("", "bookbazaar-log-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	filename := filepath.Join(dir, "foobar.log")

	rotationLog := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    1, // megabytes
		MaxBackups: 3,
		MaxAge:     1, // days
	}
	defer rotationLog.Close()
	logger := newZap(rotationLog)
	defer logger.Sync()

	oneMegabyte := 1024 * 1024
	// Writing a full megabyte forces a rotation, the next line lands in a new file.
	rotationLog.Write(make([]byte, oneMegabyte))
	logger.Info("This log should be in a new file")

	fileInfo, err := os.Stat(filename)
	if err != nil {
		t.Fatal(err)
	}
	if fileInfo.Size() > int64(oneMegabyte) {
		t.Fatalf("File size %d is greater than expected %d", fileInfo.Size(), oneMegabyte)
	}
}

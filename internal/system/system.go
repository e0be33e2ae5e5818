package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"
)

// Input file kinds searched by FindLatest.
var (
	ImageExtensions    = []string{".jpg", ".jpeg", ".png"}
	BackdropExtensions = []string{".pdf", ".jpg", ".jpeg", ".png"}
	YAMLExtensions     = []string{".yaml", ".yml"}
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not read the open file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not raise the open file limit: %v", err)
	} else {
		fmt.Printf("[*] Open file limit raised to %d\n", rLimit.Cur)
	}
}

// FindLatest returns the most recently modified file in dir whose name ends
// in one of exts, compared case-insensitively.
func FindLatest(dir string, exts ...string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasExt(f.Name(), exts) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no %s files in %s", strings.Join(exts, "/"), dir)
	}
	return latestFile, nil
}

func hasExt(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

var (
	ffmpegOnce     sync.Once
	ffmpegEncoders string
	ffmpegFilters  string
)

// probeFFmpeg lists encoders and filters once per process.
func probeFFmpeg() {
	ffmpegOnce.Do(func() {
		if out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput(); err == nil {
			ffmpegEncoders = string(out)
		}
		if out, err := exec.Command("ffmpeg", "-hide_banner", "-filters").CombinedOutput(); err == nil {
			ffmpegFilters = string(out)
		}
	})
}

// GetBestH264Encoder prefers VideoToolbox, then NVENC, then libx264.
func GetBestH264Encoder() string {
	probeFFmpeg()
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(ffmpegEncoders, name) {
			return name
		}
	}
	return "libx264"
}

// CheckFilterSupport reports whether the local ffmpeg has the named filter.
func CheckFilterSupport(name string) bool {
	probeFFmpeg()
	for _, line := range strings.Split(ffmpegFilters, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == name {
			return true
		}
	}
	return false
}

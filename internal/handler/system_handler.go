package handler

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/database"
	"github.com/soupclass/soup-backend/internal/response"
)

// SystemHandler reports process, host and dependency health.
type SystemHandler struct {
	pool      *pgxpool.Pool
	rdb       *redis.Client
	startTime time.Time
	cpuModel  string

	mu        sync.Mutex
	prevIdle  uint64
	prevTotal uint64
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(pool *pgxpool.Pool, rdb *redis.Client) *SystemHandler {
	h := &SystemHandler{
		pool:      pool,
		rdb:       rdb,
		startTime: time.Now(),
		cpuModel:  readCPUModel(),
	}
	// Seed the first CPU reading so the first request gets a real delta.
	h.prevIdle, h.prevTotal, _ = readCPUStat()
	return h
}

type memoryStats struct {
	HeapAlloc  uint64 `json:"heap_alloc"`
	HeapSys    uint64 `json:"heap_sys"`
	StackInuse uint64 `json:"stack_inuse"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"num_gc"`
}

type systemInfo struct {
	Timestamp  int64       `json:"timestamp"`
	Uptime     string      `json:"uptime"`
	GoVersion  string      `json:"go_version"`
	NumCPU     int         `json:"num_cpu"`
	CPUModel   string      `json:"cpu_model"`
	Goroutines int         `json:"goroutines"`
	Memory     memoryStats `json:"memory"`

	CPUPercent    float64 `json:"cpu_percent"`
	MemUsedBytes  uint64  `json:"mem_used_bytes"`
	MemTotalBytes uint64  `json:"mem_total_bytes"`
	DiskUsedBytes uint64  `json:"disk_used_bytes"`
	DiskTotal     uint64  `json:"disk_total_bytes"`
	LoadAvg1      float64 `json:"load_avg_1"`
	AppRSSBytes   uint64  `json:"app_rss_bytes"`

	MailQueueLength int64 `json:"mail_queue_length"`
}

// GetSystemInfo godoc
// GET /api/v1/admin/system-info
// Returns Go runtime, host and queue statistics.
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := systemInfo{
		Timestamp:  time.Now().Unix(),
		Uptime:     formatDuration(time.Since(h.startTime)),
		GoVersion:  runtime.Version(),
		NumCPU:     runtime.NumCPU(),
		CPUModel:   h.cpuModel,
		Goroutines: runtime.NumGoroutine(),
		Memory:     readMemStats(),
		CPUPercent: h.cpuPercent(),
	}

	if total, avail, err := readMemInfo(); err == nil && total > 0 {
		info.MemTotalBytes = total
		info.MemUsedBytes = total - avail
	}
	if total, free, err := readDisk("/"); err == nil {
		info.DiskTotal = total
		info.DiskUsedBytes = total - free
	}
	info.LoadAvg1, _ = readLoadAvg()
	info.AppRSSBytes, _ = readProcessRSS()
	info.MailQueueLength, _ = h.rdb.LLen(c.Request.Context(), config.WorkerKey.MailQueue).Result()

	response.Success(c, http.StatusOK, info)
}

// Health godoc
// GET /health
// Pings PostgreSQL and Redis. Answers 503 when either is unreachable.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	pg := database.CheckPostgres(ctx, h.pool)
	rd := database.CheckRedis(ctx, h.rdb)

	status := http.StatusOK
	state := "healthy"
	if !pg.Healthy || !rd.Healthy {
		status = http.StatusServiceUnavailable
		state = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":   state,
		"uptime":   formatDuration(time.Since(h.startTime)),
		"postgres": pg,
		"redis":    rd,
		"memory":   readMemStats(),
	})
}

func (h *SystemHandler) cpuPercent() float64 {
	idle, total, err := readCPUStat()
	if err != nil {
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if total <= h.prevTotal {
		return 0
	}
	idleDelta := float64(idle - h.prevIdle)
	totalDelta := float64(total - h.prevTotal)
	h.prevIdle, h.prevTotal = idle, total
	return (1 - idleDelta/totalDelta) * 100
}

func readMemStats() memoryStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return memoryStats{
		HeapAlloc:  ms.HeapAlloc,
		HeapSys:    ms.HeapSys,
		StackInuse: ms.StackInuse,
		Sys:        ms.Sys,
		NumGC:      ms.NumGC,
	}
}

// ---------- /proc Readers ----------

// readCPUStat parses the aggregate line of /proc/stat.
func readCPUStat() (idle, total uint64, err error) {
	data, err := os.ReadFile("/proc/stat")
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(strings.SplitN(string(data), "\n", 2)[0])
	if len(fields) < 5 || fields[0] != "cpu" {
		return 0, 0, fmt.Errorf("unexpected /proc/stat format")
	}

	for i := 1; i < len(fields); i++ {
		val, _ := strconv.ParseUint(fields[i], 10, 64)
		total += val
		if i == 4 {
			idle = val
		}
	}
	return idle, total, nil
}

func readCPUModel() string {
	f, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return "Unknown"
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if name, ok := strings.CutPrefix(scanner.Text(), "model name"); ok {
			if _, v, found := strings.Cut(name, ":"); found {
				return strings.TrimSpace(v)
			}
		}
	}
	return "Unknown"
}

// readMemInfo returns MemTotal and MemAvailable in bytes.
func readMemInfo() (total, available uint64, err error) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "MemTotal:"):
			total = parseKBLine(line)
		case strings.HasPrefix(line, "MemAvailable:"):
			available = parseKBLine(line)
		}
	}
	return total, available, scanner.Err()
}

// parseKBLine reads lines like "MemTotal:       16384000 kB" as bytes.
func parseKBLine(line string) uint64 {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}
	val, _ := strconv.ParseUint(fields[1], 10, 64)
	return val * 1024
}

func readDisk(path string) (total, free uint64, err error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, 0, err
	}
	return stat.Blocks * uint64(stat.Bsize), stat.Bavail * uint64(stat.Bsize), nil
}

func readLoadAvg() (float64, error) {
	data, err := os.ReadFile("/proc/loadavg")
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, fmt.Errorf("unexpected /proc/loadavg format")
	}
	return strconv.ParseFloat(fields[0], 64)
}

func readProcessRSS() (uint64, error) {
	f, err := os.Open("/proc/self/status")
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); strings.HasPrefix(line, "VmRSS:") {
			return parseKBLine(line), nil
		}
	}
	return 0, fmt.Errorf("VmRSS not found")
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

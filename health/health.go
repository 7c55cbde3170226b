// Package health serves the liveness endpoint used by the hosting
// platform.
package health

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// HealthStatus is the /health response body.
type HealthStatus struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	GoVersion string    `json:"go_version"`
	MemoryMB  float64   `json:"memory_mb"`
}

var startTime = time.Now()

// StartHealthServer runs the health HTTP server in the background.
func StartHealthServer(port string) {
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/", healthHandler)

	go func() {
		utils.Info("Health check server starting on port %s", port)
		if err := http.ListenAndServe(":"+port, nil); err != nil {
			utils.Error("Health server error: %v", err)
		}
	}()
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	status := HealthStatus{
		Status:    "healthy",
		Service:   "sprocket-hypixel",
		Timestamp: time.Now(),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		GoVersion: runtime.Version(),
		MemoryMB:  float64(memStats.Alloc) / 1024 / 1024,
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(status)
}

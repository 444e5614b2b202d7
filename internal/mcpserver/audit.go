package mcpserver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// AuditEntry is one line in the tool audit log.
type AuditEntry struct {
	Timestamp string `json:"ts"`
	Tool      string `json:"tool"`
	DurationM int64  `json:"duration_ms"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// AuditLogger appends tool invocations to an append-only JSONL file.
// A nil logger is valid and discards everything.
type AuditLogger struct {
	mu   sync.Mutex
	file *os.File
}

// NewAuditLogger opens dir/audit.jsonl for appending. Returns nil (a no-op
// logger) when dir is empty or the file cannot be opened; auditing is
// best-effort and never blocks serving.
func NewAuditLogger(dir string) *AuditLogger {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "audit.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil
	}
	return &AuditLogger{file: f}
}

// Record writes one audit entry. Errors are swallowed.
func (a *AuditLogger) Record(tool string, started time.Time, err error) {
	if a == nil {
		return
	}

	entry := AuditEntry{
		Timestamp: started.UTC().Format(time.RFC3339Nano),
		Tool:      tool,
		DurationM: time.Since(started).Milliseconds(),
		Status:    "ok",
	}
	if err != nil {
		entry.Status = "error"
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.file.Write(append(data, '\n'))
}

// Close closes the underlying file.
func (a *AuditLogger) Close() {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.file != nil {
		a.file.Close()
		a.file = nil
	}
}

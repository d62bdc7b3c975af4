package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "not-a-level", Format: "text", Output: &buf})
	defer Init(Config{Level: "info"})

	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", Log.GetLevel())
	}
}

func TestInitJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "JSON", Output: &buf})
	defer Init(Config{Level: "info"})

	For("Subject").Debug("observer already attached")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	if entry["component"] != "Subject" {
		t.Errorf("component = %v, want Subject", entry["component"])
	}
	if !strings.Contains(entry["msg"].(string), "already attached") {
		t.Errorf("msg = %v", entry["msg"])
	}
}

package services

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"pocketledger/internal/logger"
)

func TestAuditLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := logger.Replace(zap.New(core).Sugar())
	defer restore()

	svc := NewAuditService()
	svc.Log("+91 98765-43210", "CREATE", "transaction", "tx-1", "127.0.0.1", map[string]any{"amount": 10})

	entries := logs.FilterMessage("CREATE").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["user"] != "919876543210" {
		t.Errorf("expected normalized user, got %v", fields["user"])
	}
	if fields["changes"] != `{"amount":10}` {
		t.Errorf("unexpected changes %v", fields["changes"])
	}
	if entries[0].LoggerName != "audit" {
		t.Errorf("expected audit logger, got %q", entries[0].LoggerName)
	}
}

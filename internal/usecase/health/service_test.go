package health

import (
	"context"
	"errors"
	"testing"
)

type stubCatalog struct {
	size int
}

func (s *stubCatalog) Len() int { return s.size }

type stubChecker struct {
	err error
}

func (s *stubChecker) HealthCheck(context.Context) error { return s.err }

func TestCheck_Healthy(t *testing.T) {
	svc := New(&stubCatalog{size: 10}, &stubChecker{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %q, want %q", report.Status, Healthy)
	}
	if report.Checks["catalog"] != CheckOK {
		t.Errorf("catalog check = %q, want ok", report.Checks["catalog"])
	}
	if report.Checks["embedding"] != CheckOK {
		t.Errorf("embedding check = %q, want ok", report.Checks["embedding"])
	}
}

func TestCheck_EmptyCatalogDegrades(t *testing.T) {
	svc := New(&stubCatalog{size: 0}, nil)

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %q, want %q", report.Status, Degraded)
	}
	if report.Checks["catalog"] != CheckError {
		t.Errorf("catalog check = %q, want error", report.Checks["catalog"])
	}
}

func TestCheck_EmbeddingFailureDegrades(t *testing.T) {
	svc := New(&stubCatalog{size: 10}, &stubChecker{err: errors.New("api down")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %q, want %q", report.Status, Degraded)
	}
	if report.Checks["embedding"] != CheckError {
		t.Errorf("embedding check = %q, want error", report.Checks["embedding"])
	}
	if report.Checks["catalog"] != CheckOK {
		t.Errorf("catalog check = %q, want ok", report.Checks["catalog"])
	}
}

func TestCheck_NoEmbeddingBackendConfigured(t *testing.T) {
	svc := New(&stubCatalog{size: 10}, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %q, want %q", report.Status, Healthy)
	}
	if _, ok := report.Checks["embedding"]; ok {
		t.Error("embedding check must be absent when no backend is configured")
	}
}

package config

import "testing"

func TestLoad(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("PORT", "9100")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "pos")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "posdb")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9100" {
		t.Errorf("Port = %s, want 9100", cfg.Port)
	}
	want := "postgres://pos:pw@db.internal:5433/posdb?sslmode=disable"
	if got := cfg.DatabaseURL(); got != want {
		t.Errorf("DatabaseURL() = %s, want %s", got, want)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %s, want default 8000", cfg.Port)
	}
	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %s, want default localhost", cfg.DBHost)
	}
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d, want default 5432", cfg.DBPort)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	if _, err := Load(); err == nil {
		t.Error("Load() accepted empty SECRET_KEY")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("DB_PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Error("Load() accepted non-numeric DB_PORT")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.Profile != "da2404-b" {
		t.Errorf("Profile = %q", cfg.Profile)
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("SMTP.Port = %d", cfg.SMTP.Port)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formstamp.yaml")
	data := `
addr: ":9090"
template_path: /srv/forms/da2404.pdf
profile: da2404-a
mail_from: forms@example.mil
smtp:
  host: relay.example.mil
  port: 25
  username: forms
  password: hunter2
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.TemplatePath != "/srv/forms/da2404.pdf" {
		t.Errorf("TemplatePath = %q", cfg.TemplatePath)
	}
	if cfg.Profile != "da2404-a" {
		t.Errorf("Profile = %q", cfg.Profile)
	}
	if cfg.SMTP.Host != "relay.example.mil" || cfg.SMTP.Port != 25 {
		t.Errorf("SMTP = %+v", cfg.SMTP)
	}
}

func TestMissingFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Errorf("missing file: %v", err)
	}
}

func TestMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("addr: [:::"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML accepted")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formstamp.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9090\"\nprofile: da2404-a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ADDR", ":7070")
	t.Setenv("TEMPLATE_PATH", "/tmp/t.pdf")
	t.Setenv("MAIL_FROM", "cdr@example.mil")
	t.Setenv("SMTP_HOST", "relay2.example.mil")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, env should win", cfg.Addr)
	}
	if cfg.Profile != "da2404-a" {
		t.Errorf("Profile = %q, file value should survive", cfg.Profile)
	}
	if cfg.TemplatePath != "/tmp/t.pdf" || cfg.MailFrom != "cdr@example.mil" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SMTP.Host != "relay2.example.mil" || cfg.SMTP.Port != 2525 {
		t.Errorf("SMTP = %+v", cfg.SMTP)
	}
}

func TestBadPortIgnored(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-port")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("SMTP.Port = %d, want default kept", cfg.SMTP.Port)
	}
}

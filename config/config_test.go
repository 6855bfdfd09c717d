package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("LINKIT_SYSTEM_WORKDIR", tmp)

	cfg := LoadConfig("")
	if cfg.System.Workdir != tmp {
		t.Errorf("workdir = %q, want %q", cfg.System.Workdir, tmp)
	}
	if cfg.Web.Port != 1816 {
		t.Errorf("port = %d, want 1816", cfg.Web.Port)
	}
	if cfg.Orders.LogoSurcharge != 5 {
		t.Errorf("logo surcharge = %v, want 5", cfg.Orders.LogoSurcharge)
	}
	if cfg.Orders.DeliveryDays["JO"] != 3 {
		t.Errorf("JO delivery days = %d, want 3", cfg.Orders.DeliveryDays["JO"])
	}
	if _, err := os.Stat(cfg.GetPublicDir()); err != nil {
		t.Errorf("public dir should be created: %v", err)
	}
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("LINKIT_SYSTEM_WORKDIR", tmp)
	t.Setenv("LINKIT_WEB_PORT", "2916")

	cfile := filepath.Join(tmp, "linkit.yml")
	yaml := `
web:
  host: 127.0.0.1
  port: 1900
orders:
  logo_surcharge: 7.5
  delivery_days:
    JO: 2
    UK: 5
`
	if err := os.WriteFile(cfile, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(cfile)
	if cfg.Web.Host != "127.0.0.1" {
		t.Errorf("host = %q", cfg.Web.Host)
	}
	// env wins over file
	if cfg.Web.Port != 2916 {
		t.Errorf("port = %d, want env override 2916", cfg.Web.Port)
	}
	if cfg.Orders.LogoSurcharge != 7.5 {
		t.Errorf("logo surcharge = %v, want 7.5", cfg.Orders.LogoSurcharge)
	}
	if cfg.Orders.DeliveryDays["UK"] != 5 {
		t.Errorf("UK delivery days = %d, want 5", cfg.Orders.DeliveryDays["UK"])
	}
}

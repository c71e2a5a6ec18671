package postgre

import (
	"strings"
	"testing"

	"report-srv/config"
)

func TestDSN(t *testing.T) {
	got := dsn(config.PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "reports"})
	for _, want := range []string{"host=db", "port=5432", "dbname=reports", "sslmode=disable", "search_path=public"} {
		if !strings.Contains(got, want) {
			t.Errorf("dsn %q missing %q", got, want)
		}
	}

	got = dsn(config.PostgresConfig{Host: "db", Port: 5432, SSLMode: "require", Schema: "reports"})
	if !strings.Contains(got, "sslmode=require") || !strings.Contains(got, "search_path=reports") {
		t.Errorf("dsn %q ignores explicit values", got)
	}
}

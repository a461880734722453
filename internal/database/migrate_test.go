package database

import "testing"

func TestSplitStatements(t *testing.T) {
	script := `
CREATE TABLE a (id INT);

CREATE TABLE b (id INT);
`
	stmts := splitStatements(script)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %#v", len(stmts), stmts)
	}
	if stmts[0] != "CREATE TABLE a (id INT)" {
		t.Errorf("unexpected first statement: %q", stmts[0])
	}
	if stmts[1] != "CREATE TABLE b (id INT)" {
		t.Errorf("unexpected second statement: %q", stmts[1])
	}
}

func TestSplitStatementsEmpty(t *testing.T) {
	if got := splitStatements("  \n ; ; \n"); got != nil {
		t.Fatalf("expected no statements, got %#v", got)
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no embedded migration files")
	}
}

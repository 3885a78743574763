package repository

import (
	"testing"
)

func TestLikeOperatorByDialect(t *testing.T) {
	if got := likeOperator("sqlite"); got != "LIKE" {
		t.Fatalf("sqlite operator want LIKE got %s", got)
	}
	if got := likeOperator("postgres"); got != "ILIKE" {
		t.Fatalf("postgres operator want ILIKE got %s", got)
	}
}

func TestAnyColumnLikeDefaultsToSQLite(t *testing.T) {
	condition, args := anyColumnLike(nil, " widget ", "name", "slug")
	want := "name LIKE ? OR slug LIKE ?"
	if condition != want {
		t.Fatalf("condition want %q got %q", want, condition)
	}
	if len(args) != 2 || args[0] != "%widget%" {
		t.Fatalf("unexpected args: %v", args)
	}
}

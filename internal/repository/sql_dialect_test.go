package repository

import (
	"testing"
)

func TestBuildSearchConditionByDialectSQLite(t *testing.T) {
	condition, argCount := buildSearchConditionByDialect("sqlite", []string{"name", "description"})
	if condition != "name LIKE ? OR description LIKE ?" {
		t.Fatalf("sqlite condition mismatch, got %s", condition)
	}
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
}

func TestBuildSearchConditionByDialectPostgres(t *testing.T) {
	condition, argCount := buildSearchConditionByDialect("postgres", []string{"name"})
	if condition != "name ILIKE ?" {
		t.Fatalf("postgres condition mismatch, got %s", condition)
	}
	if argCount != 1 {
		t.Fatalf("arg count want 1 got %d", argCount)
	}
}

func TestBuildSearchConditionSkipsBlankColumns(t *testing.T) {
	condition, argCount := buildSearchConditionByDialect("sqlite", []string{"name", " ", ""})
	if condition != "name LIKE ?" {
		t.Fatalf("blank columns not skipped, got %s", condition)
	}
	if argCount != 1 {
		t.Fatalf("arg count want 1 got %d", argCount)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}

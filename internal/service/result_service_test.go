package service

import (
	"context"
	"errors"
	"testing"

	"github.com/parikshasetu/assessment-core/internal/model"
)

func TestGradeFor(t *testing.T) {
	cases := []struct {
		score      int
		totalMarks int
		want       model.Grade
	}{
		{100, 100, model.GradeA},
		{90, 100, model.GradeA},
		{89, 100, model.GradeB},
		{75, 100, model.GradeB},
		{74, 100, model.GradeC},
		{50, 100, model.GradeC},
		{49, 100, model.GradeF},
		{0, 100, model.GradeF},
		{45, 50, model.GradeA},
		{30, 80, model.GradeF},
		{60, 80, model.GradeB},
	}
	for _, tc := range cases {
		if got := GradeFor(tc.score, tc.totalMarks); got != tc.want {
			t.Errorf("GradeFor(%d, %d) = %s, want %s", tc.score, tc.totalMarks, got, tc.want)
		}
	}
}

func TestGenerateValidatesInput(t *testing.T) {
	svc := NewResultService(newFakeResultStore(), testLogger())
	ctx := context.Background()

	if _, err := svc.Generate(ctx, 0, 3, 50, 100); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero student id: got %v, want ErrValidation", err)
	}
	if _, err := svc.Generate(ctx, 42, 3, 50, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero total marks: got %v, want ErrValidation", err)
	}
	if _, err := svc.Generate(ctx, 42, 3, -1, 100); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative score: got %v, want ErrValidation", err)
	}
}

func TestGeneratePersistsGradedResult(t *testing.T) {
	store := newFakeResultStore()
	svc := NewResultService(store, testLogger())

	res, err := svc.Generate(context.Background(), 42, 3, 92, 100)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Grade != model.GradeA {
		t.Fatalf("expected grade A, got %s", res.Grade)
	}
	if res.GeneratedAt.IsZero() {
		t.Fatal("result should carry a generation timestamp")
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected 1 stored result, got %d", len(store.rows))
	}
}

func TestGenerateLastWriteWins(t *testing.T) {
	store := newFakeResultStore()
	svc := NewResultService(store, testLogger())
	ctx := context.Background()

	first, err := svc.Generate(ctx, 42, 3, 40, 100)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	second, err := svc.Generate(ctx, 42, 3, 95, 100)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("regeneration should overwrite row %d, got %d", first.ID, second.ID)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected a single row per (student, exam), got %d", len(store.rows))
	}
	stored := store.rows[resultKey{studentID: 42, examID: 3}]
	if stored.Score != 95 || stored.Grade != model.GradeA {
		t.Fatalf("last write should win: %+v", stored)
	}
}

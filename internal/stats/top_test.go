package stats

import (
	"testing"

	"github.com/verte-zerg/wordrush/internal/model"
)

func TestTopMissed(t *testing.T) {
	aggs := []model.WordAggregate{
		{Word: "branch", Misses: 2},
		{Word: "argument", Misses: 4},
		{Word: "api", Misses: 2},
	}
	top := TopMissed(aggs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 words, got %d", len(top))
	}
	if top[0].Word != "argument" || top[1].Word != "api" {
		t.Fatalf("unexpected order: %v", top)
	}
	if aggs[0].Word != "branch" {
		t.Fatalf("expected input to be left untouched")
	}
}

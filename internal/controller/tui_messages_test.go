package controller

import "testing"

func TestRunItemFilterValue(t *testing.T) {
	item := runItem{program: "classify", input: "5", status: "returned"}
	if got := item.FilterValue(); got != "classify 5 returned" {
		t.Fatalf("FilterValue() = %q", got)
	}
}

package matrix

import (
	"testing"

	"singular-attend/backend/internal/model"
)

func activeCategories() []model.Category {
	return []model.Category{
		{CategoryID: "cat-os", Code: "OS", Label: "On Site", IsActive: true},
		{CategoryID: "cat-t", Code: "T", Label: "Teleworking", IsActive: true},
		{CategoryID: "cat-ooo", Code: "OOO", Label: "Out of Office", IsActive: true},
	}
}

func TestNextCategory_EmptyStartsAtOnSite(t *testing.T) {
	next := NextCategory("", activeCategories())
	if next == nil || next.Code != "OS" {
		t.Fatalf("空状态应从 OS 开始，实际: %+v", next)
	}
}

func TestNextCategory_EmptyWithoutOnSite(t *testing.T) {
	cats := []model.Category{
		{CategoryID: "cat-t", Code: "T", IsActive: true},
		{CategoryID: "cat-bt", Code: "BT", IsActive: true},
	}
	next := NextCategory("", cats)
	if next == nil || next.Code != "T" {
		t.Fatalf("无 OS 时应从第一个启用类别开始，实际: %+v", next)
	}
}

func TestNextCategory_NoActiveCategories(t *testing.T) {
	if next := NextCategory("", nil); next != nil {
		t.Errorf("无启用类别时应返回 nil，实际: %+v", next)
	}
	if next := NextCategory("OS", nil); next != nil {
		t.Errorf("无启用类别时任意短码都应返回 nil，实际: %+v", next)
	}
}

func TestNextCategory_FullCycle(t *testing.T) {
	// OS → T → OOO → 清空 → OS
	cats := activeCategories()

	steps := []string{"T", "OOO", "", "OS"}
	current := "OS"
	for _, want := range steps {
		next := NextCategory(current, cats)
		got := ""
		if next != nil {
			got = next.Code
		}
		if got != want {
			t.Fatalf("从 %q 循环期望 %q，实际 %q", current, want, got)
		}
		current = got
	}
}

func TestNextCategory_CycleClosure(t *testing.T) {
	// 任意起点循环 N+1 次回到原状态（含清空态）
	cats := activeCategories()
	n := len(cats)

	for _, start := range []string{"", "OS", "T", "OOO"} {
		current := start
		for i := 0; i < n+1; i++ {
			next := NextCategory(current, cats)
			if next == nil {
				current = ""
			} else {
				current = next.Code
			}
		}
		if current != start {
			t.Errorf("从 %q 循环 %d 次应回到原点，实际停在 %q", start, n+1, current)
		}
	}
}

func TestNextCategory_DeactivatedCodeRestarts(t *testing.T) {
	// T 被停用后，从 T 继续循环应重新回到第一个启用类别
	cats := []model.Category{
		{CategoryID: "cat-os", Code: "OS", IsActive: true},
		{CategoryID: "cat-ooo", Code: "OOO", IsActive: true},
	}

	next := NextCategory("T", cats)
	if next == nil || next.Code != "OS" {
		t.Fatalf("已停用短码应从第一个启用类别重启，实际: %+v", next)
	}
}

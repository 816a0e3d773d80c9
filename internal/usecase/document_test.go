package usecase

import (
	"testing"

	"portfolio-studio/internal/domain"
	"portfolio-studio/internal/model"

	"github.com/google/uuid"
)

func newTestDocument() *Document {
	return NewDocument(domain.User{Name: "Ada", Email: "ada@example.com", Role: "student"})
}

func TestNewDocumentSeedsTitle(t *testing.T) {
	doc := newTestDocument()
	if got := doc.Title(); got != "Ada's Portfolio" {
		t.Fatalf("title: want=%q got=%q", "Ada's Portfolio", got)
	}
	if got := NewDocument(domain.User{}).Title(); got != "Portfolio" {
		t.Fatalf("anonymous title: want=%q got=%q", "Portfolio", got)
	}
}

// Mirrors the full skill-block lifecycle: defaults, selection, clamping,
// removal clearing selection.
func TestSkillBlockLifecycle(t *testing.T) {
	doc := newTestDocument()

	b, err := doc.AddBlock(model.KindSkill)
	if err != nil {
		t.Fatalf("AddBlock: %v", err)
	}
	if b.Order != 0 {
		t.Fatalf("order: want=0 got=%d", b.Order)
	}
	if b.Content["skill"] != "Skill Name" || b.Content["level"] != 80 || b.Content["description"] != "" {
		t.Fatalf("unexpected default content: %v", b.Content)
	}
	sel, ok := doc.Selected()
	if !ok || sel.ID != b.ID {
		t.Fatalf("new block should be selected")
	}

	doc.UpdateBlock(b.ID, map[string]interface{}{"level": 120})
	sel, _ = doc.Selected()
	if sel.Content["level"] != 100 {
		t.Fatalf("level: want=100 got=%v", sel.Content["level"])
	}

	doc.UpdateBlock(b.ID, map[string]interface{}{"level": -5})
	sel, _ = doc.Selected()
	if sel.Content["level"] != 0 {
		t.Fatalf("level: want=0 got=%v", sel.Content["level"])
	}

	doc.RemoveBlock(b.ID)
	if _, ok := doc.Selected(); ok {
		t.Fatalf("selection should be cleared after removal")
	}
	if doc.Len() != 0 {
		t.Fatalf("document should be empty, len=%d", doc.Len())
	}
}

func TestRemoveBlockIdempotent(t *testing.T) {
	doc := newTestDocument()
	a, _ := doc.AddBlock(model.KindText)
	doc.AddBlock(model.KindText)

	doc.RemoveBlock(a.ID)
	doc.RemoveBlock(a.ID) // second removal must not panic or remove more
	if doc.Len() != 1 {
		t.Fatalf("block count: want=1 got=%d", doc.Len())
	}

	doc.RemoveBlock(uuid.New()) // unknown id is a silent no-op
	if doc.Len() != 1 {
		t.Fatalf("block count after unknown removal: want=1 got=%d", doc.Len())
	}
}

func TestUpdateBlockShallowMerge(t *testing.T) {
	doc := newTestDocument()
	b, _ := doc.AddBlock(model.KindProject)

	doc.UpdateBlock(b.ID, map[string]interface{}{"title": "New Title"})
	got, _ := doc.Selected()
	if got.Content["title"] != "New Title" {
		t.Fatalf("title not merged: %v", got.Content["title"])
	}
	if got.Content["description"] != "Project description goes here" {
		t.Fatalf("untouched field changed: %v", got.Content["description"])
	}

	// unknown id is a silent no-op
	doc.UpdateBlock(uuid.New(), map[string]interface{}{"title": "Other"})
	got, _ = doc.Selected()
	if got.Content["title"] != "New Title" {
		t.Fatalf("unknown-id update mutated a block")
	}
}

func TestSetArrayFieldEditAndDelete(t *testing.T) {
	doc := newTestDocument()
	b, _ := doc.AddBlock(model.KindProject)

	doc.SetArrayField(b.ID, "tech", 0, "Go")
	doc.SetArrayField(b.ID, "tech", 1, "Postgres")
	got, _ := doc.Selected()
	tech := got.Content["tech"].([]string)
	if len(tech) != 2 || tech[0] != "Go" || tech[1] != "Postgres" {
		t.Fatalf("tech: want=[Go Postgres] got=%v", tech)
	}

	// blank at an in-bounds index removes the row
	doc.SetArrayField(b.ID, "tech", 0, "")
	got, _ = doc.Selected()
	tech = got.Content["tech"].([]string)
	if len(tech) != 1 || tech[0] != "Postgres" {
		t.Fatalf("tech after delete: want=[Postgres] got=%v", tech)
	}

	// writing past the end extends the array
	doc.SetArrayField(b.ID, "tech", 4, "Docker")
	got, _ = doc.Selected()
	tech = got.Content["tech"].([]string)
	if len(tech) != 2 || tech[1] != "Docker" {
		t.Fatalf("tech after extend: want=[Postgres Docker] got=%v", tech)
	}
}

func TestAppendThenBlankLeavesArrayEmpty(t *testing.T) {
	doc := newTestDocument()
	b, _ := doc.AddBlock(model.KindProject)

	doc.AppendArrayField(b.ID, "tech")
	doc.SetArrayField(b.ID, "tech", 0, "")

	got, _ := doc.Selected()
	tech := got.Content["tech"].([]string)
	if len(tech) != 0 {
		t.Fatalf("tech: want empty got=%v", tech)
	}
}

func TestArrayWritesNeverLeaveBlanks(t *testing.T) {
	doc := newTestDocument()
	b, _ := doc.AddBlock(model.KindExperience)

	doc.AppendArrayField(b.ID, "achievements")
	doc.AppendArrayField(b.ID, "achievements")
	doc.SetArrayField(b.ID, "achievements", 2, "Shipped v1")
	doc.UpdateBlock(b.ID, map[string]interface{}{"achievements": []string{"Shipped v1", "", "Led migration", ""}})

	got, _ := doc.Selected()
	ach := got.Content["achievements"].([]string)
	for i, s := range ach {
		if s == "" {
			t.Fatalf("achievements[%d] is blank: %v", i, ach)
		}
	}
	if len(ach) != 2 {
		t.Fatalf("achievements: want=2 entries got=%v", ach)
	}
}

func TestMoveBlockSwapsOrder(t *testing.T) {
	doc := newTestDocument()
	a, _ := doc.AddBlock(model.KindText)
	b, _ := doc.AddBlock(model.KindText)
	c, _ := doc.AddBlock(model.KindText)

	doc.MoveBlock(c.ID, -1)
	ids := func() []uuid.UUID {
		out := []uuid.UUID{}
		for _, blk := range doc.Blocks() {
			out = append(out, blk.ID)
		}
		return out
	}
	got := ids()
	if got[0] != a.ID || got[1] != c.ID || got[2] != b.ID {
		t.Fatalf("order after move up: got=%v", got)
	}

	// edges are no-ops
	doc.MoveBlock(a.ID, -1)
	doc.MoveBlock(b.ID, 1)
	got = ids()
	if got[0] != a.ID || got[2] != b.ID {
		t.Fatalf("edge moves should not change order: got=%v", got)
	}
}

// Removing a block must not let a later add reuse an occupied order, which
// would make the two blocks unswappable.
func TestMoveBlockAfterRemoval(t *testing.T) {
	doc := newTestDocument()
	a, _ := doc.AddBlock(model.KindText)
	b, _ := doc.AddBlock(model.KindText)
	c, _ := doc.AddBlock(model.KindText)

	doc.RemoveBlock(b.ID)
	d, _ := doc.AddBlock(model.KindText)

	blocks := doc.Blocks()
	seen := map[int]bool{}
	for _, blk := range blocks {
		if seen[blk.Order] {
			t.Fatalf("duplicate order %d after remove-then-add: %v", blk.Order, blocks)
		}
		seen[blk.Order] = true
	}

	doc.MoveBlock(d.ID, -1)
	got := doc.Blocks()
	if got[0].ID != a.ID || got[1].ID != d.ID || got[2].ID != c.ID {
		t.Fatalf("order after move: want=[a d c] got=%v", got)
	}
}

func TestBlocksReturnsCopies(t *testing.T) {
	doc := newTestDocument()
	b, _ := doc.AddBlock(model.KindText)

	snapshot := doc.Blocks()
	snapshot[0].Content["text"] = "mutated from outside"

	got, _ := doc.Selected()
	if got.Content["text"] == "mutated from outside" {
		t.Fatalf("external mutation reached the document")
	}
	_ = b
}

func TestPublishValidatesAllBlocks(t *testing.T) {
	doc := newTestDocument()
	b, _ := doc.AddBlock(model.KindSkill)
	if err := doc.Publish(); err != nil {
		t.Fatalf("Publish on defaults: %v", err)
	}

	doc.UpdateBlock(b.ID, map[string]interface{}{"skill": ""})
	if err := doc.Publish(); err == nil {
		t.Fatalf("Publish should reject a blank skill name")
	}
}

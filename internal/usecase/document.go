package usecase

import (
	"fmt"
	"sort"
	"sync"

	"portfolio-studio/internal/domain"
	"portfolio-studio/internal/model"

	"github.com/google/uuid"
)

// Document is the one piece of mutable shared state in a session: an ordered
// collection of content blocks plus the current selection. It is a
// single-writer aggregate; every mutation goes through the methods below and
// is atomic with respect to the session. Callers never receive references into
// the internal block slice, only copies.
type Document struct {
	mu       sync.Mutex
	title    string
	blocks   []model.ContentBlock
	selected uuid.UUID // uuid.Nil when nothing is selected
}

// NewDocument creates an empty document seeded with the session user's name.
func NewDocument(user domain.User) *Document {
	title := "Portfolio"
	if user.Name != "" {
		title = fmt.Sprintf("%s's Portfolio", user.Name)
	}
	return &Document{title: title}
}

func (d *Document) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title
}

// AddBlock creates a block with the registry default content for kind,
// appends it at the end, marks it selected and returns a copy of it. The only
// failure is an unknown kind, which is a programmer error at the call site.
func (d *Document) AddBlock(kind model.BlockKind) (model.ContentBlock, error) {
	content, err := model.DefaultContent(kind)
	if err != nil {
		return model.ContentBlock{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	b := model.ContentBlock{
		ID:      uuid.New(),
		Kind:    kind,
		Content: content,
		Style:   map[string]interface{}{},
		Order:   len(d.blocks),
	}
	d.blocks = append(d.blocks, b)
	d.selected = b.ID
	return copyBlock(b), nil
}

// RemoveBlock deletes the block with the given id. Unknown ids are a silent
// no-op: deletions racing with other deletions are expected and idempotent.
// Removing the selected block clears the selection. The surviving blocks are
// renumbered by position so every order stays unique and the next add cannot
// collide with an existing one.
func (d *Document) RemoveBlock(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, b := range d.blocks {
		if b.ID == id {
			d.blocks = append(d.blocks[:i], d.blocks[i+1:]...)
			if d.selected == id {
				d.selected = uuid.Nil
			}
			for pos, j := range d.orderedIndexes() {
				d.blocks[j].Order = pos
			}
			return
		}
	}
}

// UpdateBlock shallow-merges partial into the block's content; keys not
// mentioned are untouched. Unknown ids are a silent no-op. The block's id and
// kind are not part of content and cannot be changed here. Skill levels are
// clamped to [0,100] and any array value written through the merge has blank
// entries pruned.
func (d *Document) UpdateBlock(id uuid.UUID, partial map[string]interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b := d.find(id)
	if b == nil {
		return
	}
	for k, v := range partial {
		if b.Kind == model.KindSkill && k == "level" {
			b.Content[k] = clampLevel(v)
			continue
		}
		if s, ok := toStringSlice(v); ok {
			b.Content[k] = pruneBlanks(s)
			continue
		}
		b.Content[k] = v
	}
}

// SetArrayField writes one entry of an array-valued content field. A blank
// value at an in-bounds index removes that entry, so a text input's "clear"
// doubles as "remove this row"; otherwise the entry at index is set, extending
// the array if needed. Blank entries are pruned from the whole array after the
// write. Unknown ids are a silent no-op.
func (d *Document) SetArrayField(id uuid.UUID, field string, index int, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b := d.find(id)
	if b == nil || index < 0 {
		return
	}
	arr, _ := toStringSlice(b.Content[field])

	if value == "" && index < len(arr) {
		arr = append(arr[:index], arr[index+1:]...)
	} else {
		for len(arr) <= index {
			arr = append(arr, "")
		}
		arr[index] = value
	}
	b.Content[field] = pruneBlanks(arr)
}

// AppendArrayField appends one blank entry to an array-valued field, staged
// for the caller to edit immediately.
func (d *Document) AppendArrayField(id uuid.UUID, field string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b := d.find(id)
	if b == nil {
		return
	}
	arr, _ := toStringSlice(b.Content[field])
	b.Content[field] = append(arr, "")
}

// UpdateStyle replaces the block's presentation hints. The engine treats them
// as opaque.
func (d *Document) UpdateStyle(id uuid.UUID, style map[string]interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b := d.find(id)
	if b == nil {
		return
	}
	cp := make(map[string]interface{}, len(style))
	for k, v := range style {
		cp[k] = v
	}
	b.Style = cp
}

// MoveBlock swaps the block's order with its neighbor in the given direction
// (-1 up, +1 down). No-op at the edges and for unknown ids.
func (d *Document) MoveBlock(id uuid.UUID, direction int) {
	if direction != -1 && direction != 1 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ordered := d.orderedIndexes()
	for pos, i := range ordered {
		if d.blocks[i].ID != id {
			continue
		}
		swap := pos + direction
		if swap < 0 || swap >= len(ordered) {
			return
		}
		j := ordered[swap]
		d.blocks[i].Order, d.blocks[j].Order = d.blocks[j].Order, d.blocks[i].Order
		return
	}
}

// Select marks the block as selected. Selecting uuid.Nil or an unknown id
// clears the selection.
func (d *Document) Select(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if id != uuid.Nil && d.find(id) == nil {
		id = uuid.Nil
	}
	d.selected = id
}

// Selected returns a copy of the currently selected block, if any.
func (d *Document) Selected() (model.ContentBlock, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.selected == uuid.Nil {
		return model.ContentBlock{}, false
	}
	b := d.find(d.selected)
	if b == nil {
		return model.ContentBlock{}, false
	}
	return copyBlock(*b), true
}

// Blocks returns a copy of all blocks sorted by order.
func (d *Document) Blocks() []model.ContentBlock {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]model.ContentBlock, 0, len(d.blocks))
	for _, i := range d.orderedIndexes() {
		out = append(out, copyBlock(d.blocks[i]))
	}
	return out
}

// Len returns the current block count.
func (d *Document) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.blocks)
}

// Publish validates every block's content against its kind schema. It mutates
// nothing; actually shipping the document belongs to the persistence
// collaborator.
func (d *Document) Publish() error {
	for _, b := range d.Blocks() {
		if err := model.ValidateContent(b.Kind, b.Content); err != nil {
			return err
		}
	}
	return nil
}

// Save is an outbound no-op kept invocable so the presentation layer has a
// stable hook; durable snapshots are the repository's concern.
func (d *Document) Save() {}

// find returns a pointer into the block slice; callers must hold d.mu.
func (d *Document) find(id uuid.UUID) *model.ContentBlock {
	for i := range d.blocks {
		if d.blocks[i].ID == id {
			return &d.blocks[i]
		}
	}
	return nil
}

// orderedIndexes returns block slice indexes sorted by Order; callers must
// hold d.mu.
func (d *Document) orderedIndexes() []int {
	idx := make([]int, len(d.blocks))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return d.blocks[idx[a]].Order < d.blocks[idx[b]].Order
	})
	return idx
}

func copyBlock(b model.ContentBlock) model.ContentBlock {
	cp := b
	cp.Content = make(map[string]interface{}, len(b.Content))
	for k, v := range b.Content {
		if s, ok := toStringSlice(v); ok {
			cp.Content[k] = append([]string(nil), s...)
			continue
		}
		cp.Content[k] = v
	}
	cp.Style = make(map[string]interface{}, len(b.Style))
	for k, v := range b.Style {
		cp.Style[k] = v
	}
	return cp
}

// toStringSlice normalizes []string and JSON-decoded []interface{} values.
// The second return is false for anything that is not an array.
func toStringSlice(v interface{}) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...), true
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s, ok := it.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprintf("%v", it))
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func pruneBlanks(arr []string) []string {
	out := arr[:0]
	for _, s := range arr {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func clampLevel(v interface{}) int {
	var n int
	switch t := v.(type) {
	case int:
		n = t
	case int64:
		n = int(t)
	case float64:
		n = int(t)
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

package primitives

// reservedStatics are names owned by the recipe machinery itself.
// A static with one of these names would shadow a built-in operation.
var reservedStatics = map[string]struct{}{
	"create":     {},
	"extend":     {},
	"methods":    {},
	"properties": {},
	"statics":    {},
	"mixin":      {},
	"prototype":  {},
	InitKey:      {},
}

// IsReservedStatic reports whether name belongs to the recipe machinery.
func IsReservedStatic(name string) bool {
	_, ok := reservedStatics[name]
	return ok
}

// StaticTable holds recipe-level data. Keys are insert-or-fail.
type StaticTable struct {
	data *OrderedMap[any]
}

// NewStaticTable creates an empty StaticTable.
func NewStaticTable() *StaticTable {
	return &StaticTable{data: NewOrderedMap[any]()}
}

// Insert defines key once. A second definition, or a reserved name, fails
// with KindDuplicateStatic and leaves the table unchanged.
func (t *StaticTable) Insert(key string, val any) error {
	if err := t.check(key); err != nil {
		return err
	}
	t.data.Set(key, val)
	return nil
}

func (t *StaticTable) check(key string) error {
	if IsReservedStatic(key) {
		return NewError(KindDuplicateStatic, key, "name is reserved by the recipe machinery")
	}
	if t.data.Has(key) {
		return NewError(KindDuplicateStatic, key, "static already defined")
	}
	return nil
}

// Merge inserts every key of bag in sorted order. The whole bag is checked
// before anything is written, so a collision leaves the table untouched.
func (t *StaticTable) Merge(bag Bag) error {
	names := bag.Names()
	for _, k := range names {
		if err := t.check(k); err != nil {
			return err
		}
	}
	for _, k := range names {
		t.data.Set(k, bag[k])
	}
	return nil
}

// Get returns the static value for key.
func (t *StaticTable) Get(key string) (any, bool) {
	if t == nil {
		return nil, false
	}
	return t.data.Get(key)
}

// Names returns the defined keys in definition order.
func (t *StaticTable) Names() []string {
	if t == nil {
		return nil
	}
	return t.data.Keys()
}

// Snapshot returns a plain copy of the table.
func (t *StaticTable) Snapshot() map[string]any {
	if t == nil {
		return map[string]any{}
	}
	return t.data.Snapshot()
}

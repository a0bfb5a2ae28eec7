package budget

import "github.com/yurifrl/pocketmoney/pkg/models"

// CategoryType is the flow direction YNAB4 records on a category.
type CategoryType string

const (
	Inflow   CategoryType = "INFLOW"
	Outflow  CategoryType = "OUTFLOW"
	Transfer CategoryType = "TRANSFER"
)

// visible applies the rule shared by master and sub categories: tombstoned
// categories and ids under __Hidden__ or __Internal__ are not shown.
func visible(id models.ID, tombstone bool) bool {
	if tombstone {
		return false
	}
	return !id.Reserved()
}

// MasterCategory groups an ordered list of subcategories.
type MasterCategory struct {
	id            models.ID
	name          string
	typ           CategoryType
	tombstone     bool
	subCategories []*SubCategory
}

func newMasterCategory(rec models.MasterCategoryRecord) *MasterCategory {
	m := &MasterCategory{
		id:        rec.EntityID,
		name:      rec.Name,
		typ:       categoryType(rec.Type),
		tombstone: rec.IsTombstone != nil && *rec.IsTombstone,
	}
	if rec.SubCategories != nil {
		m.subCategories = make([]*SubCategory, 0, len(rec.SubCategories))
		for _, sub := range rec.SubCategories {
			m.subCategories = append(m.subCategories, newSubCategory(sub, m.id))
		}
	}
	return m
}

func (m *MasterCategory) ID() models.ID      { return m.id }
func (m *MasterCategory) Name() string       { return m.name }
func (m *MasterCategory) Type() CategoryType { return m.typ }
func (m *MasterCategory) IsTombstone() bool  { return m.tombstone }

// SubCategories returns every subcategory in document order, hidden ones
// included. The result is nil when the document had none.
func (m *MasterCategory) SubCategories() []*SubCategory {
	return append([]*SubCategory(nil), m.subCategories...)
}

// Visible reports whether the master category itself is shown. Its
// subcategories are checked separately.
func (m *MasterCategory) Visible() bool { return visible(m.id, m.tombstone) }

// VisibleSubCategories returns the visible subcategories in document order.
func (m *MasterCategory) VisibleSubCategories() []*SubCategory {
	out := make([]*SubCategory, 0, len(m.subCategories))
	for _, sub := range m.subCategories {
		if sub.Visible() {
			out = append(out, sub)
		}
	}
	return out
}

func (m *MasterCategory) String() string { return m.name }

// SubCategory is a leaf category that allocations and transactions refer to.
type SubCategory struct {
	id        models.ID
	name      string
	typ       CategoryType
	tombstone bool
	masterID  models.ID
}

func newSubCategory(rec models.SubCategoryRecord, owner models.ID) *SubCategory {
	return &SubCategory{
		id:        rec.EntityID,
		name:      rec.Name,
		typ:       categoryType(rec.Type),
		tombstone: rec.IsTombstone != nil && *rec.IsTombstone,
		masterID:  owner,
	}
}

func (c *SubCategory) ID() models.ID      { return c.id }
func (c *SubCategory) Name() string       { return c.name }
func (c *SubCategory) Type() CategoryType { return c.typ }
func (c *SubCategory) IsTombstone() bool  { return c.tombstone }

// MasterID is the id of the owning master category, empty for the
// synthetic categories. Use Repository.MasterOf to resolve it.
func (c *SubCategory) MasterID() models.ID { return c.masterID }

func (c *SubCategory) Visible() bool { return visible(c.id, c.tombstone) }

func (c *SubCategory) String() string { return c.name }

func categoryType(s *string) CategoryType {
	if s == nil {
		return ""
	}
	return CategoryType(*s)
}

// syntheticCategories returns fresh instances of the categories YNAB4
// refers to without recording them in the document.
func syntheticCategories() []*SubCategory {
	return []*SubCategory{
		{id: models.ImmediateIncomeID, name: "Special: Immediate Income", typ: Inflow},
		{id: models.TransferID, name: "Special: Transfer", typ: Transfer},
	}
}

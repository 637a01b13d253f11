package cart

import (
	"github.com/gofrs/uuid"
)

// Line is one cart entry. Name and Price are snapshots taken when the item
// was added; the persisted order keeps these values even if the menu changes.
type Line struct {
	MenuID   uuid.UUID `json:"menu_id"`
	Name     string    `json:"name"`
	Price    int64     `json:"price"`
	Quantity int       `json:"quantity"`
	Note     string    `json:"note,omitempty"`
}

type Cart struct {
	Lines []Line `json:"lines"`
}

// Total is Σ(price × quantity) over all lines.
func (c Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}

// ItemCount is the badge value: the sum of quantities, not the line count.
func (c Cart) ItemCount() int {
	var count int
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

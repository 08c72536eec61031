package cart

import (
	"github.com/dujiao-next/tableorder/internal/models"

	"github.com/shopspring/decimal"
)

// Item 购物车行，保存加入时的完整菜品快照（价格在加入时确定）
type Item struct {
	MenuItem            models.MenuItem `json:"menu_item"`
	Quantity            int             `json:"quantity"`
	SpecialInstructions string          `json:"special_instructions"`
}

// Subtotal 行小计
func (i Item) Subtotal() models.Money {
	return i.MenuItem.Price.Times(i.Quantity)
}

// Cart 购物车，同一菜品最多一行
type Cart struct {
	Items []Item `json:"items"`
}

func (c *Cart) indexOf(menuItemID string) int {
	for i := range c.Items {
		if c.Items[i].MenuItem.ID == menuItemID {
			return i
		}
	}
	return -1
}

// AddItem 加入菜品；已存在时累加数量，备注保持首次加入时的内容
func (c *Cart) AddItem(menuItem models.MenuItem, quantity int, instructions string) {
	if idx := c.indexOf(menuItem.ID); idx >= 0 {
		c.Items[idx].Quantity += quantity
		return
	}
	c.Items = append(c.Items, Item{
		MenuItem:            menuItem,
		Quantity:            quantity,
		SpecialInstructions: instructions,
	})
}

// UpdateQuantity 设置数量；不做下限校验，由调用方负责
func (c *Cart) UpdateQuantity(menuItemID string, quantity int) {
	if idx := c.indexOf(menuItemID); idx >= 0 {
		c.Items[idx].Quantity = quantity
	}
}

// RemoveItem 删除菜品行
func (c *Cart) RemoveItem(menuItemID string) {
	idx := c.indexOf(menuItemID)
	if idx < 0 {
		return
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
}

// UpdateInstructions 覆盖备注
func (c *Cart) UpdateInstructions(menuItemID, instructions string) {
	if idx := c.indexOf(menuItemID); idx >= 0 {
		c.Items[idx].SpecialInstructions = instructions
	}
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.Items = []Item{}
}

// TotalAmount 合计金额，每次调用重新计算
func (c *Cart) TotalAmount() models.Money {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.MenuItem.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return models.NewMoneyFromDecimal(total)
}

// ItemCount 菜品总份数
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty 是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone 深拷贝购物车行
func (c *Cart) Clone() Cart {
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

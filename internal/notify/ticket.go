package notify

import (
	"fmt"
	"strings"

	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/models"
)

// FormatTicket 格式化订单小票文本（后厨通知与打印共用）
func FormatTicket(title string, order *models.Order) string {
	if order == nil {
		return ""
	}
	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteString("\n")
	}
	tableNumber := "-"
	if order.Table != nil && order.Table.TableNumber != "" {
		tableNumber = order.Table.TableNumber
	}
	fmt.Fprintf(&b, "Table: %s\n", tableNumber)
	fmt.Fprintf(&b, "Order: %s\n", shortID(order.ID))
	fmt.Fprintf(&b, "Time: %s\n", order.CreatedAt.Format("2006-01-02 15:04"))
	b.WriteString("------------------------\n")
	for _, item := range order.Items {
		name := constants.UnknownMenuItemName
		if item.MenuItem != nil && item.MenuItem.Name != "" {
			name = item.MenuItem.Name
		}
		fmt.Fprintf(&b, "%dx %s  %s\n", item.Quantity, name, item.PriceAtOrder.Times(item.Quantity).String())
		if item.SpecialInstructions != nil && strings.TrimSpace(*item.SpecialInstructions) != "" {
			fmt.Fprintf(&b, "   * %s\n", strings.TrimSpace(*item.SpecialInstructions))
		}
	}
	b.WriteString("------------------------\n")
	fmt.Fprintf(&b, "Total: %s", order.TotalAmount.String())
	return b.String()
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
